package scroll_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/termpane/termpane/internal/dataset"
	"github.com/termpane/termpane/internal/scroll"
)

type fakeDisplay struct {
	shown      []int
	titles     []string
	blanks     int
	closed     bool
	calls      int
	failShowAt int
}

func (d *fakeDisplay) Show(index int, title string) error {
	d.calls++
	if d.failShowAt > 0 && d.calls == d.failShowAt {
		return errors.New("display broke")
	}
	d.shown = append(d.shown, index)
	d.titles = append(d.titles, title)
	return nil
}

func (d *fakeDisplay) Blank() error {
	d.blanks++
	return nil
}

func (d *fakeDisplay) Close() error {
	d.closed = true
	return nil
}

var _ = Describe("Controller", func() {
	var (
		disp *fakeDisplay
		dim  dataset.Dimension
	)

	BeforeEach(func() {
		disp = &fakeDisplay{}
		dim = dataset.Dimension{Name: "time", Coords: []float64{0, 6, 12, 18, 24}}
	})

	run := func(keys string, start int) (*scroll.Controller, error) {
		c, err := scroll.NewController(disp, dim, "temp", strings.NewReader(keys), start)
		Expect(err).NotTo(HaveOccurred())
		return c, c.Run()
	}

	It("draws the start index, steps forward and back, then quits", func() {
		c, err := run("ffbq", 0)
		Expect(err).To(Succeed())
		Expect(disp.shown).To(Equal([]int{0, 1, 2, 1}))
		Expect(disp.closed).To(BeTrue())
		Expect(c.State()).To(Equal(scroll.StateTerminated))
	})

	It("clamps at the upper boundary without redrawing", func() {
		_, err := run("ffffffffq", 0)
		Expect(err).To(Succeed())
		Expect(disp.shown).To(Equal([]int{0, 1, 2, 3, 4}))
	})

	It("clamps at the lower boundary without redrawing", func() {
		_, err := run("bbbq", 0)
		Expect(err).To(Succeed())
		Expect(disp.shown).To(Equal([]int{0}))
	})

	It("ignores unmapped keys", func() {
		_, err := run("zx9q", 0)
		Expect(err).To(Succeed())
		Expect(disp.shown).To(Equal([]int{0}))
	})

	It("redraws unconditionally on resume", func() {
		_, err := run("rrq", 0)
		Expect(err).To(Succeed())
		Expect(disp.shown).To(Equal([]int{0, 0, 0}))
	})

	It("blanks without advancing on pause", func() {
		_, err := run("pfq", 0)
		Expect(err).To(Succeed())
		Expect(disp.blanks).To(Equal(1))
		Expect(disp.shown).To(Equal([]int{0, 1}))
	})

	It("accepts space and backspace as forward and backward", func() {
		_, err := run(" \x08q", 0)
		Expect(err).To(Succeed())
		Expect(disp.shown).To(Equal([]int{0, 1, 0}))
	})

	It("treats escape as quit", func() {
		_, err := run("f\x1b", 0)
		Expect(err).To(Succeed())
		Expect(disp.closed).To(BeTrue())
	})

	It("shuts down cleanly when input ends", func() {
		c, err := run("f", 0)
		Expect(err).To(Succeed())
		Expect(disp.shown).To(Equal([]int{0, 1}))
		Expect(disp.closed).To(BeTrue())
		Expect(c.State()).To(Equal(scroll.StateTerminated))
	})

	It("starts from a requested index", func() {
		_, err := run("fq", 3)
		Expect(err).To(Succeed())
		Expect(disp.shown).To(Equal([]int{3, 4}))
	})

	It("suffixes titles with position and coordinate value", func() {
		_, err := run("fq", 0)
		Expect(err).To(Succeed())
		Expect(disp.titles).To(Equal([]string{
			"temp [1/5] time=0",
			"temp [2/5] time=6",
		}))
	})

	It("stops and reports a display failure", func() {
		disp.failShowAt = 2
		c, err := run("ff", 0)
		Expect(err).To(MatchError(ContainSubstring("display broke")))
		Expect(disp.shown).To(Equal([]int{0}))
		Expect(c.State()).To(Equal(scroll.StateTerminated))
	})

	It("rejects an empty scroll dimension", func() {
		_, err := scroll.NewController(disp, dataset.Dimension{Name: "t"}, "x", strings.NewReader("q"), 0)
		Expect(err).To(HaveOccurred())
	})
})

var _ = DescribeTable("DecodeKey",
	func(b byte, want scroll.Action) {
		Expect(scroll.DecodeKey(b)).To(Equal(want))
	},
	Entry("f steps forward", byte('f'), scroll.ActionForward),
	Entry("space steps forward", byte(' '), scroll.ActionForward),
	Entry("b steps backward", byte('b'), scroll.ActionBackward),
	Entry("backspace steps backward", byte(0x08), scroll.ActionBackward),
	Entry("delete steps backward", byte(0x7f), scroll.ActionBackward),
	Entry("r resumes", byte('r'), scroll.ActionResume),
	Entry("p pauses", byte('p'), scroll.ActionPause),
	Entry("q quits", byte('q'), scroll.ActionQuit),
	Entry("escape quits", byte(0x1b), scroll.ActionQuit),
	Entry("ctrl-c quits", byte(0x03), scroll.ActionQuit),
	Entry("ctrl-d quits", byte(0x04), scroll.ActionQuit),
	Entry("unmapped bytes are ignored", byte('z'), scroll.ActionNone),
)
