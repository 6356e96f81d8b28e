package pane

import (
	"fmt"
	"io"
	"os"
)

// Writer frames payloads for the host terminal and writes them to an
// output stream (normally the process stdout, which the host's pty
// wrapper is watching).
type Writer struct {
	env Env
	out io.Writer
}

// NewWriter returns a writer bound to the given environment. Output
// defaults to stdout when out is nil.
func NewWriter(env Env, out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{env: env, out: out}
}

// Env returns the environment the writer was built with.
func (w *Writer) Env() Env { return w.env }

// write wraps the body in the escape framing and emits it in a single
// Write call so the host never sees a torn payload.
func (w *Writer) write(body string) error {
	if !w.env.Active() {
		return ErrNoSession
	}
	framed := fmt.Sprintf(payloadPrefix, payloadCode, w.env.Cookie) + body + fmt.Sprintf(payloadSuffix, payloadCode)
	if _, err := io.WriteString(w.out, framed); err != nil {
		return fmt.Errorf("pane: writing payload: %w", err)
	}
	return nil
}

// Send emits a header-tagged payload.
func (w *Writer) Send(h Headers, content string) error {
	body, err := h.Encode(content)
	if err != nil {
		return err
	}
	return w.write(body)
}

// HTML emits raw HTML with an optional directive comment carrying
// pagelet options.
func (w *Writer) HTML(html string, opts PageletOpts) error {
	return w.write(opts.Directive() + html)
}

// Pagelet emits HTML as an explicit pagelet response.
func (w *Writer) Pagelet(html string, opts PageletOpts) error {
	h := NewHeaders(RespPagelet)
	h.Params = opts.params()
	return w.Send(h, html)
}

// Blank replaces the current display region with an empty pagelet.
// With fullPage set the whole pane is cleared, which is how the scroll
// viewer pauses and shuts down its display.
func (w *Writer) Blank(fullPage bool) error {
	opts := PageletOpts{Overwrite: true}
	if fullPage {
		opts.Display = "fullpage"
	}
	return w.Pagelet("", opts)
}

// Error emits a plain-text error message for the host to display.
func (w *Writer) Error(msg string) error {
	h := NewHeaders(RespErrorMessage)
	h.ContentType = "text/plain"
	return w.Send(h, msg)
}

// OpenURL asks the host to open a URL, in a named frame or a new tab.
func (w *Writer) OpenURL(target, frame string) error {
	h := NewHeaders(RespOpenURL)
	h.Params["url"] = target
	if frame != "" {
		h.Params["target"] = frame
	}
	return w.Send(h, "")
}

// PasteCommand asks the host to paste (and optionally run) a command
// line in another terminal session. An empty path targets the emitting
// session.
func (w *Writer) PasteCommand(command, path string, run bool) error {
	h := NewHeaders(RespPasteCommand)
	h.Params["command"] = command
	h.Params["run"] = run
	if path == "" {
		path = w.env.Path
	}
	h.Params["path"] = path
	return w.Send(h, "")
}

// EvalJS sends a JavaScript expression for evaluation in the hosting
// page. The host decides whether and where to surface the result.
func (w *Writer) EvalJS(expr string) error {
	h := NewHeaders(RespEvalJS)
	h.ContentType = "text/plain"
	return w.Send(h, expr)
}

// Finder emits a finder-style HTML table (directory browser panel).
func (w *Writer) Finder(kind, dir, html string) error {
	h := NewHeaders(RespFinder)
	h.Params["finder_type"] = kind
	h.Params["current_directory"] = dir
	return w.Send(h, html)
}
