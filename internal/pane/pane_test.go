package pane

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func testEnv() Env {
	return Env{
		Cookie: "1234567890",
		Path:   "host/tty1",
		URL:    "http://localhost:8900",
		API:    APIVersion,
	}
}

// decodePayload strips the escape framing and splits headers from
// content.
func decodePayload(t *testing.T, raw string) (Headers, string) {
	t.Helper()
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "\x1b[?1155;1234567890h"), "\x1b[?1155l")
	head, content, found := strings.Cut(body, "\n\n")
	if !found {
		t.Fatalf("payload missing separator: %q", raw)
	}
	var h Headers
	if err := json.Unmarshal([]byte(head), &h); err != nil {
		t.Fatalf("payload headers: %v", err)
	}
	return h, content
}

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Dimensions
		wantErr bool
	}{
		{"full", "80x24;1024x768", Dimensions{Cols: 80, Rows: 24, Width: 1024, Height: 768}, false},
		{"charsOnly", "132x43", Dimensions{Cols: 132, Rows: 43}, false},
		{"empty", "", Dimensions{}, true},
		{"garbage", "80;24", Dimensions{}, true},
		{"nonNumeric", "axb", Dimensions{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDimensions(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDimensions(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDimensions(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnvActive(t *testing.T) {
	env := testEnv()
	if !env.Active() {
		t.Error("expected env with cookie and path to be active")
	}
	env.Cookie = ""
	if env.Active() {
		t.Error("expected env without cookie to be inactive")
	}
}

func TestEnvHostSession(t *testing.T) {
	env := testEnv()
	if got := env.Host(); got != "host" {
		t.Errorf("Host() = %q, want %q", got, "host")
	}
	if got := env.Session(); got != "tty1" {
		t.Errorf("Session() = %q, want %q", got, "tty1")
	}
}

func TestHeadersEncode(t *testing.T) {
	h := NewHeaders(RespPagelet)
	h.Params["display"] = "block"
	body, err := h.Encode("<b>hi</b>")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	head, content, found := strings.Cut(body, "\n\n")
	if !found {
		t.Fatalf("encoded body missing blank-line separator: %q", body)
	}
	if content != "<b>hi</b>" {
		t.Errorf("content = %q, want %q", content, "<b>hi</b>")
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(head), &decoded); err != nil {
		t.Fatalf("headers are not valid JSON: %v", err)
	}
	if decoded["x_pane_response"] != RespPagelet {
		t.Errorf("x_pane_response = %v, want %q", decoded["x_pane_response"], RespPagelet)
	}
	params, ok := decoded["x_pane_parameters"].(map[string]any)
	if !ok || params["display"] != "block" {
		t.Errorf("x_pane_parameters = %v, want display=block", decoded["x_pane_parameters"])
	}
}

func TestDirectiveRoundTrip(t *testing.T) {
	opts := PageletOpts{Display: "fullpage", Overwrite: true, Dir: "/tmp/has space"}
	content := opts.Directive() + "<p>body</p>"
	kind, params, rest, ok := ParseDirective(content)
	if !ok {
		t.Fatalf("ParseDirective failed on %q", content)
	}
	if kind != "pagelet" {
		t.Errorf("directive kind = %q, want %q", kind, "pagelet")
	}
	if params["display"] != "fullpage" || params["overwrite"] != "yes" {
		t.Errorf("directive params = %v", params)
	}
	if params["current_directory"] != "/tmp/has space" {
		t.Errorf("current_directory param = %q, want unescaped path", params["current_directory"])
	}
	if rest != "<p>body</p>" {
		t.Errorf("rest = %q, want body after directive", rest)
	}
}

func TestParseDirectiveNonDirective(t *testing.T) {
	if _, _, _, ok := ParseDirective("<p>plain</p>"); ok {
		t.Error("expected ParseDirective to reject content without a directive")
	}
}

func TestWriterFraming(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(testEnv(), &buf)
	if err := w.HTML("<p>x</p>", PageletOpts{}); err != nil {
		t.Fatalf("HTML: %v", err)
	}
	out := buf.String()
	wantPrefix := "\x1b[?1155;1234567890h"
	wantSuffix := "\x1b[?1155l"
	if !strings.HasPrefix(out, wantPrefix) {
		t.Errorf("output does not start with payload prefix: %q", out)
	}
	if !strings.HasSuffix(out, wantSuffix) {
		t.Errorf("output does not end with payload suffix: %q", out)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(out, wantPrefix), wantSuffix)
	if !strings.HasPrefix(body, "<") {
		t.Errorf("HTML body should start with '<' so the host treats it as raw HTML: %q", body)
	}
}

func TestWriterInactiveEnv(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Env{}, &buf)
	err := w.Pagelet("<p>x</p>", PageletOpts{})
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("no output expected without a session, got %q", buf.String())
	}
}

func TestCreateBlob(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(testEnv(), &buf)
	data := []byte{0x89, 'P', 'N', 'G'}
	if err := w.CreateBlob("blob1", "image/png", data); err != nil {
		t.Fatalf("CreateBlob: %v", err)
	}
	h, content := decodePayload(t, buf.String())
	if h.Response != RespCreateBlob {
		t.Errorf("response = %q, want %q", h.Response, RespCreateBlob)
	}
	if h.ContentLength != base64.StdEncoding.EncodedLen(len(data)) {
		t.Errorf("content_length = %d, want encoded length %d", h.ContentLength, base64.StdEncoding.EncodedLen(len(data)))
	}
	if h.Params["blob_id"] != "blob1" {
		t.Errorf("blob_id param = %v, want blob1", h.Params["blob_id"])
	}
	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		t.Fatalf("blob content is not base64: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("decoded blob = %v, want %v", decoded, data)
	}
}

func TestBlockImageReferencesBlob(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(testEnv(), &buf)
	if err := w.BlockImage("blobX", "plot", true); err != nil {
		t.Fatalf("BlockImage: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "/_blob/host/blobX") {
		t.Errorf("block image should reference blob URL, got %q", out)
	}
	if !strings.Contains(out, `"overwrite":true`) {
		t.Errorf("block image should request overwrite, got %q", out)
	}
}

func TestOpenURL(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(testEnv(), &buf)
	if err := w.OpenURL("http://example.test/page", "chart"); err != nil {
		t.Fatalf("OpenURL: %v", err)
	}
	h, content := decodePayload(t, buf.String())
	if h.Response != RespOpenURL {
		t.Errorf("response = %q, want %q", h.Response, RespOpenURL)
	}
	if h.Params["url"] != "http://example.test/page" {
		t.Errorf("url param = %v", h.Params["url"])
	}
	if h.Params["target"] != "chart" {
		t.Errorf("target param = %v", h.Params["target"])
	}
	if content != "" {
		t.Errorf("open_url carries no content, got %q", content)
	}

	buf.Reset()
	if err := w.OpenURL("http://example.test", ""); err != nil {
		t.Fatalf("OpenURL: %v", err)
	}
	h, _ = decodePayload(t, buf.String())
	if _, present := h.Params["target"]; present {
		t.Error("empty frame should omit the target param")
	}
}

func TestPasteCommand(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(testEnv(), &buf)
	if err := w.PasteCommand("ls -l", "host/tty2", true); err != nil {
		t.Fatalf("PasteCommand: %v", err)
	}
	h, _ := decodePayload(t, buf.String())
	if h.Response != RespPasteCommand {
		t.Errorf("response = %q, want %q", h.Response, RespPasteCommand)
	}
	if h.Params["command"] != "ls -l" || h.Params["path"] != "host/tty2" {
		t.Errorf("params = %v", h.Params)
	}
	if h.Params["run"] != true {
		t.Errorf("run param = %v, want true", h.Params["run"])
	}

	// An empty path targets the emitting session.
	buf.Reset()
	if err := w.PasteCommand("pwd", "", false); err != nil {
		t.Fatalf("PasteCommand: %v", err)
	}
	h, _ = decodePayload(t, buf.String())
	if h.Params["path"] != "host/tty1" {
		t.Errorf("path param = %v, want the writer's own session", h.Params["path"])
	}
}

func TestEvalJS(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(testEnv(), &buf)
	if err := w.EvalJS("document.title"); err != nil {
		t.Fatalf("EvalJS: %v", err)
	}
	h, content := decodePayload(t, buf.String())
	if h.Response != RespEvalJS {
		t.Errorf("response = %q, want %q", h.Response, RespEvalJS)
	}
	if content != "document.title" {
		t.Errorf("content = %q", content)
	}
}

func TestDownload(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(testEnv(), &buf)
	data := []byte("PK\x03\x04zipzip")
	if err := w.Download("files.zip", "application/zip", data); err != nil {
		t.Fatalf("Download: %v", err)
	}
	h, content := decodePayload(t, buf.String())
	if h.Response != RespDownload {
		t.Errorf("response = %q, want %q", h.Response, RespDownload)
	}
	if h.Params["filename"] != "files.zip" {
		t.Errorf("filename param = %v", h.Params["filename"])
	}
	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		t.Fatalf("download content is not base64: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("decoded download = %q, want %q", decoded, data)
	}
}
