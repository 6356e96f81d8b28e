package pane

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Response types understood by the host terminal. The adapter only
// populates these; interpreting them is the host's business.
const (
	RespPagelet      = "pagelet"
	RespErrorMessage = "error_message"
	RespCreateBlob   = "create_blob"
	RespOpenURL      = "open_url"
	RespPasteCommand = "paste_command"
	RespEvalJS       = "eval_js"
	RespFinder       = "display_finder"
	RespDownload     = "download_file"
)

// Escape framing around every payload. The cookie authenticates the
// emitting process to the host; payloads without it are discarded.
const (
	payloadCode   = 1155
	payloadPrefix = "\x1b[?%d;%sh"
	payloadSuffix = "\x1b[?%dl"
)

var ErrNoSession = errors.New("pane: no active pane session")

// Headers is the JSON header block preceding payload content. The
// header block and content are separated by a blank line; content
// starting with "<" may be sent bare, in which case the host assumes
// text/html with no response type.
type Headers struct {
	ContentType   string         `json:"content_type"`
	Response      string         `json:"x_pane_response"`
	Params        map[string]any `json:"x_pane_parameters"`
	ContentLength int            `json:"content_length,omitempty"`
}

// NewHeaders returns headers for the given response type with an empty
// parameter set and an HTML content type.
func NewHeaders(response string) Headers {
	return Headers{
		ContentType: "text/html",
		Response:    response,
		Params:      map[string]any{},
	}
}

// Encode renders the header block plus content as a single payload
// body (headers, blank line, content).
func (h Headers) Encode(content string) (string, error) {
	h.ContentLength = len(content)
	if h.Params == nil {
		h.Params = map[string]any{}
	}
	head, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("pane: encoding headers: %w", err)
	}
	return string(head) + "\n\n" + content, nil
}

// PageletOpts control how the host places a pagelet in its scroll
// sequence.
type PageletOpts struct {
	Display   string // "block" (default) or "fullpage"
	Overwrite bool   // replace the previous pagelet from this process
	Blob      string // blob id backing this pagelet, if any
	Dir       string // working directory to associate with the entry
	AddClass  string // extra CSS class for the pagelet container
}

func (o PageletOpts) params() map[string]any {
	p := map[string]any{}
	if o.Display != "" {
		p["display"] = o.Display
	}
	if o.Overwrite {
		p["overwrite"] = true
	}
	if o.Blob != "" {
		p["blob"] = o.Blob
	}
	if o.Dir != "" {
		p["current_directory"] = o.Dir
	}
	if o.AddClass != "" {
		p["add_class"] = o.AddClass
	}
	return p
}

// Directive renders the pagelet options as an HTML comment directive
// suitable for prepending to raw HTML payloads:
//
//	<!--pane pagelet display=fullpage overwrite=yes-->
//
// Values are URL-escaped, mirroring how the host decodes them.
func (o PageletOpts) Directive() string {
	p := o.params()
	if b, ok := p["overwrite"]; ok && b == true {
		p["overwrite"] = "yes"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("<!--pane pagelet")
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, url.QueryEscape(fmt.Sprint(p[k])))
	}
	b.WriteString("-->")
	return b.String()
}

// ParseDirective decodes a directive comment produced by Directive.
// It returns the directive type (e.g. "pagelet"), its options, and the
// remaining content.
func ParseDirective(content string) (string, map[string]string, string, bool) {
	const opening, closing = "<!--pane ", "-->"
	if !strings.HasPrefix(content, opening) {
		return "", nil, content, false
	}
	end := strings.Index(content, closing)
	if end < 0 {
		return "", nil, content, false
	}
	rest := content[end+len(closing):]
	fields := strings.Fields(content[len(opening):end])
	if len(fields) == 0 {
		return "", nil, content, false
	}
	opts := map[string]string{}
	for _, f := range fields[1:] {
		name, value, _ := strings.Cut(f, "=")
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		opts[name] = value
	}
	return fields[0], opts, rest, true
}
