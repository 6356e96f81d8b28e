// Package listing builds directory listings for the pane finder and
// for plain terminal output.
package listing

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Entry kinds.
const (
	KindDir     = "dir"
	KindFile    = "file"
	KindSymlink = "symlink"
)

// Entry is one directory member prepared for display.
type Entry struct {
	Name string
	Path string // absolute
	Kind string
	Size int64
	Type string // icon and click-command lookup key
}

// File-extension buckets used to pick icons and click commands.
var extTypes = map[string]string{
	"png": "image", "jpg": "image", "jpeg": "image", "gif": "image", "svg": "image",
	"htm": "html", "html": "html",
	"css": "css", "js": "javascript", "py": "python", "go": "go", "xml": "xml",
	"txt": "text", "md": "text", "log": "text", "csv": "text", "yaml": "text", "yml": "text",
}

// List reads dir and returns display entries in name order. Dot files
// are skipped unless all is set.
func List(dir string, all bool) ([]Entry, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	members, err := os.ReadDir(abs)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		name := m.Name()
		if !all && strings.HasPrefix(name, ".") {
			continue
		}
		e := Entry{Name: name, Path: filepath.Join(abs, name)}
		switch {
		case m.Type()&fs.ModeSymlink != 0:
			e.Kind = KindSymlink
		case m.IsDir():
			e.Kind = KindDir
		default:
			e.Kind = KindFile
		}
		if info, err := m.Info(); err == nil {
			e.Size = info.Size()
		}
		e.Type = typeKey(e)
		entries = append(entries, e)
	}
	return entries, nil
}

func typeKey(e Entry) string {
	if e.Kind == KindDir {
		return "directory"
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(e.Name)), ".")
	if t, ok := extTypes[ext]; ok {
		return t
	}
	return "file"
}

var icons = map[string]string{
	"directory": "/static/images/tango-folder.png",
	"image":     "/static/images/tango-image-x-generic.png",
	"html":      "/static/images/tango-text-html.png",
	"text":      "/static/images/tango-text-x-generic.png",
}

const defaultIcon = "/static/images/tango-text-x-generic-template.png"

// Icon returns the host-served icon path for the entry's type key.
func (e Entry) Icon() string {
	if p, ok := icons[e.Type]; ok {
		return p
	}
	return defaultIcon
}

// ClickCommand is the command template the host runs when the entry is
// clicked. The host substitutes %(path) with the entry's full path.
func (e Entry) ClickCommand() string {
	if e.Kind == KindDir {
		return "cd %(path); tpane ls -f"
	}
	return "tpane open %(path)"
}

// TextTable renders entries as aligned plain text, one per line.
func TextTable(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		name := e.Name
		if e.Kind == KindDir {
			name += "/"
		}
		fmt.Fprintf(&b, "%-36s %10s  %s\n", name, SizeString(e.Size), e.Type)
	}
	return b.String()
}

// SizeString formats a byte count with a binary unit suffix.
func SizeString(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
