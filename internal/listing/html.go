package listing

import (
	"fmt"
	"html"
	"strings"
)

const (
	finderHead = "<table frame=none border=0>\n<colgroup colspan=1 width=1*>\n"
	finderTail = "</table>\n"
)

// FinderHTML renders entries as the icon table the host finder
// displays: two table rows per entry, an image row above a text row,
// both linking to the entry's path.
func FinderHTML(entries []Entry) string {
	var b strings.Builder
	b.WriteString(finderHead)
	for _, e := range entries {
		writeRowPair(&b, e)
	}
	b.WriteString(finderTail)
	return b.String()
}

func writeRowPair(b *strings.Builder, e Entry) {
	path := html.EscapeString(e.Path)
	name := html.EscapeString(e.Name)
	cmd := html.EscapeString(e.ClickCommand())
	fmt.Fprintf(b, "<tr class=\"pane-rowimg\">\n")
	fmt.Fprintf(b, "  <td><a class=\"pane-link pane-imglink\" href=\"file://%s\" data-panemime=\"x-termpane/%s\" data-panecmd=\"%s\"><img class=\"pane-img\" src=\"%s\"></a>\n",
		path, e.Type, cmd, e.Icon())
	fmt.Fprintf(b, "<tr class=\"pane-rowtxt\">\n")
	fmt.Fprintf(b, "  <td><a class=\"pane-link\" href=\"file://%s\" data-panemime=\"x-termpane/%s\" data-panecmd=\"%s\">%s</a>\n",
		path, e.Type, cmd, name)
}
