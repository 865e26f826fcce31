package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// tableRule converts tables. Simple tables become pipe tables with
// the separator row sized from the first row. A table with any
// spanning cell cannot be expressed in pipe syntax, so it is kept as
// raw HTML reduced to a fixed attribute allowlist.
var tableRule = rule{
	name: "table",
	match: func(c *conversion, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "table"
	},
	render: func(c *conversion, content string, s *goquery.Selection) string {
		if isComplexTable(s) {
			return renderRawTable(c, content, s)
		}
		rows := tableRows(s)
		var lines []string
		headerDone := false
		for _, row := range rows {
			cells := row.ChildrenFiltered("th, td")
			if cells.Length() == 0 {
				continue
			}
			rendered := make([]string, 0, cells.Length())
			cells.Each(func(_ int, cell *goquery.Selection) {
				rendered = append(rendered, c.renderTableCell(cell))
			})
			lines = append(lines, "| "+strings.Join(rendered, " | ")+" |")
			if !headerDone {
				headerDone = true
				sep := make([]string, len(rendered))
				for i := range sep {
					sep[i] = "---"
				}
				lines = append(lines, "| "+strings.Join(sep, " | ")+" |")
			}
		}
		if len(lines) == 0 {
			return ""
		}
		return "\n\n" + strings.Join(lines, "\n") + "\n\n"
	},
}

// isComplexTable reports whether any cell spans rows or columns.
// Classified once per table, before any row converts.
func isComplexTable(s *goquery.Selection) bool {
	complex := false
	s.Find("td, th").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		_, hasColspan := cell.Attr("colspan")
		_, hasRowspan := cell.Attr("rowspan")
		if hasColspan || hasRowspan {
			complex = true
			return false
		}
		return true
	})
	return complex
}

// tableRows collects the table's own rows in document order, looking
// only through direct thead/tbody/tfoot children so a nested table
// keeps its rows to itself.
func tableRows(table *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection
	table.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "tr":
			rows = append(rows, child)
		case "thead", "tbody", "tfoot":
			child.ChildrenFiltered("tr").Each(func(_ int, row *goquery.Selection) {
				rows = append(rows, row)
			})
		}
	})
	return rows
}

// renderTableCell converts a cell's subtree, then flattens it to one
// line and escapes pipes so the row structure survives.
func (c *conversion) renderTableCell(cell *goquery.Selection) string {
	text := c.convertChildren(cell)
	text = strings.Join(strings.Fields(text), " ")
	return strings.ReplaceAll(text, "|", `\|`)
}

// tableKeepAttrs is the attribute allowlist for raw table output.
var tableKeepAttrs = map[string]bool{
	"src": true, "href": true, "style": true, "align": true,
	"width": true, "height": true, "rowspan": true, "colspan": true,
	"bgcolor": true, "scope": true, "valign": true, "headers": true,
}

func renderRawTable(c *conversion, content string, s *goquery.Selection) string {
	clone := s.Clone()
	for _, n := range clone.Nodes {
		stripAttributes(n)
	}
	clone.Find("*").Each(func(_ int, el *goquery.Selection) {
		stripAttributes(el.Nodes[0])
	})
	raw, err := goquery.OuterHtml(clone)
	if err != nil {
		c.logger.Warn("could not serialize table, keeping converted content", "err", err)
		return content
	}
	return "\n\n" + strings.TrimSpace(raw) + "\n\n"
}

func stripAttributes(n *html.Node) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if tableKeepAttrs[a.Key] {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}
