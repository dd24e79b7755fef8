package scrape

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"fomcdots/pkg/contracts/domain"
)

// tableHeadingMarker identifies the heading that precedes the dot-plot
// table on every projection page.
const tableHeadingMarker = "assessments of appropriate monetary policy"

// ParseProjectionTable extracts the wide projection rows from one meeting
// page. The table is located via its heading; its first column holds the
// rate midpoint and the remaining columns hold per-horizon participant
// counts. Empty cells are omitted from the row's Counts.
func ParseProjectionTable(page string, meetingDate time.Time) ([]domain.WideRow, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse projection page: %w", err)
	}

	date := meetingDate.Format("2006-01-02")

	heading := findHeading(doc)
	if heading == nil {
		return nil, fmt.Errorf("no projection table heading on page for %s", date)
	}

	table := nextTable(doc, heading)
	if table == nil {
		return nil, fmt.Errorf("no table follows the projection heading for %s", date)
	}

	headers, err := tableHeaders(table)
	if err != nil {
		return nil, err
	}

	body := findElement(table, "tbody")
	if body == nil {
		return nil, fmt.Errorf("projection table for %s has no tbody", date)
	}

	var rows []domain.WideRow
	for _, tr := range childElements(body, "tr") {
		cells := cellTexts(tr)
		if len(cells) == 0 {
			continue
		}

		midpointText, ok := SafeString(cells[0])
		if !ok {
			return nil, fmt.Errorf("projection row %d for %s has an empty midpoint cell", len(rows)+1, date)
		}
		midpoint, err := strconv.ParseFloat(midpointText, 64)
		if err != nil {
			return nil, fmt.Errorf("parse midpoint %q for %s: %w", midpointText, date, err)
		}

		counts := make(map[string]int)
		for i := 1; i < len(cells) && i < len(headers); i++ {
			cell, ok := SafeString(cells[i])
			if !ok {
				continue // no participants projected this combination
			}
			count, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("parse count %q in column %q for %s: %w", cell, headers[i], date, err)
			}
			counts[headers[i]] = count
		}

		rows = append(rows, domain.WideRow{
			MeetingDate: meetingDate,
			Midpoint:    midpoint,
			Counts:      counts,
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("projection table for %s has no data rows", date)
	}

	return rows, nil
}

// tableHeaders reads the thead cells and slugifies them into column labels.
func tableHeaders(table *html.Node) ([]string, error) {
	head := findElement(table, "thead")
	if head == nil {
		return nil, fmt.Errorf("projection table has no thead")
	}

	var headers []string
	for _, th := range descendants(head, "th") {
		text, _ := SafeString(nodeText(th))
		headers = append(headers, Slugify(text))
	}
	if len(headers) < 2 {
		return nil, fmt.Errorf("projection table header has %d columns, need a midpoint plus horizons", len(headers))
	}
	return headers, nil
}

// findHeading returns the first h4/h5 whose text names the projection table.
func findHeading(doc *html.Node) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "h4" || n.Data == "h5") {
			if strings.Contains(strings.ToLower(nodeText(n)), tableHeadingMarker) {
				found = n
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

// nextTable returns the first table element that follows the given node in
// document order.
func nextTable(root, after *html.Node) *html.Node {
	var found *html.Node
	seen := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n == after {
			seen = true
		}
		if seen && n != after && n.Type == html.ElementNode && n.Data == "table" {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// cellTexts returns the text of every th/td cell in a row, in order.
func cellTexts(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "th" || c.Data == "td") {
			cells = append(cells, nodeText(c))
		}
	}
	return cells
}

// nodeText concatenates all text beneath a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// findElement returns the first descendant element with the given tag.
func findElement(root *html.Node, tag string) *html.Node {
	nodes := descendants(root, tag)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// childElements returns the direct child elements with the given tag.
func childElements(n *html.Node, tag string) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			children = append(children, c)
		}
	}
	return children
}

// descendants returns every descendant element with the given tag, in
// document order.
func descendants(root *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return nodes
}
