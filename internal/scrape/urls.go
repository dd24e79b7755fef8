package scrape

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// calendarPath lists every FOMC meeting, including links to the projection
// table pages this scraper cares about.
const calendarPath = "/monetarypolicy/fomccalendars.htm"

// projectionLinkMarker appears in the href of every projection table page.
const projectionLinkMarker = "fomcprojtabl"

// Source is one projection table page and the meeting date parsed from its
// URL.
type Source struct {
	URL  string
	Date time.Time
}

// SourceURLs fetches the FOMC calendar and returns every projection table
// page it links to, sorted by meeting date ascending.
func (c *Client) SourceURLs(ctx context.Context) ([]Source, error) {
	page, err := c.FetchDocument(ctx, c.cfg.BaseURL+calendarPath)
	if err != nil {
		return nil, fmt.Errorf("fetch FOMC calendar: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse FOMC calendar: %w", err)
	}

	var sources []Source
	for _, href := range projectionHrefs(doc) {
		url := href
		if !strings.HasPrefix(href, "http") {
			url = c.cfg.BaseURL + href
		}

		date, err := ParseReportDate(url)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", url, err)
		}

		sources = append(sources, Source{URL: url, Date: date})
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Date.Before(sources[j].Date)
	})

	c.logger.InfoContext(ctx, "discovered projection sources",
		"count", len(sources))

	return sources, nil
}

// projectionHrefs walks the document and collects anchor hrefs that point at
// projection table pages.
func projectionHrefs(doc *html.Node) []string {
	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if strings.Contains(attr.Val, projectionLinkMarker) && strings.Contains(attr.Val, ".htm") {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return hrefs
}

// ParseReportDate extracts the meeting date embedded in a projection table
// URL: the eight digits before ".htm", e.g.
// /monetarypolicy/fomcprojtabl20230322.htm.
func ParseReportDate(url string) (time.Time, error) {
	idx := strings.Index(url, projectionLinkMarker)
	if idx < 0 {
		return time.Time{}, fmt.Errorf("no %q segment in URL %s", projectionLinkMarker, url)
	}

	s := url[idx+len(projectionLinkMarker):]
	s = strings.Replace(s, ".htm", "", 1)
	if len(s) < 8 {
		return time.Time{}, fmt.Errorf("no date digits in URL %s", url)
	}

	date, err := time.Parse("20060102", s[len(s)-8:])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse report date from URL %s: %w", url, err)
	}
	return date, nil
}
