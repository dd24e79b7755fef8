// Package scrape extracts the FOMC "dot plot" projection tables published on
// federalreserve.gov.
//
// The entry point is Client.ScrapeAll, which discovers every meeting page
// linked from the FOMC calendar, fetches them concurrently under a shared
// rate limit, and parses each page's "assessments of appropriate monetary
// policy" table into wide projection rows for the reshape pipeline.
//
// The pages are plain server-rendered HTML, so fetching is a rate-limited
// net/http GET and parsing uses golang.org/x/net/html directly.
package scrape
