package anime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FetchListingPage downloads the raw HTML of the wiki listing page.
// Fetching and parsing are split so parsing stays a pure function and the
// raw page can be cached between runs.
func FetchListingPage(ctx context.Context, client *http.Client, pageURL string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, pageURL)
	}

	return io.ReadAll(resp.Body)
}

// ParseListings extracts listing rows from the wiki page HTML. Each data row
// of a wikitable carries the Japanese title (with a detail-page link), the
// localized title and a free-form info cell with premiere date and format.
// Rows without any title text are skipped.
func ParseListings(html []byte, pageURL string) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	var listings []Listing

	doc.Find("table.wikitable tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			// header or separator row
			return
		}

		native := normSpace(cells.Eq(0).Text())
		localized := normSpace(cells.Eq(1).Text())
		info := ""
		if cells.Length() > 2 {
			info = normSpace(cells.Eq(2).Text())
		}

		fromList := localized
		if fromList == "" {
			fromList = native
		}
		if fromList == "" {
			return
		}

		link := ""
		if href, ok := cells.Eq(0).Find("a").First().Attr("href"); ok {
			link = resolveURL(pageURL, href)
		}

		listings = append(listings, Listing{
			ID:             listingID(link, fromList),
			TitleNative:    native,
			TitleLocalized: localized,
			TitleFromList:  fromList,
			Link:           link,
			RawInfoText:    info,
		})
	})

	return listings, nil
}

func normSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}

// listingID derives a stable identifier, preferring the detail-page path.
func listingID(link, title string) string {
	if link != "" {
		if u, err := url.Parse(link); err == nil && u.Path != "" {
			return strings.Trim(u.Path, "/")
		}
	}
	return title
}
