// Package title fetches the human-readable title of a video from its watch
// page. Best effort: history entries fall back to a URL-derived placeholder
// when the fetch fails.
package title

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ytplay/internal/httputil"
)

// Fetch downloads the page at rawURL and extracts its title, preferring the
// og:title meta tag over the document title. A missing scheme defaults to
// https.
func Fetch(client *http.Client, rawURL string) (string, error) {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	resp, err := httputil.Get(client, rawURL)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	t := extract(doc)
	if t == "" {
		return "", fmt.Errorf("no title found at %s", rawURL)
	}
	return t, nil
}

func extract(doc *goquery.Document) string {
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}

	t := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.TrimSuffix(t, " - YouTube")
}
