package metrics

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// markupCounts holds structural counts derived from page markup, plus the
// lowercased title and heading text used for keyword placement flags.
type markupCounts struct {
	headings    int
	images      int
	links       int
	paragraphs  int
	titleText   string
	headingText string
}

// parseMarkup extracts structural counts from an HTML document. A parse
// failure returns zero counts; the metrics engine treats that the same as
// absent markup.
func parseMarkup(html string) markupCounts {
	counts := markupCounts{}
	if strings.TrimSpace(html) == "" {
		return counts
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return counts
	}

	counts.headings = doc.Find("h1, h2, h3, h4, h5, h6").Length()
	counts.images = doc.Find("img").Length()
	counts.links = doc.Find("a").Length()
	counts.paragraphs = doc.Find("p").Length()

	counts.titleText = strings.ToLower(doc.Find("title").First().Text())

	var headingParts []string
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		headingParts = append(headingParts, sel.Text())
	})
	counts.headingText = strings.ToLower(strings.Join(headingParts, " "))

	return counts
}
