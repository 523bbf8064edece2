package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metadata reads the page title and language. Call it before Select,
// which strips headers that may hold the only <h1>.
func Metadata(doc *goquery.Document) (title, lang string) {
	title = strings.TrimSpace(doc.Find("head title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	lang, _ = doc.Find("html").First().Attr("lang")
	return strings.Join(strings.Fields(title), " "), strings.TrimSpace(lang)
}
