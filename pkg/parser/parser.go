package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

type Parser struct{}

// PageMeta describes the page the reviews came from.
type PageMeta struct {
	URL      string `json:"url" yaml:"url"`
	Title    string `json:"title" yaml:"title"`
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
}

// ParseMeta finds the page title. The product title element wins; then the
// readability title; then the document <title>.
func (p *Parser) ParseMeta(rawURL string, doc *goquery.Document) (*PageMeta, error) {
	meta := &PageMeta{URL: rawURL}

	if t := normalizeText(doc.Find("#productTitle").First().Text()); t != "" {
		meta.Title = t
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return meta, fmt.Errorf("failed to parse URL: %w", err)
	}

	html, err := doc.Html()
	if err == nil {
		rp := readability.NewParser()
		article, rerr := rp.Parse(strings.NewReader(html), parsedURL)
		if rerr == nil {
			if meta.Title == "" {
				meta.Title = normalizeText(article.Title)
			}
			meta.SiteName = normalizeText(article.SiteName)
		}
	}

	if meta.Title == "" {
		meta.Title = normalizeText(doc.Find("title").First().Text())
	}
	return meta, nil
}

// normalizeText collapses all whitespace runs, newlines included, into
// single spaces.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
