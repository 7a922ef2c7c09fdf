package scrape

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// cellText returns the visible text of sel with surrounding whitespace removed
// and inner whitespace runs collapsed.
func cellText(sel *goquery.Selection) string {
	text := strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, sel.Text())
	text = strings.TrimSpace(text)
	return innerWhitespace.ReplaceAllString(text, " ")
}

// joinURL concatenates the site root and a relative href
func joinURL(baseURL, href string) string {
	if strings.HasPrefix(href, "/") {
		return strings.TrimSuffix(baseURL, "/") + href
	}
	return baseURL + href
}
