package flags

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Phrase search order. Tight multi-word phrases are tried before loose hits
// so a passing mention of "red" in unrelated copy never beats a specific
// phrase elsewhere in the same text.
var (
	tightPhrases = []string{
		"double red flag",
		"single red flag",
		"red flag",
		"yellow flag",
		"green flag",
		"purple flag",
	}
	loosePhrases = []string{
		"double red",
		"single red",
		"yellow",
		"green",
		"purple",
		"red",
	}
)

// PageText strips tags from an HTML document and collapses all whitespace
// runs to single spaces.
func PageText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}

// ExtractHTML runs Extract over the text of an HTML document.
func ExtractHTML(body []byte) (string, bool) {
	text, err := PageText(body)
	if err != nil {
		return "", false
	}
	return Extract(text)
}

// Extract finds the most specific flag phrase in page text, returning it
// title-cased. The boolean is false when no phrase matched.
func Extract(text string) (string, bool) {
	t := strings.ToLower(text)
	for _, phrase := range tightPhrases {
		if strings.Contains(t, phrase) {
			return titleCase(phrase), true
		}
	}
	for _, phrase := range loosePhrases {
		if strings.Contains(t, phrase) {
			return titleCase(phrase), true
		}
	}
	return "", false
}

func titleCase(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
