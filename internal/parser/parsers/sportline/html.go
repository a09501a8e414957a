package sportline

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// bettingKeywords mark container text worth running the field heuristics
// on. Rows without any of these are navigation or chrome.
var bettingKeywords = []string{"odds", "bet", "1x2", " v ", " vs ", "kick", "match"}

// parseHTMLBoard strips the rendered board page down to candidate rows
// and runs the same separator and odds-token heuristics the delimited
// format uses on each row's cell texts.
func parseHTMLBoard(raw []byte, now time.Time) []ParsedFields {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil
	}

	var results []ParsedFields

	collect := func(_ int, row *goquery.Selection) {
		text := collapseSpace(row.Text())
		if !containsBettingKeyword(text) {
			return
		}

		fields := cellTexts(row)
		if len(fields) == 0 {
			fields = []string{text}
		}

		parsed, ok := parseFieldsFromSlice(fields, now)
		if !ok {
			return
		}
		results = append(results, parsed)
	}

	rows := doc.Find("tr")
	if rows.Length() > 0 {
		rows.Each(collect)
	}
	if len(results) == 0 {
		doc.Find("div[class*=match], div[class*=event], li[class*=match]").Each(collect)
	}

	return results
}

func cellTexts(row *goquery.Selection) []string {
	var fields []string
	row.Find("td, th, span, div").Each(func(_ int, cell *goquery.Selection) {
		// Leaf cells only; container text would duplicate every child.
		if cell.Children().Length() > 0 {
			return
		}
		text := collapseSpace(cell.Text())
		if text != "" {
			fields = append(fields, text)
		}
	})
	return fields
}

func containsBettingKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range bettingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
