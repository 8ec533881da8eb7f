package endorsements

import (
	"strings"

	"tnfirefly-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// sectionSkipWords marks list sections that are page furniture
// rather than endorsement categories.
var sectionSkipWords = []string{
	"references", "see also", "external links", "notes", "contents",
	"navigation",
}

// extractEndorsements reads a Wikipedia-style endorsement page:
// category headings ("Federal officials", "Organizations") each
// followed by a bulleted list, one endorser per item, the role
// after the first comma.
func extractEndorsements(doc *goquery.Document, page Page) []Endorsement {
	var out []Endorsement
	seen := map[string]bool{}

	doc.Find("ul li").Each(func(_ int, item *goquery.Selection) {
		category := ""
		if len(item.Nodes) > 0 {
			category = htmlutil.PrecedingHeading(item.Nodes[0], 60)
		}
		if skippableSection(category) {
			return
		}

		// take only the item's own line; nested sub-endorsers are
		// visited as their own items
		own := item.Clone()
		own.Find("ul").Remove()
		text := htmlutil.CleanText(own.Text())
		endorser, role := splitEndorser(text)
		if endorser == "" {
			return
		}

		e := Endorsement{
			Endorser:  endorser,
			Role:      role,
			Category:  category,
			Candidate: page.Candidate,
			Party:     page.Party,
			SourceURL: page.URL,
		}
		if seen[e.MergeKey()] {
			return
		}
		seen[e.MergeKey()] = true
		out = append(out, e)
	})

	return out
}

func skippableSection(category string) bool {
	lower := strings.ToLower(category)
	if lower == "" {
		return true
	}
	for _, word := range sectionSkipWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// splitEndorser separates "Donald Trump, 47th President of the
// United States" into name and role. Citation markers like [3]
// are already stripped by CleanText's caller chain, trailing ones
// are cut here.
func splitEndorser(text string) (endorser, role string) {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "["); i > 0 {
		text = strings.TrimSpace(text[:i])
	}
	if text == "" {
		return "", ""
	}

	parts := strings.SplitN(text, ",", 2)
	endorser = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		role = strings.TrimSpace(parts[1])
	}
	// a plausible name, not a paragraph that happened to be in a list
	if len(endorser) > 80 {
		return "", ""
	}
	return endorser, role
}
