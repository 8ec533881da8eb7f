package finance

import (
	"net/url"
	"strings"

	"tnfirefly-backend/lib/htmlutil"
	"tnfirefly-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// amountLabels maps the registry's row labels onto record fields.
// Within one field the variants are tried in order and the first
// label found on the page wins; the registry has changed its wording
// across filing periods.
var amountLabels = []struct {
	field    string
	variants []string
}{
	{"raised", []string{"total receipts", "total contributions"}},
	{"spent", []string{"total expenditures", "total disbursements"}},
	{"cashOnHand", []string{"balance on hand", "ending balance"}},
	{"loans", []string{"loans outstanding", "outstanding loan"}},
}

// scanAmounts reads the disclosure summary by label rather than by
// table position; the registry shuffles row order between report
// types but the labels hold still. Missing or malformed amounts
// come back as 0.
func scanAmounts(doc *goquery.Document) map[string]float64 {
	amounts := map[string]float64{}

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(cells.First().Text()))
		if label == "" {
			return
		}
		value := strings.TrimSpace(cells.Last().Text())

		for _, entry := range amountLabels {
			if _, done := amounts[entry.field]; done {
				continue
			}
			for _, variant := range entry.variants {
				if strings.Contains(label, variant) {
					amounts[entry.field] = textutil.ParseDollar(value)
					break
				}
			}
		}
	})

	return amounts
}

// reportLink is one row of the committee's filing list.
type reportLink struct {
	Name string
	Date string
	Href string
}

// latestReport picks the newest filing from the committee's report
// list. The registry lists newest first; rows without a link are
// headers or amendments pending review.
func latestReport(doc *goquery.Document, baseURL string) (reportLink, bool) {
	var links []reportLink

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		anchor := row.Find("a").First()
		href, ok := anchor.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		name := htmlutil.CleanText(anchor.Text())
		date := htmlutil.CleanText(cells.Eq(1).Text())
		links = append(links, reportLink{
			Name: name,
			Date: date,
			Href: absoluteURL(baseURL, href),
		})
	})

	if len(links) == 0 {
		return reportLink{}, false
	}
	return links[0], true
}

func absoluteURL(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
