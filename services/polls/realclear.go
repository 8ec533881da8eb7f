package polls

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"tnfirefly-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// RealClear covers the aggregators whose tables render client-side.
// Whatever static rows the markup happens to carry are dumped raw for
// editors; nothing from here enters the normalized records.
type RealClear struct {
	client *resty.Client
	config Config
}

func NewRealClear(client *resty.Client, config Config) RealClear {
	return RealClear{client: client, config: config}
}

// dumpTables collects every static table row on the page. A page
// that rendered nothing server-side yields hasData=false with empty
// rows, which is the normal case for these sites.
func dumpTables(doc *goquery.Document) [][]string {
	rows := [][]string{}
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		for _, cells := range htmlutil.TableCells(sel) {
			empty := true
			for _, c := range cells {
				if strings.TrimSpace(c) != "" {
					empty = false
					break
				}
			}
			if !empty {
				rows = append(rows, cells)
			}
		}
	})
	return rows
}

// Scrape visits each configured aggregator page. Fetch failures
// produce a dump with hasData=false rather than an error.
func (r RealClear) Scrape(ctx context.Context) map[string]AggregatorDump {
	dumps := map[string]AggregatorDump{}

	labels := make([]string, 0, len(r.config.RealClear))
	for label := range r.config.RealClear {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		pageURL := r.config.RealClear[label]
		dump := AggregatorDump{
			Source:  label,
			URL:     pageURL,
			HasData: false,
			Rows:    [][]string{},
		}

		res, err := r.client.R().SetContext(ctx).Get(pageURL)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch aggregator page",
				"source", label, "err", err)
			dumps[label] = dump
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
		if err != nil {
			slog.WarnContext(ctx, "failed to parse aggregator page",
				"source", label, "err", err)
			dumps[label] = dump
			continue
		}

		rows := dumpTables(doc)
		dump.Rows = rows
		dump.HasData = len(rows) > 0
		dumps[label] = dump

		slog.InfoContext(ctx, "dumped aggregator page",
			"source", label, "rows", len(rows))
	}

	return dumps
}
