package polls

import (
	"context"
	"log/slog"
	"strings"

	"tnfirefly-backend/lib/htmlutil"
	"tnfirefly-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const toWinOrigin = "270toWin"

// ToWin reads 270toWin's aggregated poll tables. Unlike the narrative
// sources everything here is tabular, so each table is classified
// first and then mapped column by column.
type ToWin struct {
	client     *resty.Client
	config     Config
	classifier Classifier
}

func NewToWin(client *resty.Client, config Config) ToWin {
	return ToWin{client: client, config: config, classifier: NewClassifier(config)}
}

// ToWinExtract is what one run over the 270toWin page yields.
type ToWinExtract struct {
	Polls        []PollRecord
	GeneralPolls []PollRecord
	RaceRatings  []RaceRating
	SoftFailures int
}

// columnMap is the resolved meaning of each header cell in a poll
// table. Candidate columns come from fuzzy roster matching, the
// bookkeeping columns from keyword sets.
type columnMap struct {
	candidates map[int]Candidate
	undecided  int
	other      int
	pollster   int
	date       int
	sample     int
	margin     int
}

func (t ToWin) mapColumns(headers []string) columnMap {
	cm := columnMap{
		candidates: map[int]Candidate{},
		undecided:  -1,
		other:      -1,
		pollster:   -1,
		date:       -1,
		sample:     -1,
		margin:     -1,
	}
	for i, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case lower == "":
			continue
		case strings.HasPrefix(lower, "und"):
			cm.undecided = i
		case strings.Contains(lower, "margin") || strings.Contains(lower, "moe"):
			cm.margin = i
		case strings.Contains(lower, "sample") || lower == "size":
			cm.sample = i
		case strings.Contains(lower, "date") || strings.Contains(lower, "fieldwork"):
			cm.date = i
		case strings.Contains(lower, "poll") || strings.Contains(lower, "source"):
			cm.pollster = i
		case lower == "other" || lower == "others":
			cm.other = i
		default:
			if cand, ok := t.classifier.MatchCandidate(h); ok {
				cm.candidates[i] = cand
			}
		}
	}
	return cm
}

// pollsFromTable converts one classified poll table into records.
// Rows missing a pollster or carrying no parseable share are counted
// as soft failures and dropped, not fatal.
func (t ToWin) pollsFromTable(ctx context.Context, table RawTable, kind string) ([]PollRecord, int) {
	cm := t.mapColumns(table.Headers)
	if len(cm.candidates) == 0 {
		return nil, 0
	}

	matchup := ""
	if kind == KindGeneral {
		matchup = matchupFromColumns(table.Headers, cm)
	}

	var records []PollRecord
	softFailures := 0
	for _, row := range table.Rows {
		record, ok := t.pollFromRow(row, cm, kind, table)
		if !ok {
			softFailures++
			slog.WarnContext(ctx, "skipping unusable poll row",
				"source", table.SourceOrigin, "cells", len(row))
			continue
		}
		record.Matchup = matchup
		records = append(records, record)
	}
	return records, softFailures
}

func (t ToWin) pollFromRow(row []string, cm columnMap, kind string, table RawTable) (PollRecord, bool) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	pollster := cell(cm.pollster)
	if pollster == "" {
		return PollRecord{}, false
	}

	// results keep the source's column order, including where the
	// table places its Undecided and Other columns
	var results []PollResult
	candidateShares := 0
	for i := 0; i < len(row); i++ {
		name, party := "", ""
		isCandidate := false
		switch i {
		case cm.undecided:
			name = "Undecided"
		case cm.other:
			name = "Other"
		default:
			cand, ok := cm.candidates[i]
			if !ok {
				continue
			}
			name, party = cand.Name, cand.Party
			isCandidate = true
		}
		value, ok := textutil.ParsePercent(cell(i))
		if !ok {
			continue
		}
		if isCandidate {
			candidateShares++
		}
		results = append(results, PollResult{Candidate: name, Party: party, Percent: value})
	}
	if candidateShares == 0 {
		return PollRecord{}, false
	}

	start, end := ParseFieldwork(cell(cm.date))

	record := PollRecord{
		Pollster:      pollster,
		Kind:          kind,
		StartDate:     start,
		EndDate:       end,
		SampleSize:    cell(cm.sample),
		MarginOfError: cell(cm.margin),
		Results:       results,
		SourceOrigin:  table.SourceOrigin,
		SourceURL:     table.URL,
	}
	record.ID = PollID(record.Pollster, record.StartDate, record.Kind)
	return record, true
}

// matchupFromColumns renders "Blackburn (R) vs Green (D)" from the
// candidate columns in header order.
func matchupFromColumns(headers []string, cm columnMap) string {
	var parts []string
	for i := range headers {
		cand, ok := cm.candidates[i]
		if !ok {
			continue
		}
		suffix := ""
		switch cand.Party {
		case "rep":
			suffix = " (R)"
		case "dem":
			suffix = " (D)"
		case "ind":
			suffix = " (I)"
		}
		parts = append(parts, cand.Name+suffix)
	}
	return strings.Join(parts, " vs ")
}

// ratingsFromTable converts a race-rating table. Ratings are a
// by-forecaster snapshot, identity comes from the forecaster name.
func (t ToWin) ratingsFromTable(table RawTable) []RaceRating {
	sourceCol, ratingCol, dateCol := -1, -1, -1
	for i, h := range table.Headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(lower, "source") || strings.Contains(lower, "forecaster"):
			sourceCol = i
		case strings.Contains(lower, "rating") || strings.Contains(lower, "ranking"):
			ratingCol = i
		case strings.Contains(lower, "date") || strings.Contains(lower, "updated"):
			dateCol = i
		}
	}
	if sourceCol < 0 || ratingCol < 0 {
		// some rating tables are forecaster-per-column with a
		// single rating row
		return t.ratingsFromColumnarTable(table)
	}

	var ratings []RaceRating
	for _, row := range table.Rows {
		if sourceCol >= len(row) || ratingCol >= len(row) {
			continue
		}
		forecaster := strings.TrimSpace(row[sourceCol])
		rating := strings.TrimSpace(row[ratingCol])
		if forecaster == "" || rating == "" {
			continue
		}
		asOf := ""
		if dateCol >= 0 && dateCol < len(row) {
			asOf, _ = ParseFieldwork(row[dateCol])
		}
		ratings = append(ratings, RaceRating{
			Forecaster: forecaster,
			Rating:     rating,
			AsOf:       asOf,
			SourceURL:  table.URL,
		})
	}
	return ratings
}

func (t ToWin) ratingsFromColumnarTable(table RawTable) []RaceRating {
	if len(table.Rows) == 0 {
		return nil
	}
	row := table.Rows[0]
	var ratings []RaceRating
	for i, h := range table.Headers {
		if i >= len(row) {
			break
		}
		forecaster := strings.TrimSpace(h)
		rating := strings.TrimSpace(row[i])
		if forecaster == "" || rating == "" {
			continue
		}
		if !t.classifier.isForecaster(forecaster) {
			continue
		}
		ratings = append(ratings, RaceRating{
			Forecaster: forecaster,
			Rating:     rating,
			SourceURL:  table.URL,
		})
	}
	return ratings
}

// ExtractTables walks every table on the page, attaches its nearest
// preceding heading as context, classifies it, and converts it.
func (t ToWin) ExtractTables(ctx context.Context, doc *goquery.Document, pageURL string) ToWinExtract {
	var extract ToWinExtract

	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		cells := htmlutil.TableCells(sel)
		if len(cells) < 2 {
			return
		}

		heading := ""
		if len(sel.Nodes) > 0 {
			heading = htmlutil.PrecedingHeading(sel.Nodes[0], 40)
		}
		raw := RawTable{
			SourceOrigin: toWinOrigin,
			URL:          pageURL,
			Context:      heading,
			Headers:      cells[0],
			Rows:         cells[1:],
		}

		switch t.classifier.Classify(raw) {
		case TableRaceRating:
			extract.RaceRatings = append(extract.RaceRatings, t.ratingsFromTable(raw)...)
		case TablePrimaryPoll:
			records, failed := t.pollsFromTable(ctx, raw, KindPrimary)
			extract.Polls = append(extract.Polls, records...)
			extract.SoftFailures += failed
		case TableGeneralPoll:
			records, failed := t.pollsFromTable(ctx, raw, KindGeneral)
			extract.GeneralPolls = append(extract.GeneralPolls, records...)
			extract.SoftFailures += failed
		default:
			slog.DebugContext(ctx, "discarding unclassified table",
				"context", heading, "headers", raw.Headers)
		}
	})

	return extract
}

// Scrape fetches the configured 270toWin page and extracts every
// usable table on it.
func (t ToWin) Scrape(ctx context.Context) (ToWinExtract, error) {
	res, err := t.client.R().SetContext(ctx).Get(t.config.ToWinURL)
	if err != nil {
		return ToWinExtract{}, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		return ToWinExtract{}, err
	}
	extract := t.ExtractTables(ctx, doc, t.config.ToWinURL)
	slog.InfoContext(ctx, "scraped 270towin",
		"primaryPolls", len(extract.Polls),
		"generalPolls", len(extract.GeneralPolls),
		"raceRatings", len(extract.RaceRatings),
		"softFailures", extract.SoftFailures)
	return extract, nil
}
