package polls

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"tnfirefly-backend/lib/mergeutil"
	"tnfirefly-backend/lib/timezone"
)

// ReadManual loads the polls section of the editorial override
// file. No file means no overrides, which is the common case.
func ReadManual(path string) (Manual, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Manual{}, nil
	}
	if err != nil {
		return Manual{}, fmt.Errorf("read manual overrides: %w", err)
	}
	var wrapper struct {
		Polls Manual `json:"polls"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return Manual{}, fmt.Errorf("parse manual overrides: %w", err)
	}
	return wrapper.Polls, nil
}

// ApplyManual layers the editorial file over the scraped state. The
// manual layer always wins on identity collision; on the trendline
// it contributes points the scrapers missed without displacing the
// scraped ones.
func ApplyManual(file *File, manual Manual) {
	file.PollingSources = mergeutil.AppendByName(file.PollingSources, manual.Sources,
		func(s Source) string { return s.Name })
	file.Polls = mergeutil.OverlayByID(file.Polls, manual.Polls)
	file.GeneralPolls = mergeutil.OverlayByID(file.GeneralPolls, manual.GeneralPolls)
	file.IssuePolling = mergeutil.MergeGrouped(file.IssuePolling, manual.IssuePolling,
		IssueRecord.SecondaryKey)

	mergeTrendline(&file.Trendline, manual.Trendline)

	if manual.Analysis != "" {
		file.Analysis = manual.Analysis
	}

	now := timezone.Now()
	file.LastMerged = now.Format(time.RFC3339)
	file.LastUpdated = now.Format("2006-01-02")
}

// mergeTrendline adds manual points the series does not already hold,
// identified by date plus pollster, and keeps the series ascending.
// A non-empty manual description replaces the generated one.
func mergeTrendline(dst *Trendline, manual Trendline) {
	seen := make(map[string]bool, len(dst.Data))
	for _, p := range dst.Data {
		seen[p.Date+"|"+p.Pollster] = true
	}
	for _, p := range manual.Data {
		k := p.Date + "|" + p.Pollster
		if seen[k] {
			continue
		}
		dst.Data = append(dst.Data, p)
		seen[k] = true
	}
	sort.SliceStable(dst.Data, func(i, j int) bool {
		return dst.Data[i].Date < dst.Data[j].Date
	})

	if manual.Description != "" {
		dst.Description = manual.Description
	}
}
