package polls

import (
	"fmt"
	"sort"
)

// BuildTrendline turns the primary-poll history into a plottable
// series following the lead candidate. Polls without a fieldwork
// start date or without a share for the lead candidate cannot be
// placed on the series and are left out.
func BuildTrendline(records []PollRecord, lead Candidate) Trendline {
	var points []TrendPoint
	for _, record := range records {
		if record.Kind != KindPrimary || record.StartDate == "" {
			continue
		}
		support := map[string]float64{}
		for _, result := range record.Results {
			support[result.Candidate] = result.Percent
		}
		if _, ok := support[lead.Name]; !ok {
			continue
		}
		points = append(points, TrendPoint{
			Date:     record.StartDate,
			Pollster: record.Pollster,
			Support:  support,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return Trendline{
		Description: describeTrend(points, lead),
		Data:        points,
	}
}

// describeTrend summarizes the series from its two endpoints. The
// in-between points are plotted, not narrated.
func describeTrend(points []TrendPoint, lead Candidate) string {
	switch len(points) {
	case 0:
		return "No qualifying primary polls yet."
	case 1:
		p := points[0]
		desc := fmt.Sprintf("%s at %.1f%% in the only qualifying poll (%s).",
			lead.Name, p.Support[lead.Name], p.Pollster)
		if und, ok := p.Support["Undecided"]; ok {
			desc += fmt.Sprintf(" Undecided at %.0f%%.", und)
		}
		return desc
	}

	first := points[0]
	last := points[len(points)-1]
	delta := last.Support[lead.Name] - first.Support[lead.Name]

	pollsters := map[string]bool{}
	for _, p := range points {
		pollsters[p.Pollster] = true
	}

	desc := fmt.Sprintf("%s %+.1f pts between %s and %s across %d polls from %d pollsters.",
		lead.Name, delta, first.Date, last.Date, len(points), len(pollsters))
	if und, ok := last.Support["Undecided"]; ok {
		desc += fmt.Sprintf(" Undecided at %.0f%%.", und)
	}
	return desc
}
