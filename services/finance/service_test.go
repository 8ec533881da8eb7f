package finance

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type cannedFetcher struct {
	// committee name -> report amounts page
	reports map[string]string
}

func (f cannedFetcher) Fetch(_ context.Context, url string) (string, error) {
	for name, page := range f.reports {
		if strings.Contains(url, committeeSlug(name)) {
			return page, nil
		}
	}
	// the initial session-cookie fetch of the search page
	return "<html></html>", nil
}

func (f cannedFetcher) FetchForm(_ context.Context, _ string, form map[string]string) (string, error) {
	name := form["committeeName"]
	if _, ok := f.reports[name]; !ok {
		return "", fmt.Errorf("registry timeout")
	}
	return fmt.Sprintf(`<table>
<tr><td><a href="/report/%s">2026 Early Mid-Year</a></td><td>07/01/2026</td></tr>
</table>`, committeeSlug(name)), nil
}

func committeeSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func moneyPage(receipts, expenditures, balance string) string {
	return fmt.Sprintf(`<table>
<tr><td>Total Receipts</td><td>%s</td></tr>
<tr><td>Total Expenditures</td><td>%s</td></tr>
<tr><td>Balance On Hand</td><td>%s</td></tr>
<tr><td>Loans Outstanding</td><td>$0.00</td></tr>
</table>`, receipts, expenditures, balance)
}

func TestScrapeSortsByRaisedAndSkipsFailures(t *testing.T) {
	config := Config{
		SearchURL: "https://apps.tn.gov/tncamp-app/public/scsearch.htm",
		Committees: []Committee{
			{Candidate: "Rose", Party: "rep", Committee: "John Rose for Tennessee"},
			{Candidate: "Blackburn", Party: "rep", Committee: "Marsha Blackburn for Governor"},
			{Candidate: "Fritts", Party: "rep", Committee: "Friends of Monty Fritts"},
		},
	}
	service := Service{
		config: config,
		store:  NewStore(filepath.Join(t.TempDir(), "finance.json")),
		client: cannedFetcher{reports: map[string]string{
			"John Rose for Tennessee":       moneyPage("$800,000.00", "$100,000.00", "$700,000.00"),
			"Marsha Blackburn for Governor": moneyPage("$5,357,822.23", "$1,202,110.00", "$4,155,712.23"),
			// Fritts missing: committee search fails, run continues
		}},
	}

	file, err := service.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, file.Candidates, 2)
	require.Equal(t, "Blackburn", file.Candidates[0].Candidate)
	require.Equal(t, 5357822.23, file.Candidates[0].Raised)
	require.Equal(t, 5357822.23, file.Candidates[0].WarChest)
	require.Equal(t, "Rose", file.Candidates[1].Candidate)

	// persisted
	require.Len(t, service.store.Load().Candidates, 2)
}

func TestScrapeFatalWhenNothingReadable(t *testing.T) {
	service := Service{
		config: DefaultConfig(),
		store:  NewStore(filepath.Join(t.TempDir(), "finance.json")),
		client: cannedFetcher{reports: map[string]string{}},
	}

	_, err := service.Scrape(context.Background())
	require.Error(t, err)
	// nothing written over whatever was there before
	require.Empty(t, service.store.Load().Candidates)
}
