package endorsements

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const endorsementPage = `<html><body>
<h2>Federal officials</h2>
<ul>
<li><b>Donald Trump</b>, 47th President of the United States[3]</li>
<li><b>Bill Hagerty</b>, U.S. Senator from Tennessee</li>
</ul>
<h2>State officials</h2>
<ul>
<li>Cameron Sexton, Speaker of the Tennessee House
<ul><li>Jack Johnson, Senate Majority Leader</li></ul>
</li>
</ul>
<h2>Organizations</h2>
<ul>
<li>Tennessee Right to Life</li>
</ul>
<h2>References</h2>
<ul>
<li>Smith, John (2026). "Campaign roundup". The Tennessean.</li>
</ul>
</body></html>`

func blackburnPage() Page {
	return Page{Candidate: "Blackburn", Party: "rep", URL: "https://en.wikipedia.org/wiki/example"}
}

func TestExtractEndorsements(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(endorsementPage))
	require.NoError(t, err)

	got := extractEndorsements(doc, blackburnPage())
	require.Len(t, got, 5)

	require.Equal(t, "Donald Trump", got[0].Endorser)
	require.Equal(t, "47th President of the United States", got[0].Role)
	require.Equal(t, "Federal officials", got[0].Category)
	require.Equal(t, "Blackburn", got[0].Candidate)

	require.Equal(t, "Bill Hagerty", got[1].Endorser)
	require.Equal(t, "Cameron Sexton", got[2].Endorser)
	require.Equal(t, "State officials", got[2].Category)
	require.Equal(t, "Jack Johnson", got[3].Endorser)

	require.Equal(t, "Tennessee Right to Life", got[4].Endorser)
	require.Empty(t, got[4].Role)
}

func TestSplitEndorserCutsCitations(t *testing.T) {
	endorser, role := splitEndorser("Donald Trump, 47th President of the United States[3]")
	require.Equal(t, "Donald Trump", endorser)
	require.Equal(t, "47th President of the United States", role)

	endorser, role = splitEndorser("Tennessee Right to Life")
	require.Equal(t, "Tennessee Right to Life", endorser)
	require.Empty(t, role)

	endorser, _ = splitEndorser(strings.Repeat("not a name ", 20))
	require.Empty(t, endorser)
}

func TestRecordDetectsOnlyNewEndorsements(t *testing.T) {
	file := NewFile()
	file.Endorsements = []Endorsement{
		{Endorser: "Donald Trump", Candidate: "Blackburn", FirstSeen: "2025-11-01"},
	}

	s := Service{}
	fresh := s.record(file, []Endorsement{
		{Endorser: "Donald Trump", Candidate: "Blackburn"},
		{Endorser: "Bill Hagerty", Candidate: "Blackburn"},
	})

	require.Len(t, fresh, 1)
	require.Equal(t, "Bill Hagerty", fresh[0].Endorser)
	require.NotEmpty(t, fresh[0].FirstSeen)

	require.Len(t, file.Endorsements, 2)
	// the already-known endorsement keeps its original first-seen date
	require.Equal(t, "2025-11-01", file.Endorsements[0].FirstSeen)
}

type captureMailer struct {
	subjects []string
	bodies   []string
}

func (m *captureMailer) Send(subject, body string) error {
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	return nil
}

func TestAlertGatedByConfig(t *testing.T) {
	mailer := &captureMailer{}
	fresh := []Endorsement{{Endorser: "Bill Hagerty", Role: "U.S. Senator from Tennessee", Candidate: "Blackburn"}}

	s := Service{config: Config{Alerts: AlertConfig{Enabled: false}}, mailer: mailer}
	s.alert(context.Background(), fresh)
	require.Empty(t, mailer.subjects)

	s.config.Alerts.Enabled = true
	s.alert(context.Background(), fresh)
	require.Len(t, mailer.subjects, 1)
	require.Contains(t, mailer.subjects[0], "1 new endorsement")
	require.Contains(t, mailer.bodies[0], "- Bill Hagerty (U.S. Senator from Tennessee) endorsed Blackburn")
}
