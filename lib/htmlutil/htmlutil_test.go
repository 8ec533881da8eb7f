package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const sectionedPage = `
<html><body>
<h2>Republican Primary</h2>
<p>Intro text.</p>
<div>
  <table id="polls">
    <tr><th>Poll</th><th>Date</th><th>Blackburn</th></tr>
    <tr><td>Beacon Center</td><td>Jan 6 - Jan 9, 2026</td><td>46%</td></tr>
  </table>
</div>
<h2>General Election</h2>
<table id="general">
  <tr><th>Poll</th><th>Blackburn (R)</th><th>Green (D)</th></tr>
</table>
</body></html>
`

func TestPrecedingHeading(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sectionedPage))
	require.NoError(t, err)

	primary := doc.Find("#polls")
	require.Len(t, primary.Nodes, 1)
	require.Equal(t, "Republican Primary", PrecedingHeading(primary.Nodes[0], 50))

	general := doc.Find("#general")
	require.Len(t, general.Nodes, 1)
	require.Equal(t, "General Election", PrecedingHeading(general.Nodes[0], 50))
}

func TestPrecedingHeadingBounded(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sectionedPage))
	require.NoError(t, err)

	general := doc.Find("#general")
	require.Equal(t, "", PrecedingHeading(general.Nodes[0], 0))
}

func TestTableCells(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sectionedPage))
	require.NoError(t, err)

	rows := TableCells(doc.Find("#polls"))
	require.Len(t, rows, 2)
	require.Equal(t, []string{"Poll", "Date", "Blackburn"}, rows[0])
	require.Equal(t, []string{"Beacon Center", "Jan 6 - Jan 9, 2026", "46%"}, rows[1])
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b", CleanText("  a \n\t b  "))
}
