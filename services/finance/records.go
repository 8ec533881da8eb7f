package finance

import "tnfirefly-backend/lib/textutil"

// CandidateFinance is one campaign committee's money picture, read
// off its most recent disclosure report.
type CandidateFinance struct {
	Candidate  string  `json:"candidate"`
	Party      string  `json:"party"`
	Committee  string  `json:"committee"`
	Raised     float64 `json:"raised"`
	Spent      float64 `json:"spent"`
	CashOnHand float64 `json:"cashOnHand"`
	Loans      float64 `json:"loans"`
	// raised plus outstanding loans, the figure campaigns brag with
	WarChest   float64 `json:"warChest"`
	ReportName string  `json:"report,omitempty"`
	ReportDate string  `json:"reportDate,omitempty"`
	SourceURL  string  `json:"url,omitempty"`
	// editorial annotation, survives re-scrapes
	Notes string `json:"notes,omitempty"`
}

func (c CandidateFinance) MergeKey() string {
	return textutil.Slugify(c.Candidate)
}

// File is the finance.json output schema. Candidates are kept in
// raised-descending order, the natural reading order for a money
// table.
type File struct {
	LastUpdated string             `json:"lastUpdated"`
	Candidates  []CandidateFinance `json:"candidates"`
}

func NewFile() *File {
	return &File{Candidates: []CandidateFinance{}}
}
