package endorsements

import "tnfirefly-backend/lib/textutil"

// Endorsement is one public figure or organization backing a
// candidate. Endorsements accumulate: once recorded they are never
// dropped by a re-scrape, a retracted endorsement is still news.
type Endorsement struct {
	Endorser  string `json:"endorser"`
	Role      string `json:"role,omitempty"`
	Category  string `json:"category,omitempty"`
	Candidate string `json:"candidate"`
	Party     string `json:"party"`
	SourceURL string `json:"url,omitempty"`
	FirstSeen string `json:"firstSeen,omitempty"`
}

func (e Endorsement) MergeKey() string {
	return textutil.Slugify(e.Endorser, e.Candidate)
}

// File is the endorsements.json output schema.
type File struct {
	LastUpdated  string        `json:"lastUpdated"`
	Endorsements []Endorsement `json:"endorsements"`
}

func NewFile() *File {
	return &File{Endorsements: []Endorsement{}}
}
