package finance

// Committee identifies one candidate committee in the state registry.
type Committee struct {
	Candidate string `json:"candidate"`
	Party     string `json:"party"`
	// name as registered, used as the search query
	Committee string `json:"committee"`
}

type Config struct {
	// Tennessee Registry of Election Finance search page; fetching
	// it first establishes the session cookie the report pages want
	SearchURL  string      `json:"search_url"`
	Committees []Committee `json:"committees"`
}

func DefaultConfig() Config {
	return Config{
		SearchURL: "https://apps.tn.gov/tncamp-app/public/scsearch.htm",
		Committees: []Committee{
			{Candidate: "Blackburn", Party: "rep", Committee: "Marsha Blackburn for Governor"},
			{Candidate: "Rose", Party: "rep", Committee: "John Rose for Tennessee"},
			{Candidate: "Fritts", Party: "rep", Committee: "Friends of Monty Fritts"},
			{Candidate: "Green", Party: "dem", Committee: "Jerri Green for Tennessee"},
			{Candidate: "Atwater", Party: "dem", Committee: "Atwater for Governor"},
		},
	}
}
