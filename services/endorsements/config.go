package endorsements

// Page is one endorsement roundup to watch, typically the
// candidate's Wikipedia endorsements article.
type Page struct {
	Candidate string `json:"candidate"`
	Party     string `json:"party"`
	URL       string `json:"url"`
}

// AlertConfig wires the new-endorsement email notification. Left
// disabled it turns the alert path into a no-op.
type AlertConfig struct {
	Enabled  bool     `json:"enabled"`
	SMTPHost string   `json:"smtp_host"`
	SMTPPort int      `json:"smtp_port"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	From     string   `json:"from"`
	To       []string `json:"to"`
}

type Config struct {
	Pages  []Page      `json:"pages"`
	Alerts AlertConfig `json:"alerts"`
}

func DefaultConfig() Config {
	return Config{
		Pages: []Page{
			{
				Candidate: "Blackburn",
				Party:     "rep",
				URL:       "https://en.wikipedia.org/wiki/List_of_Marsha_Blackburn_2026_gubernatorial_campaign_endorsements",
			},
			{
				Candidate: "Rose",
				Party:     "rep",
				URL:       "https://en.wikipedia.org/wiki/List_of_John_Rose_2026_gubernatorial_campaign_endorsements",
			},
		},
		Alerts: AlertConfig{
			SMTPPort: 587,
			From:     "alerts@tnfirefly.com",
		},
	}
}
