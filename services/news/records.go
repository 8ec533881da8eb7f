package news

import (
	"crypto/md5"
	"encoding/hex"
)

// Article is one normalized news item about the race.
type Article struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	URL        string   `json:"url"`
	Source     string   `json:"source"`
	Published  string   `json:"published"`
	Candidates []string `json:"candidates"`
	Parties    []string `json:"parties,omitempty"`
	Tags       []string `json:"tags"`
}

func (a Article) MergeKey() string { return a.ID }

func (a Article) SortDate() string { return a.Published }

// ArticleID derives a stable short id from the title and publish
// date. Feeds re-serve the same story with shifting GUIDs and
// tracking query params, title plus date survives that.
func ArticleID(title, published string) string {
	sum := md5.Sum([]byte(title + published))
	return hex.EncodeToString(sum[:])[:12]
}

// File is the news.json output schema.
type File struct {
	LastUpdated string    `json:"lastUpdated"`
	LastMerged  string    `json:"lastMerged,omitempty"`
	Articles    []Article `json:"articles"`
}

func NewFile() *File {
	return &File{Articles: []Article{}}
}
