package news

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manual is the news section of the editorial override file.
// Manual articles win over scraped articles sharing an id.
type Manual struct {
	Articles []Article `json:"articles"`
}

// ReadManual loads the news section of the override file. A missing
// file means no overrides.
func ReadManual(path string) (Manual, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Manual{}, nil
	}
	if err != nil {
		return Manual{}, fmt.Errorf("read manual overrides: %w", err)
	}
	var wrapper struct {
		News Manual `json:"news"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return Manual{}, fmt.Errorf("parse manual overrides: %w", err)
	}
	return wrapper.News, nil
}
