package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, NormalizeName(m)) {
			return true
		}
	}
	return false
}

var slugStripRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases the input and collapses every run of
// non-alphanumeric characters into a single dash, so the same
// pollster/date combination always produces the same slug no
// matter how a source punctuates it.
func Slugify(parts ...string) string {
	joined := strings.ToLower(strings.Join(parts, "-"))
	joined = slugStripRegex.ReplaceAllString(joined, "-")
	return strings.Trim(joined, "-")
}

var percentRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%?`)

// ParsePercent pulls a 0-100 percentage out of strings like
// "46%", " 46 ", "46.5%". The second return is false when the
// cell holds no usable number, the caller is expected to omit
// the value rather than substitute one.
func ParsePercent(s string) (float64, bool) {
	m := percentRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}

// ParseDollar parses display strings like "$5,357,822.23".
// Malformed input ("?", "", "N/A") parses to 0.0, a single
// unreadable disclosure page must not abort the finance run.
func ParseDollar(s string) float64 {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" || cleaned == "?" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// Truncate cuts s to at most n runes, appending an ellipsis
// when anything was dropped.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
