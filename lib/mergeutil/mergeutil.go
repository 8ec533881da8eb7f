// Package mergeutil implements the identity-keyed merge discipline
// shared by every record collection in the tracker: scraped data is
// merged update-or-append by identity key, a manual editorial layer
// always wins on key collision, and repeating a merge changes nothing.
package mergeutil

import (
	"sort"
	"strings"
)

// Keyed is any record with a stable composite identity key. Two
// records with equal keys are the same logical record, the fresher
// one replaces the staler one wherever both appear.
type Keyed interface {
	MergeKey() string
}

// Dated is a Keyed record carrying an ISO calendar date used for
// ordering. An empty date means "unknown" and sorts after every
// dated record.
type Dated interface {
	Keyed
	SortDate() string
}

// UpdateByID merges additions into dst: a record whose key already
// exists replaces the old one in place, anything else is appended.
// The result is re-sorted by date descending with unknown dates
// last, original relative order preserved among equals. Applying
// the same additions twice yields the same result as applying once.
func UpdateByID[T Dated](dst, additions []T) []T {
	index := make(map[string]int, len(dst))
	out := make([]T, len(dst))
	copy(out, dst)
	for i, record := range out {
		index[record.MergeKey()] = i
	}

	for _, record := range additions {
		if i, ok := index[record.MergeKey()]; ok {
			out[i] = record
			continue
		}
		index[record.MergeKey()] = len(out)
		out = append(out, record)
	}

	SortByDateDesc(out)
	return out
}

// OverlayByID applies the manual layer on top of the scraped layer.
// A manual record replaces the scraped record sharing its key
// regardless of recency, unmatched manual records are appended. The
// result is rebuilt from the two inputs alone, so keys present in
// neither are pruned rather than carried forward.
func OverlayByID[T Dated](scraped, manual []T) []T {
	out := make([]T, len(scraped))
	copy(out, scraped)

	index := make(map[string]int, len(out))
	for i, record := range out {
		index[record.MergeKey()] = i
	}
	for _, record := range manual {
		if i, ok := index[record.MergeKey()]; ok {
			out[i] = record
			continue
		}
		index[record.MergeKey()] = len(out)
		out = append(out, record)
	}

	SortByDateDesc(out)
	return out
}

// SortByDateDesc orders records newest first. Records with no date
// are informative enough to keep but cannot be placed, they go last.
func SortByDateDesc[T Dated](records []T) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].SortDate(), records[j].SortDate()
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a > b
	})
}

// MergeGrouped merges topic-keyed collections like issuePolling.
// Manual entries land in their matching topic unless an entry with
// the same secondary key is already there, unseen topics are
// created fresh.
func MergeGrouped[T any](scraped, manual map[string][]T, secondaryKey func(T) string) map[string][]T {
	merged := make(map[string][]T, len(scraped))
	for topic, entries := range scraped {
		merged[topic] = append([]T(nil), entries...)
	}

	for topic, entries := range manual {
		seen := make(map[string]bool, len(merged[topic]))
		for _, e := range merged[topic] {
			seen[secondaryKey(e)] = true
		}
		for _, e := range entries {
			k := secondaryKey(e)
			if seen[k] {
				continue
			}
			merged[topic] = append(merged[topic], e)
			seen[k] = true
		}
	}
	return merged
}

// AppendByName appends additions whose name is not already present,
// compared case-insensitively. Existing entries are never replaced,
// the name list is reference data rather than scraped state.
func AppendByName[T any](dst, additions []T, name func(T) string) []T {
	seen := make(map[string]bool, len(dst))
	out := append([]T(nil), dst...)
	for _, e := range out {
		seen[strings.ToLower(name(e))] = true
	}
	for _, e := range additions {
		k := strings.ToLower(name(e))
		if seen[k] {
			continue
		}
		out = append(out, e)
		seen[k] = true
	}
	return out
}
