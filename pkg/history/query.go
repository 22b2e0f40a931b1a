package history

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Query selects index entries. Empty fields match everything.
type Query struct {
	// Field matches the roadmap field exactly.
	Field string
	// Name matches a case-insensitive substring of the full name.
	Name  string
	Limit int
}

// Summary counts what an entry list covers.
type Summary struct {
	Total      int
	Curated    int
	Overflowed int
	ByField    map[string]int
}

// Find returns the indexed entries matching q, newest first.
func (idx *Indexer) Find(ctx context.Context, q Query) (entries []Entry, err error) {
	var index Index
	index, err = idx.Load()
	if err != nil {
		err = errors.Wrap(err, "failed to load index")
		return entries, err
	}

	name := strings.ToLower(q.Name)
	entries = []Entry{}
	for _, e := range index.Entries {
		if ctx.Err() != nil {
			err = ctx.Err()
			return entries, err
		}
		if q.Field != "" && e.Field != q.Field {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(e.FullName), name) {
			continue
		}
		entries = append(entries, e)
		if q.Limit > 0 && len(entries) == q.Limit {
			break
		}
	}

	return entries, err
}

// Summarize tallies entries by field.
func Summarize(entries []Entry) (s Summary) {
	s = Summary{ByField: map[string]int{}}
	for _, e := range entries {
		s.Total++
		s.ByField[e.Field]++
		if e.Curated {
			s.Curated++
		}
		if e.Overflowed {
			s.Overflowed++
		}
	}
	return s
}

// Fields returns the summary's field labels, most frequent first.
func (s Summary) Fields() (fields []string) {
	fields = make([]string, 0, len(s.ByField))
	for f := range s.ByField {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool {
		if s.ByField[fields[i]] != s.ByField[fields[j]] {
			return s.ByField[fields[i]] > s.ByField[fields[j]]
		}
		return fields[i] < fields[j]
	})
	return fields
}
