package analysis

import (
	"sort"

	"github.com/nonsonwune/olympics_eda/models"
)

// Count is a category and the number of rows in it.
type Count struct {
	Key   string
	Count int
}

// RankCounts orders counts by descending count. Equal counts are ordered
// by key ascending so the ranking does not depend on input order.
// n <= 0 keeps every entry.
func RankCounts(counts map[string]int, n int) []Count {
	out := make([]Count, 0, len(counts))
	for k, c := range counts {
		out = append(out, Count{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// countBy tallies records by key. Records whose key is "" are skipped.
func countBy(records []models.EnrichedRecord, key func(models.EnrichedRecord) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		if k := key(r); k != "" {
			counts[k]++
		}
	}
	return counts
}

// filter returns the records matching keep, as a new slice.
func filter(records []models.EnrichedRecord, keep func(models.EnrichedRecord) bool) []models.EnrichedRecord {
	var out []models.EnrichedRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// YearCount is a number of rows in one year.
type YearCount struct {
	Year  int
	Count int
}

// countByYear tallies records per year, ascending.
func countByYear(records []models.EnrichedRecord) []YearCount {
	counts := make(map[int]int)
	for _, r := range records {
		counts[r.Year]++
	}
	out := make([]YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// GroupValues are the raw values of one (year, group) cell.
type GroupValues struct {
	Year   int
	Group  string
	Values []float64
}

// valuesByYear groups the non-missing values of a feature by year and an
// optional secondary key, ordered by year then group.
func valuesByYear(records []models.EnrichedRecord, feature Feature, group func(models.EnrichedRecord) string) []GroupValues {
	type cell struct {
		year  int
		group string
	}
	cells := make(map[cell][]float64)
	for _, r := range records {
		v := feature.Value(r)
		if !v.Valid {
			continue
		}
		c := cell{year: r.Year}
		if group != nil {
			c.group = group(r)
		}
		cells[c] = append(cells[c], v.Float64)
	}

	out := make([]GroupValues, 0, len(cells))
	for c, vs := range cells {
		out = append(out, GroupValues{Year: c.year, Group: c.group, Values: vs})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Group < out[j].Group
	})
	return out
}
