package gateway

import (
	"cmp"
	"maps"
	"slices"

	"github.com/lixenwraith/liveheart/store"
)

const (
	// StatsWindow is how many recent shares the distribution covers
	StatsWindow = 5000
	// RecentCount is how many shares the stats gallery lists
	RecentCount = 24
)

// Stats is the distribution of recent shares by DNA trait
type Stats struct {
	Total      int             `json:"total"`
	TopPalette string          `json:"topPalette"`
	Structures map[string]int  `json:"structures"`
	Physics    map[string]int  `json:"physics"`
	Scales     map[string]int  `json:"scales"`
	Palettes   map[string]int  `json:"palettes"`
	Recent     []ShareResponse `json:"recent"`
}

// newStats combines trait counts with the gallery of recent shares, newest first
func newStats(counts store.TraitCounts, recent []store.Share) Stats {
	st := Stats{
		Total:      counts.Total,
		TopPalette: top(counts.Palettes),
		Structures: counts.Structures,
		Physics:    counts.Physics,
		Scales:     counts.Scales,
		Palettes:   counts.Palettes,
		Recent:     make([]ShareResponse, 0, len(recent)),
	}
	for _, sh := range recent {
		st.Recent = append(st.Recent, shareResponse(sh))
	}
	return st
}

// top returns the most frequent key, breaking ties by name
func top(counts map[string]int) string {
	keys := slices.SortedFunc(maps.Keys(counts), func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
