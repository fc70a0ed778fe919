package guest

import (
	"sort"
	"strings"
)

// Channel narrows a guest list by payment channel.
type Channel string

const (
	ChannelAll  Channel = "all"
	ChannelCash Channel = "cash"
	ChannelBank Channel = "bank"
)

// LocationAll disables the location predicate.
const LocationAll = "all"

// Filter returns the guests passing all three predicates:
// - query: case-insensitive substring over name, note and location,
// - channel: all, cash (method exactly "cash") or bank (anything else),
// - location: all, or exact match on the guest's location.
func Filter(gs []Guest, query string, channel Channel, location string) []Guest {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Guest, 0, len(gs))
	for _, g := range gs {
		if q != "" && !matchesQuery(g, q) {
			continue
		}
		if !matchesChannel(g, channel) {
			continue
		}
		if location != "" && location != LocationAll && g.Location != location {
			continue
		}
		out = append(out, g)
	}
	return out
}

func matchesQuery(g Guest, q string) bool {
	return strings.Contains(strings.ToLower(g.Name), q) ||
		strings.Contains(strings.ToLower(g.Note), q) ||
		strings.Contains(strings.ToLower(g.Location), q)
}

func matchesChannel(g Guest, c Channel) bool {
	switch c {
	case ChannelCash:
		return g.IsCash()
	case ChannelBank:
		return !g.IsCash()
	default:
		return true
	}
}

// Locations returns the sorted distinct non-blank locations across all
// guests, for populating the location filter options.
func Locations(gs []Guest) []string {
	seen := make(map[string]struct{})
	for _, g := range gs {
		if strings.TrimSpace(g.Location) == "" {
			continue
		}
		seen[g.Location] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
