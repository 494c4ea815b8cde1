// Package join attaches country coordinates to per-NOC medal tallies.
package join

import (
	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/model"
)

// GeoPoint is a tally left-joined with its country metadata. Unmatched rows
// have HasCoords false and zero coordinates.
type GeoPoint struct {
	aggregate.Tally
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	HasCoords bool    `json:"has_coords"`
}

type options struct {
	requireCoords bool
	dropEmpty     bool
}

// Option tunes Resolve.
type Option func(*options)

// WithRequireCoords drops rows that have no coordinate match.
func WithRequireCoords() Option {
	return func(o *options) { o.requireCoords = true }
}

// WithMedalsOnly drops rows whose TotalMedals is zero or less.
func WithMedalsOnly() Option {
	return func(o *options) { o.dropEmpty = true }
}

// Resolve left-joins tallies with coords on NOC, keeping tally order. Every
// tally row is kept unless an option removes it.
func Resolve(tallies []aggregate.Tally, coords []model.CountryMetadata, opts ...Option) []GeoPoint {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	index := make(map[string]int, len(coords))
	for i, c := range coords {
		if _, dup := index[c.NOC]; !dup {
			index[c.NOC] = i
		}
	}

	out := make([]GeoPoint, 0, len(tallies))
	for _, t := range tallies {
		if o.dropEmpty && t.TotalMedals <= 0 {
			continue
		}
		p := GeoPoint{Tally: t}
		if i, ok := index[t.NOC]; ok {
			c := coords[i]
			p.Country = c.Country
			p.Latitude = c.Latitude
			p.Longitude = c.Longitude
			p.HasCoords = true
		}
		if o.requireCoords && !p.HasCoords {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ForMap prepares tallies for a medal map: only matched countries that won
// at least one medal.
func ForMap(tallies []aggregate.Tally, coords []model.CountryMetadata) []GeoPoint {
	return Resolve(tallies, coords, WithRequireCoords(), WithMedalsOnly())
}
