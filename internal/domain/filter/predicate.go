// Package filter narrows the participation table to the rows a view asks for.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/podium/internal/domain/model"
)

// ErrInvalidPredicate is returned for predicates that can never be satisfied
// by construction, e.g. an inverted year range.
var ErrInvalidPredicate = errors.New("invalid predicate")

// Any is the wildcard accepted by the single-value options.
const Any = "Any"

var validate = validator.New(validator.WithRequiredStructEnabled())

// YearRange is an inclusive range of edition years.
type YearRange struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gtefield=Min"`
}

// Contains reports whether min <= year <= max.
func (y YearRange) Contains(year int) bool {
	return y.Min <= year && year <= y.Max
}

// Predicate is an immutable conjunction of independent constraints. The zero
// value matches every record.
type Predicate struct {
	Years           *YearRange `json:"year_range,omitempty" validate:"omitempty"`
	GamesType       string     `json:"games_type,omitempty" validate:"omitempty,oneof=Summer Winter"`
	Country         string     `json:"country,omitempty"`
	Medal           string     `json:"medal,omitempty" validate:"omitempty,oneof=Gold Silver Bronze"`
	Genders         []string   `json:"genders,omitempty" validate:"dive,required"`
	DisciplineGroup string     `json:"discipline_group,omitempty"`
	Discipline      string     `json:"discipline,omitempty"`
}

// Normalize returns a copy with wildcards cleared and enum values in their
// canonical spelling.
func (p Predicate) Normalize() Predicate {
	out := p
	out.GamesType = canonical(p.GamesType, string(model.Summer), string(model.Winter))
	out.Medal = canonical(p.Medal, string(model.Gold), string(model.Silver), string(model.Bronze))
	out.Country = wildcard(p.Country)
	out.DisciplineGroup = wildcard(p.DisciplineGroup)
	out.Discipline = wildcard(p.Discipline)
	if p.Years != nil {
		y := *p.Years
		out.Years = &y
	}
	out.Genders = nil
	for _, g := range p.Genders {
		if g = strings.TrimSpace(g); g != "" {
			out.Genders = append(out.Genders, g)
		}
	}
	return out
}

// Validate checks the normalized predicate.
func (p Predicate) Validate() error {
	n := p.Normalize()
	if err := validate.Struct(n); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPredicate, err)
	}
	return nil
}

// IsEmpty reports whether the predicate imposes no constraint at all.
func (p Predicate) IsEmpty() bool {
	n := p.Normalize()
	return n.Years == nil && n.GamesType == "" && n.Country == "" && n.Medal == "" &&
		len(n.Genders) == 0 && n.DisciplineGroup == "" && n.Discipline == ""
}

// wildcard clears the values that mean "no constraint".
func wildcard(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "any", "all":
		return ""
	}
	return s
}

// canonical maps s onto one of the allowed spellings, case-insensitively.
// Unknown values are returned trimmed so that validation can reject them.
func canonical(s string, allowed ...string) string {
	s = wildcard(s)
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return a
		}
	}
	return s
}
