package filter

import (
	"strings"

	"github.com/okian/podium/internal/domain/model"
)

// matcher is a predicate compiled for a single pass over the table.
type matcher struct {
	years           *YearRange
	gamesType       string
	country         string
	medal           model.Medal
	genders         map[string]bool
	disciplineGroup string
	discipline      string
}

func compile(p Predicate) matcher {
	n := p.Normalize()
	m := matcher{
		years:           n.Years,
		gamesType:       strings.ToLower(n.GamesType),
		country:         strings.ToLower(n.Country),
		medal:           model.ParseMedal(n.Medal),
		disciplineGroup: strings.ToLower(n.DisciplineGroup),
		discipline:      strings.ToLower(n.Discipline),
	}
	if len(n.Genders) > 0 {
		m.genders = make(map[string]bool, len(n.Genders))
		for _, g := range n.Genders {
			m.genders[strings.ToLower(g)] = true
		}
	}
	return m
}

func (m *matcher) match(r *model.ParticipationRecord) bool {
	if m.years != nil && !m.years.Contains(r.Year) {
		return false
	}
	if m.gamesType != "" && strings.ToLower(string(r.Type)) != m.gamesType {
		return false
	}
	if m.country != "" && strings.ToLower(r.NOC) != m.country {
		return false
	}
	if m.medal.Present() && r.Medal != m.medal {
		return false
	}
	if m.genders != nil && !m.genders[strings.ToLower(r.Gender)] {
		return false
	}
	if m.disciplineGroup != "" && strings.ToLower(r.DisciplineGrouped) != m.disciplineGroup {
		return false
	}
	if m.discipline != "" && strings.ToLower(r.Discipline) != m.discipline {
		return false
	}
	return true
}

// Apply returns the records matching every constraint of p, in input order.
// The input slice is never modified. No match yields an empty, non-nil slice.
func Apply(records []model.ParticipationRecord, p Predicate) []model.ParticipationRecord {
	m := compile(p)
	out := make([]model.ParticipationRecord, 0, len(records))
	for i := range records {
		if m.match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// Match reports whether a single record satisfies p.
func Match(r model.ParticipationRecord, p Predicate) bool {
	m := compile(p)
	return m.match(&r)
}
