// Package model contains the dataset records shared by every pipeline stage.
package model

import (
	"strconv"
	"strings"
	"time"
)

// GamesType is the edition a participation belongs to.
type GamesType string

// Known games types.
const (
	Summer GamesType = "Summer"
	Winter GamesType = "Winter"
)

// Medal is the award of a participation. The zero value means no medal.
type Medal string

// Known medals.
const (
	NoMedal Medal = ""
	Gold    Medal = "Gold"
	Silver  Medal = "Silver"
	Bronze  Medal = "Bronze"
)

// NoMedalLabel is the display label for unmedaled rows.
const NoMedalLabel = "No Medal"

// Medals lists the awarded medals in podium order.
var Medals = []Medal{Gold, Silver, Bronze}

// Present reports whether the medal was actually won.
func (m Medal) Present() bool { return m != NoMedal }

// Label returns the display label, substituting NoMedalLabel for the zero value.
func (m Medal) Label() string {
	if m == NoMedal {
		return NoMedalLabel
	}
	return string(m)
}

// ParseMedal maps raw text to a Medal. Empty text, the "No Medal" sentinel and
// any other unknown value all mean no medal.
func ParseMedal(s string) Medal {
	s = strings.TrimSpace(s)
	for _, m := range Medals {
		if strings.EqualFold(s, string(m)) {
			return m
		}
	}
	return NoMedal
}

// ParticipationRecord is one athlete-event entry.
type ParticipationRecord struct {
	Year              int        `json:"year"`
	Type              GamesType  `json:"type"`
	NOC               string     `json:"noc"`
	Gender            string     `json:"gender"`
	Age               *float64   `json:"age,omitempty"`
	HeightCM          *float64   `json:"height_cm,omitempty"`
	WeightKG          *float64   `json:"weight_kg,omitempty"`
	Medal             Medal      `json:"medal,omitempty"`
	Name              string     `json:"name"`
	Event             string     `json:"event,omitempty"`
	Discipline        string     `json:"discipline"`
	DisciplineGrouped string     `json:"discipline_grouped"`
	BornDate          *time.Time `json:"born_date,omitempty"`
}

// Category returns the categorical value of f for grouping. The second result
// is false when f is not a categorical field.
func (r *ParticipationRecord) Category(f Field) (string, bool) {
	switch f {
	case FieldYear:
		return strconv.Itoa(r.Year), true
	case FieldType:
		return string(r.Type), true
	case FieldNOC:
		return r.NOC, true
	case FieldGender:
		return r.Gender, true
	case FieldMedal:
		return r.Medal.Label(), true
	case FieldName:
		return r.Name, true
	case FieldEvent:
		return r.Event, true
	case FieldDiscipline:
		return r.Discipline, true
	case FieldDisciplineGrouped:
		return r.DisciplineGrouped, true
	default:
		return "", false
	}
}

// Value returns the numeric value of f. ok is false when the cell is null or
// f is not a numeric field.
func (r *ParticipationRecord) Value(f Field) (v float64, ok bool) {
	var p *float64
	switch f {
	case FieldYear:
		return float64(r.Year), true
	case FieldAge:
		p = r.Age
	case FieldHeight:
		p = r.HeightCM
	case FieldWeight:
		p = r.WeightKG
	default:
		return 0, false
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// CountryMetadata is one row of the coordinate table.
type CountryMetadata struct {
	NOC       string  `json:"noc"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
