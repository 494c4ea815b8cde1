package aggregate

import (
	"github.com/okian/podium/internal/domain/model"
)

// Tally is the per-NOC medal summary.
type Tally struct {
	NOC           string `json:"noc"`
	TotalAthletes int    `json:"total_athletes"`
	TotalMedals   int    `json:"total_medals"`
	Gold          int    `json:"gold"`
	Silver        int    `json:"silver"`
	Bronze        int    `json:"bronze"`
}

// MedalTally groups by NOC and computes, in a single pass, the distinct
// athletes, the medals won and the per-medal counts. Gold+Silver+Bronze always
// equals TotalMedals. Groups keep first-appearance order.
func MedalTally(records []model.ParticipationRecord) []Tally {
	index := make(map[string]int)
	athletes := make([]map[string]struct{}, 0)
	out := make([]Tally, 0)

	for i := range records {
		r := &records[i]
		pos, ok := index[r.NOC]
		if !ok {
			pos = len(out)
			index[r.NOC] = pos
			out = append(out, Tally{NOC: r.NOC})
			athletes = append(athletes, make(map[string]struct{}))
		}
		if r.Name != "" {
			athletes[pos][r.Name] = struct{}{}
		}
		t := &out[pos]
		switch r.Medal {
		case model.Gold:
			t.Gold++
		case model.Silver:
			t.Silver++
		case model.Bronze:
			t.Bronze++
		default:
			continue
		}
		t.TotalMedals++
	}

	for i := range out {
		out[i].TotalAthletes = len(athletes[i])
	}
	return out
}
