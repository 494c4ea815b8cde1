// Package sampledata generates synthetic Olympic tables and checks a running
// service against them.
package sampledata

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

type athlete struct {
	name     string
	noc      string
	gender   string
	born     time.Time
	height   *float64
	weight   *float64
	disc     discipline
	debutIdx int
}

// generator draws every random value from one seeded ChaCha8 stream, so a
// seed always yields the same tables.
type generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

func newGenerator(seed uint64) *generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	return &generator{src: src, rng: rand.New(src)}
}

func (g *generator) percent(p int) bool { return g.rng.IntN(100) < p }

func (g *generator) between(lo, hi float64) float64 {
	return math.Round((lo+g.rng.Float64()*(hi-lo))*10) / 10
}

func (g *generator) athlete() (athlete, error) {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		return athlete{}, fmt.Errorf("athlete id: %w", err)
	}
	a := athlete{
		name:   "athlete-" + id.String(),
		noc:    countries[g.rng.IntN(len(countries))].noc,
		gender: "Male",
		disc:   disciplines[g.rng.IntN(len(disciplines))],
	}
	if g.percent(femalePercent) {
		a.gender = "Female"
	}
	years := yearsFor(a.disc)
	a.debutIdx = g.rng.IntN(len(years))
	bornYear := years[a.debutIdx] - 17 - g.rng.IntN(14)
	a.born = time.Date(bornYear, time.Month(1+g.rng.IntN(12)), 1+g.rng.IntN(28), 0, 0, 0, 0, time.UTC)
	if !g.percent(nullBodyPercent) {
		a.height = model.Float(g.between(150, 205))
		a.weight = model.Float(g.between(45, 120))
	}
	return a, nil
}

func yearsFor(d discipline) []int {
	if d.games == string(model.Winter) {
		return winterYears
	}
	return summerYears
}

// Generate builds rows participation records over a pool of athletes that
// each appear in roughly three editions.
func Generate(ctx context.Context, rows int, seed uint64) ([]model.ParticipationRecord, error) {
	if rows < 1 {
		return nil, fmt.Errorf("rows must be positive, got %d", rows)
	}
	g := newGenerator(seed)

	pool := make([]athlete, max(1, rows/rowsPerAthlete))
	for i := range pool {
		a, err := g.athlete()
		if err != nil {
			return nil, err
		}
		pool[i] = a
	}

	records := make([]model.ParticipationRecord, 0, rows)
	for i := 0; i < rows; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		records = append(records, g.record(&pool[i%len(pool)]))
	}
	logger.Get().Info(ctx, "generated participation rows",
		logger.Int("rows", len(records)),
		logger.Int("athletes", len(pool)))
	return records, nil
}

func (g *generator) record(a *athlete) model.ParticipationRecord {
	years := yearsFor(a.disc)
	year := years[min(a.debutIdx+g.rng.IntN(3), len(years)-1)]

	r := model.ParticipationRecord{
		Year:              year,
		Type:              model.GamesType(a.disc.games),
		NOC:               a.noc,
		Gender:            a.gender,
		HeightCM:          a.height,
		WeightKG:          a.weight,
		Name:              a.name,
		Event:             eventName(a),
		Discipline:        a.disc.name,
		DisciplineGrouped: a.disc.group,
	}
	born := a.born
	r.BornDate = &born
	if !g.percent(nullAgePercent) {
		r.Age = model.Float(float64(year - a.born.Year()))
	}
	if g.percent(medalPercent) {
		r.Medal = model.Medals[g.rng.IntN(len(model.Medals))]
	}
	return r
}

func eventName(a *athlete) string {
	if a.gender == "Female" {
		return a.disc.name + " Women's"
	}
	return a.disc.name + " Men's"
}
