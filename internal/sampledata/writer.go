package sampledata

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

// Write generates cfg.Rows records and writes both tables into cfg.OutDir.
func Write(ctx context.Context, cfg *Config) (Result, error) {
	records, err := Generate(ctx, cfg.Rows, cfg.Seed)
	if err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}
	if err := os.MkdirAll(cfg.OutDir, directoryPermission); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	res := Result{
		MainPath:   filepath.Join(cfg.OutDir, orDefault(cfg.MainFile, DefaultMainFile)),
		CoordsPath: filepath.Join(cfg.OutDir, orDefault(cfg.CoordFile, DefaultCoordFile)),
	}
	if err := writeCSV(res.MainPath, mainHeader, mainRows(records)); err != nil {
		return Result{}, err
	}
	if err := writeCSV(res.CoordsPath, coordHeader, coordRows()); err != nil {
		return Result{}, err
	}

	ov := aggregate.Summarize(records)
	res.Rows, res.Athletes, res.Countries = ov.Rows, ov.Athletes, ov.Countries
	for i := range records {
		if records[i].Medal.Present() {
			res.Medals++
		}
	}
	logger.Get().Info(ctx, "sample data written",
		logger.String("main", res.MainPath),
		logger.String("coords", res.CoordsPath),
		logger.Int("rows", res.Rows),
		logger.Int("medals", res.Medals))
	return res, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	_ = w.Write(header)
	_ = w.WriteAll(rows)
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func mainRows(records []model.ParticipationRecord) [][]string {
	rows := make([][]string, len(records))
	for i := range records {
		r := &records[i]
		rows[i] = []string{
			strconv.Itoa(r.Year),
			string(r.Type),
			r.NOC,
			r.Name,
			r.Gender,
			formatFloat(r.Age, "NA"),
			formatFloat(r.HeightCM, ""),
			formatFloat(r.WeightKG, ""),
			medalCell(r.Medal, i),
			r.Event,
			r.Discipline,
			r.DisciplineGrouped,
			r.BornDate.Format("2006-01-02"),
		}
	}
	return rows
}

// medalCell alternates the two spellings of "no medal" found in real exports.
func medalCell(m model.Medal, i int) string {
	if m.Present() {
		return string(m)
	}
	if i%2 == 0 {
		return ""
	}
	return model.NoMedalLabel
}

// coordRows writes one row per country plus a duplicate NOC that loaders
// must ignore.
func coordRows() [][]string {
	rows := make([][]string, 0, len(countries)+1)
	for _, c := range countries {
		lat, lon := strconv.FormatFloat(c.lat, 'f', 2, 64), strconv.FormatFloat(c.lon, 'f', 2, 64)
		if c.noc == nocWithoutCoords {
			lat, lon = "", ""
		}
		rows = append(rows, []string{c.noc, c.name, lat, lon})
	}
	first := countries[0]
	return append(rows, []string{first.noc, first.name + " (duplicate)", "0", "0"})
}

func formatFloat(v *float64, null string) string {
	if v == nil {
		return null
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
