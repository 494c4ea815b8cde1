package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// ctxCheckInterval is how many rows are read between cancellation checks.
const ctxCheckInterval = 4096

// CSVStore loads the two tables from delimited text files.
type CSVStore struct {
	delimiter rune
	logger    logger.Logger
	now       func() time.Time
}

// NewCSVStore creates a CSV loader with defaults.
func NewCSVStore(opts ...Option) *CSVStore {
	s := &CSVStore{
		delimiter: ',',
		logger:    logger.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads both tables concurrently and validates them.
func (s *CSVStore) Load(ctx context.Context, mainPath, coordPath string) (*Dataset, error) {
	start := s.now()

	var (
		records  []model.ParticipationRecord
		skipped  int
		coords   []model.CountryMetadata
		coordRes coordinateResult
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		t, err := s.readTable(egCtx, TableParticipations, mainPath)
		if err != nil {
			return err
		}
		if err := t.require(fieldNames(model.RequiredFields)); err != nil {
			return err
		}
		records = make([]model.ParticipationRecord, 0, len(t.rows))
		for _, row := range t.rows {
			records = append(records, t.participation(row))
		}
		skipped = t.skipped
		return nil
	})
	eg.Go(func() error {
		t, err := s.readTable(egCtx, TableCoordinates, coordPath)
		if err != nil {
			return err
		}
		if err := t.require(model.RequiredCoordinateColumns); err != nil {
			return err
		}
		coordRes = t.coordinates()
		coords = coordRes.coords
		return nil
	})
	if err := eg.Wait(); err != nil {
		s.logger.Error(ctx, "dataset load failed", logger.Error(err))
		return nil, err
	}

	ds := NewDataset(records, coords, s.now())
	ds.Stats.SkippedRows = skipped
	ds.Stats.DroppedCoordinates = coordRes.dropped
	ds.Stats.DuplicateCoordinates = coordRes.duplicates

	elapsed := ds.LoadedAt.Sub(start)
	metrics.SetDatasetRows(TableParticipations, len(records))
	metrics.SetDatasetRows(TableCoordinates, len(coords))
	metrics.RecordDroppedRows(TableParticipations, "malformed", skipped)
	metrics.RecordDroppedRows(TableCoordinates, "null_field", coordRes.dropped)
	metrics.RecordDroppedRows(TableCoordinates, "duplicate_noc", coordRes.duplicates)
	metrics.SetDatasetLoaded(ds.LoadedAt.Unix(), float64(elapsed.Microseconds())/1000)

	s.logger.Info(ctx, "dataset loaded",
		logger.Int("rows", len(records)),
		logger.Int("skipped_rows", skipped),
		logger.Int("countries", len(coords)),
		logger.Int("dropped_coordinates", coordRes.dropped),
		logger.Int("duplicate_coordinates", coordRes.duplicates),
		logger.String("duration", elapsed.String()))
	return ds, nil
}

// table is a parsed CSV file with a normalized header index.
type table struct {
	name    string
	index   map[string]int
	rows    [][]string
	skipped int
}

func (s *CSVStore) readTable(ctx context.Context, name, path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open %s table: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = s.delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return &table{name: name, index: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	t := &table{name: name, index: make(map[string]int, len(header))}
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}

	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			t.skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s table: %w", name, err)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// require fails with a SchemaError listing every absent column.
func (t *table) require(columns []string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := t.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Table: t.name, Missing: missing}
	}
	return nil
}

// cell returns the raw value of column in row, or "" when absent.
func (t *table) cell(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *table) participation(row []string) model.ParticipationRecord {
	cell := func(f model.Field) string { return t.cell(row, string(f)) }
	return model.ParticipationRecord{
		Year:              model.ParseYear(cell(model.FieldYear)),
		Type:              model.GamesType(model.ParseText(cell(model.FieldType))),
		NOC:               model.ParseText(cell(model.FieldNOC)),
		Gender:            model.ParseText(cell(model.FieldGender)),
		Age:               model.ParseFloat(cell(model.FieldAge)),
		HeightCM:          model.ParseFloat(cell(model.FieldHeight)),
		WeightKG:          model.ParseFloat(cell(model.FieldWeight)),
		Medal:             model.ParseMedal(cell(model.FieldMedal)),
		Name:              model.ParseText(cell(model.FieldName)),
		Event:             model.ParseText(cell(model.FieldEvent)),
		Discipline:        model.ParseText(cell(model.FieldDiscipline)),
		DisciplineGrouped: model.ParseText(cell(model.FieldDisciplineGrouped)),
		BornDate:          model.ParseDate(cell(model.FieldBornDate)),
	}
}

type coordinateResult struct {
	coords     []model.CountryMetadata
	dropped    int
	duplicates int
}

// coordinates keeps the first usable row per NOC.
func (t *table) coordinates() coordinateResult {
	res := coordinateResult{coords: make([]model.CountryMetadata, 0, len(t.rows))}
	seen := make(map[string]struct{}, len(t.rows))
	for _, row := range t.rows {
		noc := model.ParseText(t.cell(row, model.ColumnNOC))
		country := model.ParseText(t.cell(row, model.ColumnCountry))
		lat := model.ParseFloat(t.cell(row, model.ColumnLatitude))
		lon := model.ParseFloat(t.cell(row, model.ColumnLongitude))
		if noc == "" || country == "" || lat == nil || lon == nil {
			res.dropped++
			continue
		}
		if _, dup := seen[noc]; dup {
			res.duplicates++
			continue
		}
		seen[noc] = struct{}{}
		res.coords = append(res.coords, model.CountryMetadata{
			NOC:       noc,
			Country:   country,
			Latitude:  *lat,
			Longitude: *lon,
		})
	}
	return res
}

// normalizeHeader converts "Discipline Grouped" to "discipline_grouped".
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

func fieldNames(fields []model.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
