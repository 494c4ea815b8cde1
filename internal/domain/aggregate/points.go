package aggregate

import (
	"github.com/okian/podium/internal/domain/model"
)

// Point is one record projected onto two numeric axes.
type Point struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Color      string   `json:"color,omitempty"`
	Name       string   `json:"name"`
	NOC        string   `json:"noc"`
	Discipline string   `json:"discipline"`
	Medal      string   `json:"medal"`
	Age        *float64 `json:"age,omitempty"`
}

// Points projects records onto x and y, dropping rows where either is null.
// color is an optional categorical field used to colour the points.
func Points(records []model.ParticipationRecord, x, y, color model.Field) ([]Point, error) {
	if err := requireNumeric(x); err != nil {
		return nil, err
	}
	if err := requireNumeric(y); err != nil {
		return nil, err
	}
	if color != "" {
		if err := requireCategorical(color); err != nil {
			return nil, err
		}
	}

	out := make([]Point, 0)
	for i := range records {
		r := &records[i]
		xv, ok := r.Value(x)
		if !ok {
			continue
		}
		yv, ok := r.Value(y)
		if !ok {
			continue
		}
		p := Point{
			X:          xv,
			Y:          yv,
			Name:       r.Name,
			NOC:        r.NOC,
			Discipline: r.Discipline,
			Medal:      r.Medal.Label(),
			Age:        r.Age,
		}
		if color != "" {
			p.Color, _ = r.Category(color)
		}
		out = append(out, p)
	}
	return out, nil
}
