package aggregate

import (
	"strings"

	"github.com/okian/podium/internal/domain/model"
)

const keySep = "\x1f"

// groups indexes rows by their composite key, keeping first-appearance order.
type groups struct {
	index map[string]int
	keys  [][]string
	rows  [][]int
}

func newGroups() *groups {
	return &groups{index: make(map[string]int)}
}

// add records row i under keys and returns the group position.
func (g *groups) add(keys []string, i int) int {
	k := strings.Join(keys, keySep)
	pos, ok := g.index[k]
	if !ok {
		pos = len(g.keys)
		g.index[k] = pos
		g.keys = append(g.keys, keys)
		g.rows = append(g.rows, nil)
	}
	g.rows[pos] = append(g.rows[pos], i)
	return pos
}

func (g *groups) len() int { return len(g.keys) }

// groupRecords partitions records by the given categorical fields.
func groupRecords(records []model.ParticipationRecord, by []model.Field) *groups {
	g := newGroups()
	for i := range records {
		keys := make([]string, len(by))
		for j, f := range by {
			keys[j], _ = records[i].Category(f)
		}
		g.add(keys, i)
	}
	return g
}
