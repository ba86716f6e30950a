// Package xptable provides the per-level experience requirement table and
// the percentage-to-absolute experience conversion built on it.
//
// Level requirements at the covered range exceed 10^15, so all arithmetic
// is done with decimals rather than floats. The same quantity is carried
// in three magnitude scalings (actual, billions, trillions) to match how
// the rest of the system stores gained experience.
package xptable

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrLevelOutOfRange is returned when a level has no table entry.
	ErrLevelOutOfRange = errors.New("xptable: level not present in the requirement table")

	// ErrPercentOutOfOrder is returned by Gained when newPct < oldPct.
	// An equal pair is valid and yields a zero gain.
	ErrPercentOutOfOrder = errors.New("xptable: new percent must not be lower than old percent")
)

var (
	hundred  = decimal.NewFromInt(100)
	billion  = decimal.New(1, 9)
	trillion = decimal.New(1, 12)
)

// Requirement is the experience needed to clear one level, in three
// magnitude scalings of the same quantity.
type Requirement struct {
	Level     int
	Actual    decimal.Decimal
	Billions  decimal.Decimal
	Trillions decimal.Decimal
}

// Gain is an experience delta in the same three scalings.
type Gain struct {
	Actual    decimal.Decimal
	Billions  decimal.Decimal
	Trillions decimal.Decimal
}

func gainFromActual(actual decimal.Decimal) Gain {
	return Gain{
		Actual:    actual,
		Billions:  actual.Div(billion),
		Trillions: actual.Div(trillion),
	}
}

// Add returns the sum of two gains, recomputing every scaling together so
// the denormalized representations stay consistent.
func (g Gain) Add(other Gain) Gain {
	return gainFromActual(g.Actual.Add(other.Actual))
}

// Table is the loaded requirement table. It is immutable after Load and
// safe to share across goroutines.
type Table struct {
	levels map[int]Requirement
	sorted []int
}

// New builds a table from explicit requirements. Primarily useful in tests
// and seeding tools; production tables come from Load.
func New(reqs []Requirement) *Table {
	t := &Table{levels: make(map[int]Requirement, len(reqs))}
	for _, r := range reqs {
		t.levels[r.Level] = r
		t.sorted = append(t.sorted, r.Level)
	}
	sort.Ints(t.sorted)
	return t
}

// Load reads the requirement table from a CSV file with a header row and
// columns: level, actual, billions, trillions.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "xptable: open")
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "xptable: parse csv")
	}
	if len(rows) < 2 {
		return nil, errors.New("xptable: csv has no data rows")
	}

	reqs := make([]Requirement, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 4 {
			return nil, errors.Errorf("xptable: malformed row %v", row)
		}
		level, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, errors.Wrapf(err, "xptable: level column in row %v", row)
		}
		actual, err := decimal.NewFromString(row[1])
		if err != nil {
			return nil, errors.Wrapf(err, "xptable: actual column in row %v", row)
		}
		billions, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, errors.Wrapf(err, "xptable: billions column in row %v", row)
		}
		trillions, err := decimal.NewFromString(row[3])
		if err != nil {
			return nil, errors.Wrapf(err, "xptable: trillions column in row %v", row)
		}
		reqs = append(reqs, Requirement{Level: level, Actual: actual, Billions: billions, Trillions: trillions})
	}

	return New(reqs), nil
}

// Require returns the requirement entry for a level.
func (t *Table) Require(level int) (Requirement, error) {
	r, ok := t.levels[level]
	if !ok {
		return Requirement{}, ErrLevelOutOfRange
	}
	return r, nil
}

// Levels returns the covered levels in ascending order.
func (t *Table) Levels() []int {
	out := make([]int, len(t.sorted))
	copy(out, t.sorted)
	return out
}

// Gained converts a before/after percentage pair at a level into the
// absolute experience delta: required(level) * (newPct - oldPct) / 100.
// It is total for all ordered percent pairs; an equal pair yields zero.
func (t *Table) Gained(level int, oldPct, newPct decimal.Decimal) (Gain, error) {
	req, err := t.Require(level)
	if err != nil {
		return Gain{}, err
	}
	diff := newPct.Sub(oldPct)
	if diff.IsNegative() {
		return Gain{}, ErrPercentOutOfOrder
	}
	actual := req.Actual.Mul(diff).Div(hundred)
	return gainFromActual(actual), nil
}

// CumulativeStart returns the total experience accumulated upon reaching
// level, i.e. the sum of requirements of every covered level below it.
// Used to convert an absolute experience reading into a
// percent-into-current-level figure.
func (t *Table) CumulativeStart(level int) (decimal.Decimal, error) {
	if _, ok := t.levels[level]; !ok {
		return decimal.Zero, ErrLevelOutOfRange
	}
	sum := decimal.Zero
	for _, lvl := range t.sorted {
		if lvl >= level {
			break
		}
		sum = sum.Add(t.levels[lvl].Actual)
	}
	return sum, nil
}

// ProgressPercent converts an absolute experience reading at a level into
// the percentage into that level, clamped to [0, 100].
func (t *Table) ProgressPercent(level int, totalXP decimal.Decimal) (decimal.Decimal, error) {
	start, err := t.CumulativeStart(level)
	if err != nil {
		return decimal.Zero, err
	}
	req, _ := t.Require(level)
	if req.Actual.IsZero() {
		return decimal.Zero, nil
	}
	pct := totalXP.Sub(start).Div(req.Actual).Mul(hundred)
	if pct.IsNegative() {
		return decimal.Zero, nil
	}
	if pct.GreaterThan(hundred) {
		return hundred, nil
	}
	return pct, nil
}
