package curves

import (
	"context"
	"github.com/markusressel/ecthermal/internal/ui"
	"sync"
)

// TableStrategy walks a discrete fan table with hysteresis. The active
// table is resolved once at the start of every tick.
type TableStrategy struct {
	outputHolder

	selector *TableSelector
	column   int
	state    *LevelState
	filters  map[string]*MovingAverage
	active   string

	// copies of state and active for readers outside of the tick
	publishedMu    sync.Mutex
	publishedState LevelState
	publishedTable string
}

func NewTableStrategy(selector *TableSelector, column int) *TableStrategy {
	return &TableStrategy{
		selector: selector,
		column:   column,
		state:    NewLevelState(len(selector.Default.Sensors)),
		filters:  map[string]*MovingAverage{},
	}
}

func (s *TableStrategy) GetName() string {
	return "table"
}

func (s *TableStrategy) Compute(ctx context.Context, snapshot Snapshot) (Output, error) {
	table, mode := s.selector.Resolve(ctx)
	if table.ID != s.active {
		if len(s.active) > 0 {
			ui.Info("Switching fan table from %s to %s (mode '%s')", s.active, table.ID, mode)
		}
		s.active = table.ID
	}

	readings := s.readings(table, snapshot)
	previousLevel := s.state.Level
	level := Evaluate(table, s.state, readings)
	if level != previousLevel {
		ui.Debug("Fan table %s: level %d -> %d", table.ID, previousLevel, level)
	}

	output := Output{
		Level:   level,
		Percent: NoValue,
		Rpm:     table.Rpm(level, s.column),
	}
	s.set(output)

	s.publishedMu.Lock()
	s.publishedState = LevelState{Level: s.state.Level, Previous: append([]int{}, s.state.Previous...)}
	s.publishedTable = s.active
	s.publishedMu.Unlock()

	return output, nil
}

func (s *TableStrategy) readings(table *Table, snapshot Snapshot) []Reading {
	readings := make([]Reading, len(table.Sensors))
	for column, index := range table.Sensors {
		if index < 0 || index >= len(snapshot.Temps) {
			continue
		}
		readings[column] = Reading{Value: snapshot.Temps[index], Valid: snapshot.Valid[index]}
	}

	if table.Filter != nil {
		filter, ok := s.filters[table.ID]
		if !ok {
			filter = NewMovingAverage(table.Filter.Window)
			s.filters[table.ID] = filter
		}
		reading := &readings[table.Filter.Column]
		if reading.Valid {
			reading.Value = filter.Apply(reading.Value)
		}
	}

	return readings
}

// State returns the level state of the fan
func (s *TableStrategy) State() LevelState {
	s.publishedMu.Lock()
	defer s.publishedMu.Unlock()
	return s.publishedState
}

// ActiveTable returns the id of the table used in the last tick
func (s *TableStrategy) ActiveTable() string {
	s.publishedMu.Lock()
	defer s.publishedMu.Unlock()
	return s.publishedTable
}
