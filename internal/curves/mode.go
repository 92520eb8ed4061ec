package curves

import (
	"context"
	"github.com/markusressel/ecthermal/internal/sources"
	"github.com/markusressel/ecthermal/internal/ui"
)

// TableSelector resolves the active table from the current mode
type TableSelector struct {
	Default *Table
	// Modes maps a mode value to its table
	Modes map[string]*Table
	// Source provides the mode, nil selects Default
	Source sources.ValueSource

	lastMode string
}

// Resolve returns the table for the current mode and the mode itself.
// An unreadable or unknown mode selects the default table.
func (s *TableSelector) Resolve(ctx context.Context) (*Table, string) {
	if s.Source == nil {
		return s.Default, ""
	}

	mode, err := s.Source.GetValue(ctx)
	if err != nil {
		ui.Warning("Unable to read table mode, using default table %s: %v", s.Default.ID, err)
		return s.Default, ""
	}

	if mode != s.lastMode {
		ui.Debug("Table mode changed from '%s' to '%s'", s.lastMode, mode)
		s.lastMode = mode
	}

	if table, ok := s.Modes[mode]; ok {
		return table, mode
	}
	return s.Default, mode
}
