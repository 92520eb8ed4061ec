package sources

import (
	"context"
	"errors"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/util"
)

// ValueSource provides a single string value that may change over time,
// like the chassis mode or the chipset power state.
type ValueSource interface {
	GetValue(ctx context.Context) (string, error)
}

type StaticSource struct {
	Value string
}

func (s *StaticSource) GetValue(ctx context.Context) (string, error) {
	return s.Value, nil
}

type FileSource struct {
	Path string
}

func (s *FileSource) GetValue(ctx context.Context) (string, error) {
	return util.ReadStringFromFile(s.Path)
}

type CmdSource struct {
	Exec string
	Args []string
}

func (s *CmdSource) GetValue(ctx context.Context) (string, error) {
	return util.SafeCmdExecution(ctx, s.Exec, s.Args, util.DefaultCmdTimeout)
}

func NewValueSource(config configuration.ValueSourceConfig) (ValueSource, error) {
	if config.File != nil {
		return &FileSource{Path: config.File.Path}, nil
	}
	if config.Cmd != nil {
		return &CmdSource{Exec: config.Cmd.Exec, Args: config.Cmd.Args}, nil
	}
	if len(config.Static) > 0 {
		return &StaticSource{Value: config.Static}, nil
	}
	return nil, errors.New("no matching value source type")
}
