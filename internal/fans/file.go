package fans

import (
	"context"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/util"
	"sync"
)

// FileFan writes its target rpm to a file, the actual rpm is read from
// RpmPath or from the target file itself
type FileFan struct {
	Config configuration.FanConfig `json:"config"`

	mu        sync.Mutex
	rpmTarget int
}

func (fan *FileFan) GetId() string {
	return fan.Config.ID
}

func (fan *FileFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan *FileFan) SetRpmMode(ctx context.Context, enabled bool) error {
	return nil
}

func (fan *FileFan) SetRpmTarget(ctx context.Context, rpm int) error {
	if err := util.WriteIntToFileAtomic(rpm, fan.Config.File.Path); err != nil {
		return err
	}
	fan.mu.Lock()
	defer fan.mu.Unlock()
	fan.rpmTarget = rpm
	return nil
}

func (fan *FileFan) GetRpmTarget() int {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	return fan.rpmTarget
}

func (fan *FileFan) GetRpmActual(ctx context.Context) (int, error) {
	path := fan.Config.File.RpmPath
	if len(path) <= 0 {
		path = fan.Config.File.Path
	}
	path, err := util.ExpandPath(path)
	if err != nil {
		return 0, err
	}
	return util.ReadIntFromFile(path)
}
