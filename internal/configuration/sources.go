package configuration

// ValueSourceConfig describes where a single string value, like the current
// chassis mode or chipset state, is read from on every tick.
// Exactly one of the fields must be set.
type ValueSourceConfig struct {
	Static string           `json:"static,omitempty"`
	File   *FileSourceConfig `json:"file,omitempty"`
	Cmd    *CmdSourceConfig  `json:"cmd,omitempty"`
}

type FileSourceConfig struct {
	Path string `json:"path"`
}

type CmdSourceConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

func (c *ValueSourceConfig) subConfigCount() int {
	count := 0
	if len(c.Static) > 0 {
		count++
	}
	if c.File != nil {
		count++
	}
	if c.Cmd != nil {
		count++
	}
	return count
}
