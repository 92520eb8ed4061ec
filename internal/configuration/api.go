package configuration

// ApiConfig configures the REST interface used by the CLI and host tooling
type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}
