package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/markusressel/ecthermal/internal/api"
	"github.com/markusressel/ecthermal/internal/configuration"
	"io"
	"net/http"
	"time"
)

var ErrApiDisabled = errors.New("the REST api is disabled, enable it in the configuration to use this command")

// Client talks to the REST api of a running daemon
type Client struct {
	baseUrl string
	http    *http.Client
}

func New(config configuration.ApiConfig) (*Client, error) {
	if !config.Enabled {
		return nil, ErrApiDisabled
	}
	return &Client{
		baseUrl: fmt.Sprintf("http://%s:%d", config.Host, config.Port),
		http:    &http.Client{Timeout: 5 * time.Second},
	}, nil
}

func (c *Client) Get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

func (c *Client) Post(path string, body any, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

func (c *Client) do(method string, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseUrl+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("unable to reach ecthermal daemon: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiResult api.Result
		if err := json.Unmarshal(data, &apiResult); err == nil && len(apiResult.Name) > 0 {
			return fmt.Errorf("%s: %s", apiResult.Name, apiResult.Message)
		}
		return fmt.Errorf("unexpected response: %s", resp.Status)
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(data, result)
}
