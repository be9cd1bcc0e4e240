package debug

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"coinbot/domain/entities"
)

// Client talks to the running bot's debug API
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the API on 127.0.0.1:port
func NewClient(port int) *Client {
	return NewClientWithURL(fmt.Sprintf("http://127.0.0.1:%d", port))
}

// NewClientWithURL creates a client for an explicit base URL
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GuildInfo represents basic guild information
type GuildInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// response mirrors the API envelope with a typed payload
type response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// CheckConnection verifies the debug API is accessible
func (c *Client) CheckConnection() error {
	resp, err := c.client.Get(c.baseURL + "/health")
	if err != nil {
		return fmt.Errorf("debug API not accessible: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("debug API returned status %d", resp.StatusCode)
	}
	return nil
}

// GetGuilds fetches the guilds the bot is in
func (c *Client) GetGuilds() ([]GuildInfo, error) {
	var out response[[]GuildInfo]
	if err := c.do(http.MethodGet, "/debug/guilds", &out); err != nil {
		return nil, fmt.Errorf("failed to get guilds: %w", err)
	}
	return out.Data, nil
}

// GetStats fetches economy statistics for one guild
func (c *Client) GetStats(guildID string) (*entities.EconomyStats, error) {
	var out response[*entities.EconomyStats]
	if err := c.do(http.MethodGet, "/debug/stats/"+guildID, &out); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return out.Data, nil
}

// Save asks the bot to flush its store
func (c *Client) Save() (string, error) {
	var out response[any]
	if err := c.do(http.MethodPost, "/debug/save", &out); err != nil {
		return "", fmt.Errorf("failed to save: %w", err)
	}
	return out.Message, nil
}

func (c *Client) do(method, path string, out interface {
	failure() string
}) error {
	req, err := http.NewRequest(method, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if msg := out.failure(); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func (r *response[T]) failure() string {
	if r.Success {
		return ""
	}
	if r.Error == "" {
		return "request was not successful"
	}
	return r.Error
}
