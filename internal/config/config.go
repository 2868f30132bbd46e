package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"notiview/internal/domain"
	"notiview/internal/eventbus"
)

// DefaultBaseURL is used for subscriptions that do not name a server
const DefaultBaseURL = "https://ntfy.sh"

// ErrSubscriptionNotFound is returned when a lookup does not match any configured subscription
var ErrSubscriptionNotFound = errors.New("subscription not found")

// Config represents the application configuration
type Config struct {
	Version         int            `toml:"version"`
	DefaultBaseURL  string         `toml:"default_base_url"`
	DatabasePath    string         `toml:"database_path"`
	LogFile         string         `toml:"log_file"`
	TestSendTimeout Duration       `toml:"test_send_timeout"`
	UISettings      UISettings     `toml:"ui"`
	Subscriptions   []Subscription `toml:"subscriptions"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowTimestamps   bool `toml:"show_timestamps"`
	UsePager         bool `toml:"use_pager"`
	ConfirmWithEnter bool `toml:"confirm_with_enter"`
}

// Subscription is a topic the user is subscribed to
type Subscription struct {
	ID      int64  `toml:"id"`
	BaseURL string `toml:"base_url"`
	Topic   string `toml:"topic"`
}

// Duration is a time.Duration written as a string ("5s") in the config file
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// ToDomain converts the stored subscription, falling back to the given server
func (s Subscription) ToDomain(defaultBaseURL string) *domain.Subscription {
	base := s.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &domain.Subscription{ID: s.ID, BaseURL: base, Topic: s.Topic}
}

// FindSubscription looks up a subscription by id, or by topic when id is zero
func (c *Config) FindSubscription(id int64, topic string) (*domain.Subscription, error) {
	for _, s := range c.Subscriptions {
		if (id != 0 && s.ID == id) || (id == 0 && topic != "" && s.Topic == topic) {
			return s.ToDomain(c.DefaultBaseURL), nil
		}
	}
	return nil, fmt.Errorf("%w: id=%d topic=%q", ErrSubscriptionNotFound, id, topic)
}

// AddSubscription appends a subscription with the next free id and returns it
func (c *Config) AddSubscription(baseURL, topic string) *domain.Subscription {
	var maxID int64
	for _, s := range c.Subscriptions {
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	sub := Subscription{ID: maxID + 1, BaseURL: baseURL, Topic: topic}
	c.Subscriptions = append(c.Subscriptions, sub)
	return sub.ToDomain(c.DefaultBaseURL)
}

// RemoveSubscription drops the subscription with the given id, reporting whether it existed
func (c *Config) RemoveSubscription(id int64) bool {
	for i, s := range c.Subscriptions {
		if s.ID == id {
			c.Subscriptions = append(c.Subscriptions[:i], c.Subscriptions[i+1:]...)
			return true
		}
	}
	return false
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultDir returns the directory holding config, database and log files
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "notiview")
}

// NewConfigService creates a config service reading the default config file
func NewConfigService() ConfigService {
	return &configService{
		filePath: filepath.Join(DefaultDir(), "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service for path that reports loads and saves on the bus
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	if path != "" {
		cs.filePath = path
	}
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults if it does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:          cs.filePath,
			Subscriptions: len(cfg.Subscriptions),
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.DefaultBaseURL == "" {
		c.DefaultBaseURL = defaults.DefaultBaseURL
	}
	if c.DatabasePath == "" {
		c.DatabasePath = defaults.DatabasePath
	}
	if c.LogFile == "" {
		c.LogFile = defaults.LogFile
	}
	if c.TestSendTimeout.Duration <= 0 {
		c.TestSendTimeout = defaults.TestSendTimeout
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dir := DefaultDir()
	return &Config{
		Version:         1,
		DefaultBaseURL:  DefaultBaseURL,
		DatabasePath:    filepath.Join(dir, "notifications.db"),
		LogFile:         filepath.Join(dir, "notiview.log"),
		TestSendTimeout: Duration{10 * time.Second},
		UISettings: UISettings{
			ShowTimestamps: true,
			UsePager:       true,
		},
	}
}
