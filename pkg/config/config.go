package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"os"
	"sort"
	"time"
)

const (
	FormatGeneric      = "generic"
	FormatAlertmanager = "alertmanager"
)

const (
	DefaultConfigFile    = "config.yaml"
	DefaultPort          = "9393"
	DefaultStatsSchedule = "@every 5m"
)

var ErrNoRoutes = errors.New("no routes configured")

// Route is a single entry of the routes file. A nil Auth means the key is absent;
// an empty one still requires the header "Bearer ".
type Route struct {
	TeamsURL string  `yaml:"teams_url"`
	Auth     *string `yaml:"auth"`
	Format   string  `yaml:"format"`
}

// Routes maps a route key to its destination. It is read-only once loaded.
type Routes struct {
	routes map[string]Route
}

// LoadRoutes reads the YAML routes file at path. Every top-level key is a route key.
func LoadRoutes(path string) (*Routes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes file %q: %w", path, err)
	}

	return ParseRoutes(data)
}

func ParseRoutes(data []byte) (*Routes, error) {
	raw := map[string]Route{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse routes yaml: %w", err)
	}

	if len(raw) == 0 {
		return nil, ErrNoRoutes
	}

	routes := make(map[string]Route, len(raw))
	for key, route := range raw {
		if route.TeamsURL == "" {
			return nil, fmt.Errorf("route %q: teams_url is required", key)
		}
		switch route.Format {
		case "", FormatGeneric, FormatAlertmanager:
		default:
			return nil, fmt.Errorf("route %q: unknown format %q, want %s|%s", key, route.Format, FormatGeneric, FormatAlertmanager)
		}
		routes[key] = route
	}

	return &Routes{routes: routes}, nil
}

func (r *Routes) Lookup(key string) (Route, bool) {
	route, ok := r.routes[key]
	return route, ok
}

// Keys returns the configured route keys, sorted.
func (r *Routes) Keys() []string {
	keys := make([]string, 0, len(r.routes))
	for key := range r.routes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Settings are the process settings, read from WEBHOOK_* environment variables.
type Settings struct {
	ConfigFile     string
	Port           string
	PayloadFormat  string
	ForwardTimeout time.Duration
	LogLevel       log.Level
	LogFolder      string
	StatsSchedule  string
}

func LoadSettings() (*Settings, error) {
	s := &Settings{
		ConfigFile:    getenvDefault("WEBHOOK_CONFIG", DefaultConfigFile),
		Port:          getenvDefault("WEBHOOK_PORT", DefaultPort),
		PayloadFormat: getenvDefault("WEBHOOK_PAYLOAD_FORMAT", FormatGeneric),
		LogFolder:     os.Getenv("WEBHOOK_LOG_FOLDER"),
		LogLevel:      log.InfoLevel,
		StatsSchedule: DefaultStatsSchedule,
	}

	if schedule, ok := os.LookupEnv("WEBHOOK_STATS_SCHEDULE"); ok {
		s.StatsSchedule = schedule
	}

	switch s.PayloadFormat {
	case FormatGeneric, FormatAlertmanager:
	default:
		return nil, fmt.Errorf("WEBHOOK_PAYLOAD_FORMAT %q unknown, want %s|%s", s.PayloadFormat, FormatGeneric, FormatAlertmanager)
	}

	if v := os.Getenv("WEBHOOK_FORWARD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("WEBHOOK_FORWARD_TIMEOUT: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("WEBHOOK_FORWARD_TIMEOUT must not be negative")
		}
		s.ForwardTimeout = d
	}

	if v := os.Getenv("WEBHOOK_LOG_LEVEL"); v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("WEBHOOK_LOG_LEVEL: %w", err)
		}
		s.LogLevel = level
	}

	return s, nil
}

// FormatFor returns the payload format a route accepts.
func (s *Settings) FormatFor(route Route) string {
	if route.Format != "" {
		return route.Format
	}
	return s.PayloadFormat
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
