package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/mtlist/internal/serverlist"
)

// Duration is a time.Duration written as "30s", "1m" in YAML.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Config is the in-memory representation of ~/.mtlist/mtlist.yaml.
type Config struct {
	Address   string   `yaml:"address,omitempty"`
	ListField string   `yaml:"list_field,omitempty"`
	Timeout   Duration `yaml:"timeout,omitempty"`
	UserAgent string   `yaml:"user_agent,omitempty"`
}

// AppDir returns the absolute path to ~/.mtlist/.
func AppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".mtlist"), nil
}

// ConfigPath returns the absolute path to ~/.mtlist/mtlist.yaml.
func ConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mtlist.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() *Config {
	return &Config{
		Address:   serverlist.DefaultAddress,
		ListField: serverlist.DefaultListField,
		Timeout:   Duration(serverlist.DefaultTimeout),
		UserAgent: serverlist.DefaultUserAgent,
	}
}

// Load returns DefaultConfig overlaid with the YAML file at path.
//
// An empty path means ~/.mtlist/mtlist.yaml, which may be absent. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	} else {
		p, err := ExpandPath(path)
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with MTLIST_* values from the environment or
// ~/.mtlist/.env.
func ApplyEnv(cfg *Config) error {
	for _, o := range []struct {
		key string
		set func(string) error
	}{
		{"MTLIST_ADDRESS", func(v string) error { cfg.Address = v; return nil }},
		{"MTLIST_LIST_FIELD", func(v string) error { cfg.ListField = v; return nil }},
		{"MTLIST_USER_AGENT", func(v string) error { cfg.UserAgent = v; return nil }},
		{"MTLIST_TIMEOUT", func(v string) error {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid MTLIST_TIMEOUT %q: %w", v, err)
			}
			cfg.Timeout = Duration(d)
			return nil
		}},
	} {
		v, err := GetConfigValue(o.key)
		if err != nil {
			return err
		}
		if v == "" {
			continue
		}
		if err := o.set(v); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Address) == "" {
		return errors.New("config error: address is empty")
	}
	u, err := url.Parse(c.Address)
	if err != nil {
		return fmt.Errorf("config error: invalid address %q: %w", c.Address, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config error: address %q must be an http(s) URL", c.Address)
	}
	if c.ListField == "" {
		return errors.New("config error: list_field is empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config error: timeout must be positive, got %s", time.Duration(c.Timeout))
	}
	return nil
}

// FetchOptions converts the config into serverlist fetch options.
func (c *Config) FetchOptions() *serverlist.Options {
	return &serverlist.Options{
		ListField: c.ListField,
		Timeout:   time.Duration(c.Timeout),
		UserAgent: c.UserAgent,
	}
}
