package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config captures the global options after merging defaults, config file
// values, and CLI overrides.
type Config struct {
	ConfigPath string
	Catalog    string
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	Output     string
	Verbose    bool

	// Docs command settings.
	DocsOut     string
	DocsFormats []string
	DocsTitle   string
}

func defaultConfig() Config {
	return Config{Output: "json"}
}

func resolveConfig(cmd *cobra.Command) (*Config, error) {
	cfg := defaultConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyFlagOverrides(flags *pflag.FlagSet, cfg *Config) error {
	strs := []struct {
		flag string
		dst  *string
	}{
		{"catalog", &cfg.Catalog},
		{"base-url", &cfg.BaseURL},
		{"user-agent", &cfg.UserAgent},
		{"output", &cfg.Output},
		{"out", &cfg.DocsOut},
		{"title", &cfg.DocsTitle},
	}
	for _, s := range strs {
		if flags.Lookup(s.flag) == nil || !flags.Changed(s.flag) {
			continue
		}
		value, err := flags.GetString(s.flag)
		if err != nil {
			return err
		}
		*s.dst = strings.TrimSpace(value)
	}
	if flags.Changed("timeout") {
		value, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		value, err := flags.GetStringSlice("format")
		if err != nil {
			return err
		}
		cfg.DocsFormats = sanitizeList(value)
	}
	return nil
}

func (c *Config) normalize() {
	c.Catalog = strings.TrimSpace(c.Catalog)
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	c.DocsOut = strings.TrimSpace(c.DocsOut)
	c.DocsTitle = strings.TrimSpace(c.DocsTitle)
	c.DocsFormats = sanitizeList(c.DocsFormats)
}

func (c *Config) validate() error {
	switch c.Output {
	case "":
		c.Output = "json"
	case "json", "yaml", "text":
	default:
		return newUsageError(fmt.Sprintf("unsupported --output %q (allowed: json, yaml, text)", c.Output))
	}
	if c.Timeout < 0 {
		return newUsageError("--timeout must not be negative")
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return newUsageError(fmt.Sprintf("--base-url %q must be an http or https URL", c.BaseURL))
	}
	return nil
}

func applyConfigFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		var err error
		switch normalizeKey(key) {
		case "catalog":
			cfg.Catalog, err = valueAsString(value)
		case "baseurl":
			cfg.BaseURL, err = valueAsString(value)
		case "useragent":
			cfg.UserAgent, err = valueAsString(value)
		case "output":
			cfg.Output, err = valueAsString(value)
		case "timeout":
			cfg.Timeout, err = valueAsDuration(value)
		case "verbose":
			cfg.Verbose, err = valueAsBool(value)
		case "docsout":
			cfg.DocsOut, err = valueAsString(value)
		case "docstitle":
			cfg.DocsTitle, err = valueAsString(value)
		case "docsformats":
			cfg.DocsFormats, err = valueAsStringSlice(value)
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
		if err != nil {
			return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
		}
	}
	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsStringSlice(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return sanitizeList(strings.Split(val, ",")), nil
	case []any:
		items := make([]string, 0, len(val))
		for idx, elem := range val {
			str, err := valueAsString(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", idx, err)
			}
			items = append(items, str)
		}
		return sanitizeList(items), nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n", "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

// valueAsDuration accepts a Go duration string or a number of seconds.
func valueAsDuration(v any) (time.Duration, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case int:
		return time.Duration(val) * time.Second, nil
	case float64:
		return time.Duration(val * float64(time.Second)), nil
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", val)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("expected duration, got %T", v)
	}
}

func sanitizeList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
