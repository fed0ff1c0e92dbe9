// Package config loads bazaar's settings from defaults, an optional YAML file
// and BAZAAR_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/alexanderramin/bazaar/internal/llm"
	"github.com/alexanderramin/bazaar/internal/logging"
	"github.com/alexanderramin/bazaar/internal/negotiation"
)

const (
	EnvPrefix         = "BAZAAR_"
	ConfigPathEnvVar  = "BAZAAR_CONFIG"
	DefaultConfigFile = "bazaar.yaml"
)

type ServerConfig struct {
	Host           string   `koanf:"host"`
	Port           int      `koanf:"port"`
	ReadTimeoutMs  int      `koanf:"read_timeout_ms"`
	WriteTimeoutMs int      `koanf:"write_timeout_ms"`
	CORSOrigins    []string `koanf:"cors_origins"`
	// ChatRateLimit is the number of /chat requests allowed per client IP per
	// minute; 0 disables the limit.
	ChatRateLimit int `koanf:"chat_rate_limit"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type CatalogConfig struct {
	DBPath  string `koanf:"db_path"`
	DataDir string `koanf:"data_dir"`
}

type Config struct {
	Server      ServerConfig       `koanf:"server"`
	Catalog     CatalogConfig      `koanf:"catalog"`
	Negotiation negotiation.Config `koanf:"negotiation"`
	LLM         llm.LLMConfig      `koanf:"llm"`
	Log         logging.Config     `koanf:"log"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8000,
			ReadTimeoutMs:  10000,
			WriteTimeoutMs: 30000,
			CORSOrigins:    []string{"*"},
			ChatRateLimit:  30,
		},
		Catalog: CatalogConfig{
			DBPath:  "bazaar.db",
			DataDir: "data",
		},
		Negotiation: negotiation.DefaultConfig(),
		LLM:         llm.DefaultConfig(),
		Log:         logging.DefaultConfig(),
	}
}

// sliceKeys are config paths that accept a comma-separated env value.
var sliceKeys = []string{"server.cors_origins"}

// Load layers defaults, the config file and the environment. path overrides
// BAZAAR_CONFIG; a missing default file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	cfgPath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if cfgPath != "" {
		if err := k.Load(file.Provider(cfgPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", cfgPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyMapper(k.Keys())), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	if err := splitSlices(k); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.LLM.Tasks = llm.DefaultConfig().Tasks

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func resolvePath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s: %w", ConfigPathEnvVar, err)
		}
		return p, nil
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile, nil
	}
	return "", nil
}

// envKeyMapper maps BAZAAR_SERVER_PORT to server.port for every known key.
// Unknown variables map to "" and are dropped.
func envKeyMapper(known []string) func(string) string {
	table := make(map[string]string, len(known))
	for _, key := range known {
		table[EnvPrefix+strings.ToUpper(strings.ReplaceAll(key, ".", "_"))] = key
	}
	return func(name string) string {
		return table[name]
	}
}

func splitSlices(k *koanf.Koanf) error {
	for _, key := range sliceKeys {
		s, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(key, parts); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be within 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ChatRateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.chat_rate_limit must not be negative, got %d", c.Server.ChatRateLimit))
	}
	if c.Server.ReadTimeoutMs <= 0 || c.Server.WriteTimeoutMs <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}
	if c.Catalog.DBPath == "" {
		errs = append(errs, errors.New("catalog.db_path is required"))
	}
	if err := c.Negotiation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("negotiation: %w", err))
	}
	if c.LLM.Enabled {
		if c.LLM.Endpoint == "" || c.LLM.Model == "" {
			errs = append(errs, errors.New("llm.endpoint and llm.model are required when llm is enabled"))
		}
		if c.LLM.TimeoutMs <= 0 {
			errs = append(errs, fmt.Errorf("llm.timeout_ms must be positive, got %d", c.LLM.TimeoutMs))
		}
	}
	if c.LLM.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("llm.max_retries must not be negative, got %d", c.LLM.MaxRetries))
	}
	if c.Log.Format != logging.FormatJSON && c.Log.Format != logging.FormatConsole {
		errs = append(errs, fmt.Errorf("log.format must be %q or %q, got %q", logging.FormatJSON, logging.FormatConsole, c.Log.Format))
	}
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}
