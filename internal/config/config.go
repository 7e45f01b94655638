package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vncsmyrnk/signup/internal/adapters/signupapi"
	"github.com/vncsmyrnk/signup/internal/adapters/view"
)

type Config struct {
	HTTPAddr      string
	APIURL        string
	APITimeout    time.Duration
	GeosearchURL  string
	AcceptedState string
	ConfigFile    string

	Fields []view.Field
	Page   view.Page
}

// File is the optional YAML document holding page copy and field metadata.
type File struct {
	Fields []view.Field `yaml:"fields"`
	Page   view.Page    `yaml:"page"`
}

// Load builds the configuration from environment variables, then command line
// flags, then the optional YAML file named by -config or SIGNUP_CONFIG_FILE.
func Load(args []string) (*Config, error) {
	timeout, err := envDuration("SIGNUP_API_TIMEOUT", signupapi.DefaultTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	fs.StringVar(&cfg.HTTPAddr, "addr", getEnv("SIGNUP_ADDR", "0.0.0.0:8080"), "HTTP listen address")
	fs.StringVar(&cfg.APIURL, "api-url", getEnv("SIGNUP_API_URL", signupapi.DefaultEndpoint), "Remote signup API endpoint")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", timeout, "Timeout for the signup API call")
	fs.StringVar(&cfg.GeosearchURL, "geosearch-url", os.Getenv("SIGNUP_GEOSEARCH_URL"), "Base URL of the geosearch service used by the page")
	fs.StringVar(&cfg.AcceptedState, "accepted-state", os.Getenv("SIGNUP_ACCEPTED_STATE"), "State code accepted by the locality lookup")
	fs.StringVar(&cfg.ConfigFile, "config", os.Getenv("SIGNUP_CONFIG_FILE"), "YAML file with page copy and field metadata")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.APITimeout < 0 {
		return nil, errors.New("api timeout must not be negative")
	}

	if cfg.ConfigFile != "" {
		file, err := ReadFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg.Fields = file.Fields
		cfg.Page = file.Page
	}

	if cfg.GeosearchURL != "" {
		cfg.Page.GeosearchURL = cfg.GeosearchURL
	}
	if cfg.AcceptedState != "" {
		cfg.Page.AcceptedState = cfg.AcceptedState
	}

	return cfg, nil
}

func ReadFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &file, nil
}

// ViewOptions translates the configuration into renderer options.
func (c *Config) ViewOptions() []view.Option {
	return []view.Option{
		view.WithFields(c.Fields),
		view.WithPage(c.Page),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
