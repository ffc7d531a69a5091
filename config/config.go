package config

import (
	"os"
	"path/filepath"

	"github.com/avelloso/reactant/errors"
	"gopkg.in/yaml.v3"
)

// Defaults applied when a field is absent from every config file.
const (
	DefaultLLMClient  = "openai"
	DefaultModel      = "gpt-4o"
	DefaultWeatherURL = "https://wttr.in/%s?format=%%C+%%t"
	DefaultLLMTimeout = 120
)

// FilesystemAccess restricts what the file tools may touch. Patterns are
// doublestar globs matched against the path the LLM supplied.
type FilesystemAccess struct {
	Hidden   []string `yaml:"hidden"`
	ReadOnly []string `yaml:"read_only"`
}

// MCPServer declares an external MCP server whose tools are added to the
// registry at startup.
type MCPServer struct {
	Name    string   `yaml:"name"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

type Config struct {
	LLMClient            string           `yaml:"llm"`
	Model                string           `yaml:"model"`
	LLMTimeoutSeconds    int              `yaml:"llm_timeout_seconds"`
	WeatherURL           string           `yaml:"weather_url"`
	FilesystemAccess     FilesystemAccess `yaml:"filesystem_access"`
	AdditionalMCPServers []MCPServer      `yaml:"additional_mcp_servers"`
}

// LoadConfig loads configuration from the user's home directory and the
// current working directory, with the latter taking precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	// The agent's own state directory is never exposed to the file tools.
	cfg.FilesystemAccess.Hidden = append(cfg.FilesystemAccess.Hidden, ".reactant", ".reactant/**")

	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, ".reactant", "config.yaml")
		if _, err := os.Stat(userConfigPath); err == nil {
			if err := loadFromFile(userConfigPath, cfg); err != nil {
				return nil, errors.Wrapf(err, "error loading user config")
			}
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrapf(err, "could not get working directory")
	}
	projectConfigPath := filepath.Join(wd, ".reactant", "config.yaml")
	if _, err := os.Stat(projectConfigPath); err == nil {
		if err := loadFromFile(projectConfigPath, cfg); err != nil {
			return nil, errors.Wrapf(err, "error loading project config")
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Unmarshal overwrites fields present in the YAML, which gives a simple
	// merge where project-level config replaces user-level.
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) applyDefaults() {
	if c.LLMClient == "" {
		c.LLMClient = DefaultLLMClient
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.WeatherURL == "" {
		c.WeatherURL = DefaultWeatherURL
	}
	if c.LLMTimeoutSeconds <= 0 {
		c.LLMTimeoutSeconds = DefaultLLMTimeout
	}
}
