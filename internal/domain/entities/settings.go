package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultSourceType    = "gitlab"
	defaultSourceURL     = "https://gitlab.com"
	defaultCloneUsername = "oauth2"
)

// Settings is the top-level configuration for gitmigrate.
type Settings struct {
	Source      SourceSettings      `yaml:"source"`
	Destination DestinationSettings `yaml:"destination"`
}

// SourceSettings describes the platform repositories are migrated from.
type SourceSettings struct {
	Type     string `yaml:"type"`     // "gitlab" or "github"
	URL      string `yaml:"url"`      // Base URL of the source instance
	Token    string `yaml:"token"`    // Inline, ${ENV_VAR}, or file path
	Username string `yaml:"username"` // Auth username embedded in clone URLs
}

// DestinationSettings describes the Gitea instance repositories are
// migrated to.
type DestinationSettings struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables, resolving token file paths, and applying defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Source.Token = resolveToken(settings.Source.Token)
	settings.Destination.Token = resolveToken(settings.Destination.Token)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".gitmigrate.yaml",
		".gitmigrate.yml",
		"gitmigrate.yaml",
		"gitmigrate.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func (settings *Settings) applyDefaults() {
	if settings.Source.Type == "" {
		settings.Source.Type = defaultSourceType
	}
	if settings.Source.URL == "" {
		settings.Source.URL = defaultSourceURL
	}
	if settings.Source.Username == "" {
		settings.Source.Username = defaultCloneUsername
	}
	settings.Source.URL = strings.TrimSuffix(settings.Source.URL, "/")
	settings.Destination.URL = strings.TrimSuffix(settings.Destination.URL, "/")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func (settings *Settings) validate() error {
	if settings.Source.Token == "" {
		return errors.New(
			"source.token is required (set inline, via ${ENV_VAR}, or as file path)",
		)
	}
	if settings.Destination.URL == "" {
		return errors.New("destination.url is required")
	}
	if settings.Destination.Token == "" {
		return errors.New(
			"destination.token is required (set inline, via ${ENV_VAR}, or as file path)",
		)
	}
	return nil
}
