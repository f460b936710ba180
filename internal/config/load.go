package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bianoble/template-sync/pkg/templatesync"
)

// Load reads and validates a template-sync.yaml configuration file.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", configPath, err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &templatesync.ValidationError{
			Path:   configPath,
			Reason: "config validation failed:\n  - " + strings.Join(errs, "\n  - "),
		}
	}

	return &cfg, nil
}

// LoadOrDefault loads the config file if it exists, otherwise returns the
// built-in defaults. Any other read or validation failure is an error.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(configPath)
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", cfg.Version))
	}

	if len(cfg.Targets) == 0 {
		errs = append(errs, "at least one sync target is required")
	}

	seen := make(map[string]bool)
	for i, tgt := range cfg.Targets {
		prefix := fmt.Sprintf("target[%d]", i)
		if tgt.Path != "" {
			prefix = fmt.Sprintf("target '%s'", tgt.Path)
		}

		if tgt.Path == "" {
			errs = append(errs, prefix+": 'path' is required")
		} else {
			if seen[tgt.Path] {
				errs = append(errs, fmt.Sprintf("%s: duplicate target path '%s'", prefix, tgt.Path))
			}
			seen[tgt.Path] = true
			errs = append(errs, validateRelPath(tgt.Path, prefix)...)
		}

		switch tgt.Kind {
		case KindFile, KindDirectory:
			// valid
		case "":
			errs = append(errs, prefix+": 'kind' is required — must be one of: file, directory")
		default:
			errs = append(errs, fmt.Sprintf("%s: invalid kind '%s' — must be one of: file, directory", prefix, tgt.Kind))
		}
	}

	checkNames := make(map[string]bool)
	for i, chk := range cfg.Checks {
		prefix := fmt.Sprintf("check[%d]", i)
		if chk.Name != "" {
			prefix = fmt.Sprintf("check '%s'", chk.Name)
		}

		if chk.Name == "" {
			errs = append(errs, prefix+": 'name' is required")
		} else if checkNames[chk.Name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate check name '%s'", prefix, chk.Name))
		} else {
			checkNames[chk.Name] = true
		}

		if chk.Description == "" {
			errs = append(errs, prefix+": 'description' is required")
		}
		if len(chk.Paths) == 0 {
			errs = append(errs, prefix+": at least one path is required")
		}
		for _, p := range chk.Paths {
			errs = append(errs, validateRelPath(p, prefix)...)
		}
		if chk.Contains != "" && chk.Kind == KindDirectory {
			errs = append(errs, prefix+": 'contains' cannot be used with kind 'directory'")
		}
	}

	return errs
}

func validateRelPath(p, prefix string) []string {
	var errs []string
	if path.IsAbs(p) || strings.HasPrefix(p, "/") {
		errs = append(errs, fmt.Sprintf("%s: path must be relative, got '%s'", prefix, p))
	}
	clean := path.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		errs = append(errs, fmt.Sprintf("%s: path must not escape the root, got '%s'", prefix, p))
	}
	return errs
}
