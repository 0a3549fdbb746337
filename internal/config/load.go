package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// ErrNotFound is returned by Find when no default config file exists.
var ErrNotFound = errors.New("no config file found")

// Find returns the first of DefaultFileNames present in dir.
func Find(dir string) (string, error) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %v)", ErrNotFound, dir, DefaultFileNames)
}

// Load reads a YAML (.yaml, .yml) or CUE (.cue) config file, applies
// defaults and validates it. Relative paths in the file are resolved against
// the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg *Config
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		cfg, err = parseYAML(data)
	case ".cue":
		cfg, err = parseCUE(path, data)
	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q", ErrInvalid, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.resolve(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parseYAML(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &cfg, nil
}

// parseCUE unifies the file with the embedded #Config schema before
// decoding, so type and enum errors carry CUE positions.
func parseCUE(path string, data []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &cfg, nil
}

// resolve fills defaults and makes relative paths relative to dir.
func (c *Config) resolve(dir string) {
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.History != "" && !filepath.IsAbs(c.History) {
		c.History = filepath.Join(dir, c.History)
	}
	for i := range c.Jobs {
		j := &c.Jobs[i]
		if j.Source == "" {
			continue
		}
		if !filepath.IsAbs(j.Source) {
			j.Source = filepath.Join(dir, j.Source)
		}
		if j.Target == "" {
			switch j.Kind {
			case KindHeaders:
				j.Target = DefaultHeaderTarget(j.Source)
			case KindTests:
				j.Target = j.Source
			}
		} else if !filepath.IsAbs(j.Target) {
			j.Target = filepath.Join(dir, j.Target)
		}
	}
}

// Validate checks the config after defaults have been applied.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if len(c.Jobs) == 0 {
		return fmt.Errorf("%w: no jobs", ErrInvalid)
	}
	for i, j := range c.Jobs {
		switch j.Kind {
		case KindHeaders, KindTests:
		default:
			return fmt.Errorf("%w: jobs[%d]: kind must be %q or %q, got %q", ErrInvalid, i, KindHeaders, KindTests, j.Kind)
		}
		if j.Source == "" {
			return fmt.Errorf("%w: jobs[%d]: source is required", ErrInvalid, i)
		}
		if j.Target == "" {
			return fmt.Errorf("%w: jobs[%d]: target is required", ErrInvalid, i)
		}
	}
	return nil
}
