// Package config loads the YAML run configuration shared by the parseval
// commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/go-parseval/corpus"
)

// Evaluation kinds.
const (
	KindDependency   = "dependency"
	KindConstituency = "constituency"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is one evaluation run.
type Config struct {
	// Kind selects dependency or constituency scoring.
	Kind string `yaml:"kind" validate:"required,oneof=dependency constituency"`
	// Gold is the gold corpus document.
	Gold string `yaml:"gold" validate:"omitempty,corpuspath"`
	// Predictions are named prediction documents. Scoring uses the first;
	// comparison ranks all of them.
	Predictions []Prediction `yaml:"predictions" validate:"dive"`
	// SavePredictions is where raw parser output is persisted.
	SavePredictions string `yaml:"save_predictions" validate:"omitempty,corpuspath"`
	// Label restricts dependency scoring to one relation.
	Label string `yaml:"label" validate:"omitempty,max=64"`
	// Pretagged declares that parser input is tagged words. Gold sentences
	// must then carry words.
	Pretagged bool `yaml:"pretagged"`
	// CleanTrees normalises predicted trees before scoring.
	CleanTrees bool `yaml:"clean_trees"`
	// Workers bounds per-sentence concurrency; 0 means one per CPU.
	Workers int          `yaml:"workers" validate:"min=0,max=1024"`
	Log     LogConfig    `yaml:"log"`
	Server  ServerConfig `yaml:"server"`
}

// Prediction names a prediction document.
type Prediction struct {
	Name string `yaml:"name" validate:"required,min=1,max=100"`
	Path string `yaml:"path" validate:"required,corpuspath"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// ServerConfig controls the HTTP scoring service.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Kind:       KindDependency,
		CleanTrees: true,
		Log:        LogConfig{Level: "info", Format: "text"},
		Server:     ServerConfig{Addr: "localhost:8080"},
	}
}

// Load reads and validates the configuration file at path, layered over
// Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("corpuspath", validateCorpusPath); err != nil {
		return fmt.Errorf("registering corpuspath validator: %w", err)
	}

	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalid, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if c.Label != "" && c.Kind != KindDependency {
		return fmt.Errorf("%w: label filter requires kind %q", ErrInvalid, KindDependency)
	}
	if c.Pretagged && c.Kind != KindDependency {
		return fmt.Errorf("%w: pretagged input requires kind %q", ErrInvalid, KindDependency)
	}
	seen := make(map[string]bool, len(c.Predictions))
	for _, p := range c.Predictions {
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate prediction name %q", ErrInvalid, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

func validateCorpusPath(fl validator.FieldLevel) bool {
	_, err := corpus.FormatFromPath(fl.Field().String())
	return err == nil
}
