// Package config holds handsnap's runtime settings. Values come from defaults,
// then HANDSNAP_* environment variables (optionally from a .env file), then
// command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Classifier names accepted in Config.Classifier.
const (
	ClassifierRule     = "rule"
	ClassifierTemplate = "template"
)

// DBName is the catalog filename inside the output directory.
const DBName = "handsnap.db"

// Config holds configuration options for the application.
type Config struct {
	CameraID       int
	FPS            int
	OutputDir      string
	Hold           time.Duration
	Preview        time.Duration
	QuitKey        string
	TimestampNames bool
	Mirror         bool

	Classifier    string
	TemplatePath  string
	Tolerance     float64
	MinConfidence float64
	ScriptPath    string
	Python        string

	SpeechCommand string
	Mute          bool

	Catalog bool
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		CameraID:       0,
		FPS:            30,
		OutputDir:      "selfies",
		Hold:           3 * time.Second,
		Preview:        2 * time.Second,
		QuitKey:        "q",
		TimestampNames: true,
		Mirror:         true,
		Classifier:     ClassifierRule,
		MinConfidence:  0.7,
		Catalog:        true,
	}
}

// DBPath returns the catalog path inside the output directory.
func (c Config) DBPath() string {
	return filepath.Join(c.OutputDir, DBName)
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var errs []error
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output dir must not be empty"))
	}
	if c.Hold <= 0 {
		errs = append(errs, fmt.Errorf("hold must be positive, got %s", c.Hold))
	}
	if c.Preview < 0 {
		errs = append(errs, fmt.Errorf("preview must not be negative, got %s", c.Preview))
	}
	if len(c.QuitKey) != 1 {
		errs = append(errs, fmt.Errorf("quit key must be a single character, got %q", c.QuitKey))
	}
	switch c.Classifier {
	case ClassifierRule:
	case ClassifierTemplate:
		if c.Tolerance < 0 {
			errs = append(errs, errors.New("template tolerance must not be negative"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown classifier %q", c.Classifier))
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		errs = append(errs, fmt.Errorf("min confidence must be within [0, 1], got %v", c.MinConfidence))
	}
	return errors.Join(errs...)
}

// Load reads the given .env files (".env" when none are named) into the
// process environment, then returns Default overlaid with HANDSNAP_* variables.
// Missing .env files are not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays HANDSNAP_* variables found through lookup onto c.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	e := envReader{lookup: lookup}

	e.setInt("HANDSNAP_CAMERA", &c.CameraID)
	e.setInt("HANDSNAP_FPS", &c.FPS)
	e.setString("HANDSNAP_OUTPUT_DIR", &c.OutputDir)
	e.setDuration("HANDSNAP_HOLD", &c.Hold)
	e.setDuration("HANDSNAP_PREVIEW", &c.Preview)
	e.setString("HANDSNAP_QUIT_KEY", &c.QuitKey)
	e.setBool("HANDSNAP_TIMESTAMP_NAMES", &c.TimestampNames)
	e.setBool("HANDSNAP_MIRROR", &c.Mirror)
	e.setString("HANDSNAP_CLASSIFIER", &c.Classifier)
	e.setString("HANDSNAP_TEMPLATE", &c.TemplatePath)
	e.setFloat("HANDSNAP_TOLERANCE", &c.Tolerance)
	e.setFloat("HANDSNAP_MIN_CONFIDENCE", &c.MinConfidence)
	e.setString("HANDSNAP_SCRIPT", &c.ScriptPath)
	e.setString("HANDSNAP_PYTHON", &c.Python)
	e.setString("HANDSNAP_SPEECH_COMMAND", &c.SpeechCommand)
	e.setBool("HANDSNAP_MUTE", &c.Mute)
	e.setBool("HANDSNAP_CATALOG", &c.Catalog)

	return errors.Join(e.errs...)
}

type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *envReader) get(key string) (string, bool) {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *envReader) fail(key, value string, err error) {
	e.errs = append(e.errs, fmt.Errorf("%s=%q: %w", key, value, err))
}

func (e *envReader) setString(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) setInt(key string, dst *int) {
	if v, ok := e.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) setFloat(key string, dst *float64) {
	if v, ok := e.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (e *envReader) setBool(key string, dst *bool) {
	if v, ok := e.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) setDuration(key string, dst *time.Duration) {
	if v, ok := e.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = d
	}
}
