package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// HTTP listen address, e.g. ":8000"
	Address string `env:"ADDRESS" envDefault:":8000"`

	// Reported by /api/health.
	Device string `env:"DEVICE" envDefault:"cpu"`

	// Inference backend: openai | gemini | ollama | tesseract
	Backend      string        `env:"INFERENCE_BACKEND" envDefault:"openai"`
	ModelName    string        `env:"MODEL_NAME" envDefault:"HuggingFaceTB/SmolVLM2-2.2B-Instruct"`
	InferenceURL string        `env:"INFERENCE_URL" envDefault:"http://localhost:8080/v1"`
	APIKey       string        `env:"INFERENCE_API_KEY"`
	Timeout      time.Duration `env:"INFERENCE_TIMEOUT" envDefault:"120s"`
	LoadRetry    time.Duration `env:"MODEL_LOAD_RETRY" envDefault:"15s"`
	MaxNewTokens int           `env:"MAX_NEW_TOKENS" envDefault:"512"`

	// Image limits
	MaxImageSize      int `env:"MAX_IMAGE_SIZE" envDefault:"10485760"`
	MaxImageDimension int `env:"MAX_IMAGE_DIMENSION" envDefault:"4096"`

	// Store expiry
	SessionTimeout   time.Duration `env:"SESSION_TIMEOUT" envDefault:"1h"`
	OCRResultTimeout time.Duration `env:"OCR_RESULT_TIMEOUT" envDefault:"1h"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`

	OCRLanguages       []string `env:"OCR_LANGUAGES" envDefault:"en,ru" envSeparator:","`
	OCRDefaultLanguage string   `env:"OCR_DEFAULT_LANGUAGE" envDefault:"en"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	StaticDir   string   `env:"STATIC_DIR"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

var backends = []string{"openai", "gemini", "ollama", "tesseract"}

// Load loads .env (if present) and parses environment variables into Config.
// When CONFIG_FILE names a YAML file its keys (env names) fill in anything the
// environment leaves unset.
func Load() (Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	environ := environMap(os.Environ())
	if path := environ["CONFIG_FILE"]; path != "" {
		fileVars, err := readYAML(path)
		if err != nil {
			return Config{}, err
		}
		for k, v := range fileVars {
			if _, set := environ[k]; !set {
				environ[k] = v
			}
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.OCRLanguages = trimAll(c.OCRLanguages)
	c.CORSOrigins = trimAll(c.CORSOrigins)
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(backends, c.Backend) {
		errs = append(errs, fmt.Errorf("INFERENCE_BACKEND must be one of %s, got %q", strings.Join(backends, ", "), c.Backend))
	}
	positive := map[string]int64{
		"MAX_IMAGE_SIZE":      int64(c.MaxImageSize),
		"MAX_IMAGE_DIMENSION": int64(c.MaxImageDimension),
		"MAX_NEW_TOKENS":      int64(c.MaxNewTokens),
		"INFERENCE_TIMEOUT":   int64(c.Timeout),
		"MODEL_LOAD_RETRY":    int64(c.LoadRetry),
		"SESSION_TIMEOUT":     int64(c.SessionTimeout),
		"OCR_RESULT_TIMEOUT":  int64(c.OCRResultTimeout),
		"SWEEP_INTERVAL":      int64(c.SweepInterval),
	}
	for _, name := range sortedKeys(positive) {
		if positive[name] <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}
	if len(c.OCRLanguages) == 0 {
		errs = append(errs, errors.New("OCR_LANGUAGES must not be empty"))
	} else if !slices.Contains(c.OCRLanguages, c.OCRDefaultLanguage) {
		errs = append(errs, fmt.Errorf("OCR_DEFAULT_LANGUAGE %q is not in OCR_LANGUAGES", c.OCRDefaultLanguage))
	}
	return errors.Join(errs...)
}

func readYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
		case []any:
			parts := make([]string, 0, len(t))
			for _, p := range t {
				parts = append(parts, fmt.Sprint(p))
			}
			out[k] = strings.Join(parts, ",")
		default:
			out[k] = fmt.Sprint(t)
		}
	}
	return out, nil
}

func environMap(kv []string) map[string]string {
	out := make(map[string]string, len(kv))
	for _, e := range kv {
		if k, v, ok := strings.Cut(e, "="); ok {
			out[k] = v
		}
	}
	return out
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
