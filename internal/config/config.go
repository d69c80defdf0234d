package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config contains runtime settings for the discovery server
type Config struct {
	LogLevel string `validate:"oneof=debug info warn warning error fatal panic"`
	Host     string // default 0.0.0.0
	Port     string `validate:"required,numeric"`

	TheirStack struct {
		APIKey        string        `validate:"required"`
		BaseURL       string        `validate:"omitempty,url"`
		RequestShape  string        `validate:"oneof=structured free_text"`
		SearchTimeout time.Duration `validate:"gt=0"`
		ProbeTimeout  time.Duration `validate:"gt=0"`
	}

	Discovery struct {
		MaxRetries    int           `validate:"gte=0,lte=10"`
		RetryDelay    time.Duration `validate:"gt=0"`
		MaxRetryDelay time.Duration `validate:"gtfield=RetryDelay"`
		DefaultLimit  int           `validate:"gte=1,lte=100"`
		SessionTTL    time.Duration `validate:"gt=0"`
	}

	// Neo4j is optional; without it profile completion is skipped
	Neo4j struct {
		URI      string `validate:"omitempty,url"`
		Username string `validate:"required_with=URI"`
		Password string `validate:"required_with=URI"`
	}

	SheetsCredentialsPath string
}

// Load populates config from environment variables
func Load() (Config, error) {
	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}
	cfg.TheirStack.RequestShape = "structured"
	cfg.TheirStack.SearchTimeout = 30 * time.Second
	cfg.TheirStack.ProbeTimeout = 10 * time.Second
	cfg.Discovery.MaxRetries = 2
	cfg.Discovery.RetryDelay = 250 * time.Millisecond
	cfg.Discovery.MaxRetryDelay = 2 * time.Second
	cfg.Discovery.DefaultLimit = 10
	cfg.Discovery.SessionTTL = 30 * time.Minute

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	cfg.TheirStack.APIKey = strings.TrimSpace(os.Getenv("THEIRSTACK_API_KEY"))
	cfg.TheirStack.BaseURL = os.Getenv("THEIRSTACK_BASE_URL")
	if v := os.Getenv("THEIRSTACK_REQUEST_SHAPE"); v != "" {
		cfg.TheirStack.RequestShape = strings.ToLower(v)
	}

	var parseErrs []error
	parseDuration("SEARCH_TIMEOUT", &cfg.TheirStack.SearchTimeout, &parseErrs)
	parseDuration("PROBE_TIMEOUT", &cfg.TheirStack.ProbeTimeout, &parseErrs)
	parseInt("DISCOVERY_MAX_RETRIES", &cfg.Discovery.MaxRetries, &parseErrs)
	parseDuration("DISCOVERY_RETRY_DELAY", &cfg.Discovery.RetryDelay, &parseErrs)
	parseDuration("DISCOVERY_MAX_RETRY_DELAY", &cfg.Discovery.MaxRetryDelay, &parseErrs)
	parseInt("DISCOVERY_DEFAULT_LIMIT", &cfg.Discovery.DefaultLimit, &parseErrs)
	parseDuration("DISCOVERY_SESSION_TTL", &cfg.Discovery.SessionTTL, &parseErrs)

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")

	cfg.SheetsCredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	var missingVars []string

	if cfg.TheirStack.APIKey == "" {
		missingVars = append(missingVars, "THEIRSTACK_API_KEY")
	}

	if cfg.Neo4j.URI != "" {
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	if len(parseErrs) > 0 {
		return cfg, errors.Join(parseErrs...)
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges and formats
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func parseDuration(key string, dst *time.Duration, errs *[]error) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = d
}

func parseInt(key string, dst *int, errs *[]error) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}
