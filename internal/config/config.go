package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

const (
	defaultBaseURL           = "https://swgoh.gg"
	defaultReferenceTTL      = time.Hour
	defaultRequestsPerSecond = 5.0
)

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

type Config struct {
	swgohggUser       string
	swgohggPassword   string
	swgohggBaseURL    string
	sentryDSN         string
	acronymsFile      string
	redisURL          string
	referenceTTL      time.Duration
	requestsPerSecond float64
	env               environment
}

func (c *Config) SwgohggUser() string {
	return c.swgohggUser
}

func (c *Config) SwgohggPassword() string {
	return c.swgohggPassword
}

func (c *Config) SwgohggBaseURL() string {
	return c.swgohggBaseURL
}

func (c *Config) HasSwgohggCredentials() bool {
	return c.swgohggUser != "" && c.swgohggPassword != ""
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

// Empty when the embedded acronym table should be used
func (c *Config) AcronymsFile() string {
	return c.acronymsFile
}

// Empty when swgoh.gg responses should not be persisted between runs
func (c *Config) RedisURL() string {
	return c.redisURL
}

func (c *Config) ReferenceTTL() time.Duration {
	return c.referenceTTL
}

func (c *Config) RequestsPerSecond() float64 {
	return c.requestsPerSecond
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, baseURL: %s, referenceTTL: %s, requestsPerSecond: %g, redis: %t, ...}",
		string(c.env), c.swgohggBaseURL, c.referenceTTL, c.requestsPerSecond, c.redisURL != "",
	)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}
	invalidKey := func(key, value string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s (%s)", ErrInvalidValue, key, value)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("SWGOH_ENVIRONMENT")
	if !ok {
		return missingKey("SWGOH_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return invalidKey("SWGOH_ENVIRONMENT", rawEnv)
	}

	swgohggUser := os.Getenv("SWGOHGG_USER")
	swgohggPassword := os.Getenv("SWGOHGG_PASSWORD")
	sentryDSN := os.Getenv("SENTRY_DSN")
	acronymsFile := os.Getenv("SWGOH_ACRONYMS_FILE")
	redisURL := os.Getenv("SWGOH_REDIS_URL")

	swgohggBaseURL := os.Getenv("SWGOHGG_BASE_URL")
	if swgohggBaseURL == "" {
		swgohggBaseURL = defaultBaseURL
	}

	referenceTTL := defaultReferenceTTL
	if rawTTL := os.Getenv("SWGOH_REFERENCE_TTL"); rawTTL != "" {
		parsed, err := time.ParseDuration(rawTTL)
		if err != nil || parsed <= 0 {
			return invalidKey("SWGOH_REFERENCE_TTL", rawTTL)
		}
		referenceTTL = parsed
	}

	requestsPerSecond := defaultRequestsPerSecond
	if rawRPS := os.Getenv("SWGOHGG_REQUESTS_PER_SECOND"); rawRPS != "" {
		parsed, err := strconv.ParseFloat(rawRPS, 64)
		if err != nil || parsed <= 0 {
			return invalidKey("SWGOHGG_REQUESTS_PER_SECOND", rawRPS)
		}
		requestsPerSecond = parsed
	}

	if env == production || env == staging {
		if swgohggUser == "" {
			return missingKey("SWGOHGG_USER")
		}
		if swgohggPassword == "" {
			return missingKey("SWGOHGG_PASSWORD")
		}
	}
	if env == production && sentryDSN == "" {
		return missingKey("SENTRY_DSN")
	}

	return Config{
		swgohggUser:       swgohggUser,
		swgohggPassword:   swgohggPassword,
		swgohggBaseURL:    swgohggBaseURL,
		sentryDSN:         sentryDSN,
		acronymsFile:      acronymsFile,
		redisURL:          redisURL,
		referenceTTL:      referenceTTL,
		requestsPerSecond: requestsPerSecond,
		env:               env,
	}, nil
}
