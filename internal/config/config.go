package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/sav-labs/dynamic-k8s-resources/internal/logic/scaler"
)

const (
	defaultInterval    = 30 * time.Second
	defaultCooldown    = 10 * time.Minute
	defaultConcurrency = 4

	defaultScaleUpThreshold         = 0.8
	defaultScaleUpUsageMultiplier   = 1.4
	defaultScaleUpMinGrowth         = 1.2
	defaultScaleDownThreshold       = 0.3
	defaultScaleDownUsageMultiplier = 2.5
	defaultScaleDownMinDiff         = 0.2
	defaultMinRequestMemory         = "100Mi"
)

// Config is the process-wide configuration, loaded once at startup and
// immutable for the process lifetime.
type Config struct {
	KubeConfig            string
	KubeMaster            string
	InsecureSkipTLSVerify bool

	Interval         time.Duration
	Cooldown         time.Duration
	Concurrency      int
	PodLabelSelector string

	ScaleUpThreshold         float64
	ScaleUpUsageMultiplier   float64
	ScaleUpMinGrowth         float64
	ScaleDownThreshold       float64
	ScaleDownUsageMultiplier float64
	ScaleDownMinDiff         float64
	MinRequestBytes          int64

	LogLevel    string
	LogFormat   string
	HTTPPort    string
	MetricsPort string
}

// Load reads the configuration from the environment and validates it.
// Invalid combinations fail startup; the process must not run degraded.
func Load() (*Config, error) {
	cfg := &Config{
		KubeConfig:       getEnvWithFallback(envKeyKubeConfig, envKeyKubeConfigFallback),
		KubeMaster:       getEnvWithFallback(envKeyKubeMaster, envKeyKubeMasterFallback),
		PodLabelSelector: os.Getenv(envKeyPodLabelSelector),
		LogLevel:         getEnvOrDefault(envKeyLogLevel, "info"),
		LogFormat:        getEnvOrDefault(envKeyLogFormat, "json"),
		HTTPPort:         getEnvOrDefault(envKeyHTTPPort, "8080"),
		MetricsPort:      getEnvOrDefault(envKeyMetricsPort, "9090"),
	}

	var err error

	cfg.InsecureSkipTLSVerify, err = parseBool(envKeyInsecureSkipTLSVerify, false)
	if err != nil {
		return nil, err
	}

	cfg.Interval, err = parseDuration(envKeyInterval, defaultInterval)
	if err != nil {
		return nil, err
	}

	if cfg.Interval < envMinInterval {
		return nil, fmt.Errorf("%s: interval %s below minimum %s", envKeyInterval, cfg.Interval, envMinInterval)
	}

	cfg.Cooldown, err = parseDuration(envKeyCooldown, defaultCooldown)
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = parseInt(envKeyConcurrency, defaultConcurrency)
	if err != nil {
		return nil, err
	}

	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("%s: concurrency must be at least 1", envKeyConcurrency)
	}

	if err := loadPolicy(cfg); err != nil {
		return nil, err
	}

	// Fail fast on threshold combinations that would oscillate.
	if err := cfg.Thresholds().Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Thresholds bundles the policy part of the configuration.
func (c *Config) Thresholds() scaler.Thresholds {
	return scaler.Thresholds{
		ScaleUpThreshold:         c.ScaleUpThreshold,
		ScaleUpUsageMultiplier:   c.ScaleUpUsageMultiplier,
		ScaleUpMinGrowth:         c.ScaleUpMinGrowth,
		ScaleDownThreshold:       c.ScaleDownThreshold,
		ScaleDownUsageMultiplier: c.ScaleDownUsageMultiplier,
		ScaleDownMinDiff:         c.ScaleDownMinDiff,
		MinRequestBytes:          c.MinRequestBytes,
		Cooldown:                 c.Cooldown,
	}
}

func loadPolicy(cfg *Config) error {
	var err error

	cfg.ScaleUpThreshold, err = parseFloat(envKeyScaleUpThreshold, defaultScaleUpThreshold)
	if err != nil {
		return err
	}

	cfg.ScaleUpUsageMultiplier, err = parseFloat(envKeyScaleUpUsageMultiplier, defaultScaleUpUsageMultiplier)
	if err != nil {
		return err
	}

	cfg.ScaleUpMinGrowth, err = parseFloat(envKeyScaleUpMinGrowth, defaultScaleUpMinGrowth)
	if err != nil {
		return err
	}

	cfg.ScaleDownThreshold, err = parseFloat(envKeyScaleDownThreshold, defaultScaleDownThreshold)
	if err != nil {
		return err
	}

	cfg.ScaleDownUsageMultiplier, err = parseFloat(envKeyScaleDownUsageMultiplier, defaultScaleDownUsageMultiplier)
	if err != nil {
		return err
	}

	cfg.ScaleDownMinDiff, err = parseFloat(envKeyScaleDownMinDiff, defaultScaleDownMinDiff)
	if err != nil {
		return err
	}

	minRequestStr := getEnvOrDefault(envKeyMinRequestMemory, defaultMinRequestMemory)

	minRequest, err := resource.ParseQuantity(minRequestStr)
	if err != nil {
		return fmt.Errorf("%s: parse quantity %q: %w", envKeyMinRequestMemory, minRequestStr, err)
	}

	cfg.MinRequestBytes = minRequest.Value()

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getEnvWithFallback(key, fallbackKey string) string {
	value := os.Getenv(key)
	if value == "" {
		return os.Getenv(fallbackKey)
	}

	return value
}

func parseBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: parse bool %q: %w", key, value, err)
	}

	return parsed, nil
}

func parseInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: parse int %q: %w", key, value, err)
	}

	return parsed, nil
}

func parseFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: parse float %q: %w", key, value, err)
	}

	return parsed, nil
}

// parseDuration accepts explicit units (5m, 40s) and falls back to plain
// seconds for compatibility with integer-style values (300).
func parseDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := time.ParseDuration(value)
	if err == nil {
		return parsed, nil
	}

	seconds, intErr := strconv.Atoi(value)
	if intErr != nil {
		return 0, fmt.Errorf("%s: parse duration %q: %w", key, value, err)
	}

	return time.Duration(seconds) * time.Second, nil
}
