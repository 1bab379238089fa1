package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset source. An empty path selects the embedded dataset.
	DatasetPath           string
	DatasetReloadInterval time.Duration

	// QueryMaxLimit caps the limit a caller may request.
	QueryMaxLimit int

	// Match-event feed configuration.
	KafkaBrokers       []string
	KafkaMatchTopic    string
	MatchEventsEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	reloadInterval, err := time.ParseDuration(sharedcfg.EnvOrDefault("DATASET_RELOAD_INTERVAL", "0s"))
	if err != nil || reloadInterval < 0 {
		return nil, errors.New("invalid DATASET_RELOAD_INTERVAL")
	}

	maxLimit, err := strconv.Atoi(sharedcfg.EnvOrDefault("QUERY_MAX_LIMIT", "100"))
	if err != nil || maxLimit <= 0 {
		return nil, errors.New("invalid QUERY_MAX_LIMIT: must be a positive integer")
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	matchEventsEnabled := len(brokers) > 0
	if v := os.Getenv("MATCH_EVENTS_ENABLED"); v != "" {
		matchEventsEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatasetPath:           os.Getenv("DATASET_PATH"),
		DatasetReloadInterval: reloadInterval,
		QueryMaxLimit:         maxLimit,

		KafkaBrokers:       brokers,
		KafkaMatchTopic:    sharedcfg.EnvOrDefault("KAFKA_MATCH_TOPIC", "hazard-zone-matches"),
		MatchEventsEnabled: matchEventsEnabled,
	}

	if cfg.DatasetReloadInterval > 0 && cfg.DatasetPath == "" {
		return nil, errors.New("DATASET_RELOAD_INTERVAL requires DATASET_PATH")
	}
	if cfg.MatchEventsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("MATCH_EVENTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.MatchEventsEnabled && cfg.KafkaMatchTopic == "" {
		return nil, errors.New("KAFKA_MATCH_TOPIC is required")
	}

	return cfg, nil
}
