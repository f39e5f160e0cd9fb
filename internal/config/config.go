package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	RabbitMQ  RabbitMQConfig
	Pipeline  PipelineConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RabbitMQConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	VHost    string
}

type PipelineConfig struct {
	// SourceQueue is the base queue name; each partition queue is
	// "<SourceQueue>.<n>" for n in [0, PartitionCount).
	SourceQueue    string
	PartitionCount int
	PrefetchCount  int
	RedactedFields []string
}

type TelemetryConfig struct {
	// EnvID becomes context.pdata.id on every outgoing event.
	EnvID    string
	Topic    string
	Exchange string
	// Sink selects the publish path: "queue" (RabbitMQ) or "http".
	Sink      string
	BaseURL   string
	Endpoint  string
	AuthToken string
}

// DefaultRedactedFields is the denylist applied when REDACTED_FIELDS is unset.
var DefaultRedactedFields = []string{
	"userName",
	"userEmail",
	"submittedFromName",
	"submittedFromEmail",
	"submittedToName",
	"submittedToEmail",
	"createdByName",
	"updatedByName",
}

func Load() (*Config, error) {
	var missing []string

	get := func(key string) string {
		val := os.Getenv(key)
		if val == "" {
			missing = append(missing, key)
		}
		return val
	}

	getOrDefault := func(key, def string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		return def
	}

	getIntOrDefault := func(key string, def int) int {
		val := os.Getenv(key)
		if val == "" {
			return def
		}
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return def
		}
		return n
	}

	config := &Config{
		Server: ServerConfig{
			Port: get("SERVER_PORT"),
			Host: get("SERVER_HOST"),
		},
		Database: DatabaseConfig{
			Host:     get("DB_HOST"),
			Port:     get("DB_PORT"),
			User:     get("DB_USER"),
			Password: get("DB_PASSWORD"),
			DBName:   get("DB_NAME"),
			SSLMode:  get("DB_SSLMODE"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      os.Getenv("RABBITMQ_URL"),
			Host:     get("RABBITMQ_HOST"),
			Port:     get("RABBITMQ_PORT"),
			User:     get("RABBITMQ_USER"),
			Password: get("RABBITMQ_PASSWORD"),
			VHost:    get("RABBITMQ_VHOST"),
		},
		Pipeline: PipelineConfig{
			SourceQueue:    get("PIPELINE_SOURCE_QUEUE"),
			PartitionCount: getIntOrDefault("PIPELINE_PARTITION_COUNT", 4),
			PrefetchCount:  getIntOrDefault("PIPELINE_PREFETCH_COUNT", 1),
			RedactedFields: splitFields(os.Getenv("REDACTED_FIELDS")),
		},
		Telemetry: TelemetryConfig{
			EnvID:     get("TELEMETRY_ENV_ID"),
			Topic:     get("TELEMETRY_TOPIC"),
			Exchange:  getOrDefault("TELEMETRY_EXCHANGE", ""),
			Sink:      getOrDefault("TELEMETRY_SINK", "queue"),
			BaseURL:   os.Getenv("TELEMETRY_BASE_URL"),
			Endpoint:  os.Getenv("TELEMETRY_ENDPOINT"),
			AuthToken: os.Getenv("TELEMETRY_AUTH_TOKEN"),
		},
	}

	if len(config.Pipeline.RedactedFields) == 0 {
		config.Pipeline.RedactedFields = DefaultRedactedFields
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	if config.Telemetry.Sink != "queue" && config.Telemetry.Sink != "http" {
		return nil, fmt.Errorf("invalid TELEMETRY_SINK %q: must be \"queue\" or \"http\"", config.Telemetry.Sink)
	}
	if config.Telemetry.Sink == "http" && config.Telemetry.BaseURL == "" {
		return nil, fmt.Errorf("TELEMETRY_BASE_URL is required when TELEMETRY_SINK is \"http\"")
	}

	return config, nil
}

// splitFields parses a comma-separated list, trimming whitespace and
// dropping empty entries
func splitFields(raw string) []string {
	if raw == "" {
		return nil
	}
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func (c *RabbitMQConfig) ConnectionURL() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%s%s",
		c.User, c.Password, c.Host, c.Port, c.VHost)
}

// PartitionQueues returns the per-partition queue names in partition order
func (c *PipelineConfig) PartitionQueues() []string {
	queues := make([]string, c.PartitionCount)
	for i := range queues {
		queues[i] = fmt.Sprintf("%s.%d", c.SourceQueue, i)
	}
	return queues
}
