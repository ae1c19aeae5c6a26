package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Placeholder credentials used when nothing is configured. An all-zero
// pair lets the bridge start for commissioning experiments but will never
// verify against a paired appliance.
const (
	// PlaceholderGroupID is 8 zero bytes, hex-encoded.
	PlaceholderGroupID = "0000000000000000"

	// PlaceholderGroupKey is 64 zero bytes, hex-encoded.
	PlaceholderGroupKey = "0000000000000000000000000000000000000000000000000000000000000000" +
		"0000000000000000000000000000000000000000000000000000000000000000"
)

// Config is the root configuration structure for the Miele bridge.
// All configuration is loaded from YAML and can be overridden by
// environment variables.
type Config struct {
	Gateway   GatewayConfig   `yaml:"gateway"`
	API       APIConfig       `yaml:"api"`
	Appliance ApplianceConfig `yaml:"appliance"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GatewayConfig holds the shared credentials registered with appliances.
// Both values are hex strings; prefer setting them via the GROUP_ID and
// GROUP_KEY environment variables over committing them to the file.
type GatewayConfig struct {
	GroupID  string `yaml:"group_id"`
	GroupKey string `yaml:"group_key"`
}

// APIConfig contains HTTP server settings for the bridge's own surface.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// ApplianceConfig contains settings for outbound appliance calls.
type ApplianceConfig struct {
	// ConnectTimeoutSeconds bounds dialling and time-to-first-byte.
	// Default: 5
	ConnectTimeoutSeconds int `yaml:"connect_timeout_seconds"`

	// RequestTimeoutSeconds bounds the entire outbound round trip.
	// Default: 10
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`

	// UserAgent is sent on every outbound request. Some firmware
	// revisions only answer the official mobile client string.
	UserAgent string `yaml:"user_agent"`
}

// MQTTConfig contains MQTT broker connection settings for the optional
// state publisher.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings in seconds.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains settings for the optional request-telemetry
// writer.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides.
//
// The loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// A missing config file is not an error: the original gateway ran on
// environment variables alone, and the bridge keeps that property. A file
// that exists but fails to parse is still fatal.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file is unreadable/unparsable or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case os.IsNotExist(err):
		// Defaults plus environment variables.
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Gateway: GatewayConfig{
			GroupID:  PlaceholderGroupID,
			GroupKey: PlaceholderGroupKey,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Appliance: ApplianceConfig{
			ConnectTimeoutSeconds: 5,
			RequestTimeoutSeconds: 10,
			UserAgent:             "Miele@mobile 2.3.3 Android",
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "miele-bridge",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the
// configuration.
//
// GROUP_ID and GROUP_KEY keep their historical names from the original
// gateway so existing deployments carry over unchanged; everything else
// follows the MIELE_SECTION_KEY pattern.
func applyEnvOverrides(cfg *Config) {
	// Credentials (historical names, no prefix)
	if v := os.Getenv("GROUP_ID"); v != "" {
		cfg.Gateway.GroupID = v
	}
	if v := os.Getenv("GROUP_KEY"); v != "" {
		cfg.Gateway.GroupKey = v
	}

	// API
	if v := os.Getenv("MIELE_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("MIELE_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// MQTT
	if v := os.Getenv("MIELE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("MIELE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("MIELE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("MIELE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Credentials must be hex-decodable. Hex decoding also guarantees an
	// even byte length, which the decryption key derivation relies on.
	if _, err := hex.DecodeString(c.Gateway.GroupID); err != nil || c.Gateway.GroupID == "" {
		errs = append(errs, "gateway.group_id must be a hex string (set GROUP_ID environment variable)")
	}
	if _, err := hex.DecodeString(c.Gateway.GroupKey); err != nil || c.Gateway.GroupKey == "" {
		errs = append(errs, "gateway.group_key must be a hex string (set GROUP_KEY environment variable)")
	}

	// API validation
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// Appliance validation
	if c.Appliance.ConnectTimeoutSeconds <= 0 {
		errs = append(errs, "appliance.connect_timeout_seconds must be positive")
	}
	if c.Appliance.RequestTimeoutSeconds <= 0 {
		errs = append(errs, "appliance.request_timeout_seconds must be positive")
	}

	// MQTT validation
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
	}

	// InfluxDB validation
	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Org == "" || c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.org and influxdb.bucket are required when influxdb is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}

// ConnectTimeout returns the appliance connect timeout as a Duration.
func (c *ApplianceConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// RequestTimeout returns the appliance request timeout as a Duration.
func (c *ApplianceConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
