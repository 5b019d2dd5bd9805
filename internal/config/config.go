package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"kairos"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string `envconfig:"KAIROS_EXPORT_ADDRESS" default:":8320"`
	BaseUrl        string `envconfig:"KAIROS_EXPORT_BASE_URL" default:"http://localhost:8320"`
	LogLevel       string `envconfig:"KAIROS_EXPORT_LOG_LEVEL" default:"info"`
	EventTopic     string `envconfig:"KAIROS_EXPORT_EVENT_TOPIC" default:"kairos.isdp.events.export"`
	AdapterTimeout int    `envconfig:"KAIROS_EXPORT_ADAPTER_TIMEOUT_SECONDS" default:"60"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a configuration suitable for tests: a shared
// in-memory sqlite database instead of postgres.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			Name: "file::memory:?cache=shared",
		},
		Service: &svcConfig{
			Address:        "localhost:0",
			LogLevel:       "error",
			EventTopic:     "kairos.isdp.events.export",
			AdapterTimeout: 5,
		},
	}
}
