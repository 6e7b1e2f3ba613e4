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
	Name     string `envconfig:"DB_NAME" default:"jobboard"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string   `envconfig:"JOBBOARD_ADDRESS" default:":3443"`
	MetricsAddress  string   `envconfig:"JOBBOARD_METRICS_ADDRESS" default:":8080"`
	BaseUrl         string   `envconfig:"JOBBOARD_BASE_URL" default:"http://localhost:3443"`
	LogLevel        string   `envconfig:"JOBBOARD_LOG_LEVEL" default:"info"`
	MigrationFolder string   `envconfig:"JOBBOARD_MIGRATIONS_FOLDER" default:""`
	CorsOrigins     []string `envconfig:"JOBBOARD_CORS_ORIGINS" default:"*"`
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

// NewDefault returns a config suitable for tests: an in-memory sqlite
// database and no external collaborators.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			// shared cache so every pooled connection sees the same database
			Name: "file::memory:?cache=shared&_busy_timeout=5000",
		},
		Service: &svcConfig{
			Address:        ":3443",
			MetricsAddress: ":8080",
			BaseUrl:        "http://localhost:3443",
			LogLevel:       "info",
			CorsOrigins:    []string{"*"},
		},
	}
}
