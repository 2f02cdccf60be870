package config

import (
	"fmt"
	"os"

	env "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv      string `env:"APP_ENV" envDefault:"production"`

	DBMaxOpenConns     int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns     int `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeS int `env:"DB_CONN_MAX_LIFETIME_S" envDefault:"300"`
	DBConnMaxIdleTimeS int `env:"DB_CONN_MAX_IDLE_TIME_S" envDefault:"60"`

	// Wraps the balance read and the transaction append of a deposit or
	// withdrawal in one serializable transaction.
	SerializablePosting  bool `env:"LEDGER_SERIALIZABLE_POSTING" envDefault:"false"`
	SerializationRetries int  `env:"LEDGER_SERIALIZATION_RETRIES" envDefault:"5"`

	// 0 means the allocator keeps drawing until it finds a free number.
	MaxAllocationAttempts int `env:"ACCOUNT_NUMBER_MAX_ATTEMPTS" envDefault:"0"`
}

const configFileVar = "CONFIG_FILE"

// Load reads the configuration from the process environment. When CONFIG_FILE
// points at a YAML file of VAR: value pairs, those pairs are used as a base
// that real environment variables override.
func Load() (*Config, error) {
	environ := env.ToMap(os.Environ())

	if path := environ[configFileVar]; path != "" {
		base, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
		for k, v := range environ {
			base[k] = v
		}
		environ = base
	}

	return parse(environ)
}

func parse(environ map[string]string) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.SerializationRetries < 1 {
		cfg.SerializationRetries = 1
	}
	if cfg.MaxAllocationAttempts < 0 {
		return nil, fmt.Errorf("config.Load: ACCOUNT_NUMBER_MAX_ATTEMPTS must not be negative")
	}
	return &cfg, nil
}

func readFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("readFile: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("readFile: %s: %w", path, err)
	}

	out := make(map[string]string, len(values))
	for k, v := range values {
		if v == nil {
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out, nil
}
