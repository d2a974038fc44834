// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ReviewConfig struct {
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

type PollConfig struct {
	StatsInterval time.Duration `mapstructure:"stats_interval"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type DevServerConfig struct {
	Port           string   `mapstructure:"port"`
	SecretKey      string   `mapstructure:"secret_key"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Review    ReviewConfig    `mapstructure:"review"`
	Poll      PollConfig      `mapstructure:"poll"`
	Session   SessionConfig   `mapstructure:"session"`
	Log       LogConfig       `mapstructure:"log"`
	DevServer DevServerConfig `mapstructure:"devserver"`
}

// LoadConfig は path と カレントディレクトリから config.yaml を読み込みます。
// ファイルが無い場合は環境変数とデフォルト値だけで組み立てます。
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvPrefix("APP") // 例: APP_API_BASE_URL
	v.AutomaticEnv()
	v.BindEnv("api.base_url", "RECALL_API_URL")
	v.BindEnv("session.path", "RECALL_SESSION_PATH")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return nil, err
	}

	cfg.applyDefaults()

	log.Println("Config loaded successfully")
	log.Printf("API Base URL: %s", cfg.API.BaseURL)
	log.Printf("Review Max Retries: %d", cfg.Review.MaxRetries)
	return &cfg, nil
}

// applyDefaults は未設定・不正な値をデフォルト値で埋めます。
func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		log.Printf("API base url not set, using default '%s'", DefaultAPIBaseURL)
		c.API.BaseURL = DefaultAPIBaseURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.Review.MaxRetries < 0 {
		log.Println("Review max retries is negative, using 0")
		c.Review.MaxRetries = 0
	}
	if c.Review.RetryBackoff <= 0 {
		c.Review.RetryBackoff = DefaultRetryBackoff
	}
	if c.Poll.StatsInterval <= 0 {
		c.Poll.StatsInterval = DefaultStatsInterval
	}
	if c.Session.Path == "" {
		c.Session.Path = DefaultSessionPath
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.File == "" {
		c.Log.File = DefaultLogFile
	}
	if c.DevServer.Port == "" {
		c.DevServer.Port = DefaultDevServerPort
	}
	if c.DevServer.SecretKey == "" {
		log.Println("Warning: devserver secret key is not set, using an insecure default.")
		c.DevServer.SecretKey = DefaultDevSecretKey
	}
	if len(c.DevServer.AllowedOrigins) == 0 {
		c.DevServer.AllowedOrigins = []string{"http://localhost:3000"}
	}
}

// Default はファイルを読まずにデフォルト値だけの設定を返します (テスト用)。
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
