// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SrsConfig はスケジューラ規則の設定（srs.Policy に写し取られる）
type SrsConfig struct {
	GoodMultiplier  float64 `mapstructure:"good_multiplier"`
	HardMultiplier  float64 `mapstructure:"hard_multiplier"` // 0以下なら1日リセット
	MaxIntervalDays int     `mapstructure:"max_interval_days"`
}

type StatsConfig struct {
	// WindowDays は定着率を計算する直近の日数窓
	WindowDays int `mapstructure:"window_days"`
}

type AppConfig struct {
	SessionMaxSize    int         `mapstructure:"session_max_size"`
	SessionTTLMinutes int         `mapstructure:"session_ttl_minutes"`
	Srs               SrsConfig   `mapstructure:"srs"`
	Stats             StatsConfig `mapstructure:"stats"`
}

type JobsConfig struct {
	Enabled               bool `mapstructure:"enabled"`
	RollupIntervalMinutes int  `mapstructure:"rollup_interval_minutes"`
	ReminderHourUTC       int  `mapstructure:"reminder_hour_utc"`
}

type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type JWTConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type SESConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" or "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Sender          string `mapstructure:"sender"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppConfig      `mapstructure:"app"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	Auth     AuthConfig     `mapstructure:"auth"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
	SES      SESConfig      `mapstructure:"ses"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数での上書き (例: APP_DATABASE_URL, APP_JWT_SECRET_KEY)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "APP_DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "APP_JWT_SECRET_KEY")
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	applyDefaults(&Cfg)

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Session Max Size: %d", Cfg.App.SessionMaxSize)
	log.Printf("Retention Window Days: %d", Cfg.App.Stats.WindowDays)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}

// applyDefaults は未設定値にデフォルトを適用します
func applyDefaults(c *Config) {
	if c.Server.Port == "" {
		log.Println("Server port not set, using default ':8080'")
		c.Server.Port = DefaultServerPort
	}
	if c.App.SessionMaxSize <= 0 {
		c.App.SessionMaxSize = DefaultSessionMaxSize
	}
	if c.App.SessionTTLMinutes <= 0 {
		c.App.SessionTTLMinutes = DefaultSessionTTLMinutes
	}
	if c.App.Srs.GoodMultiplier <= 0 {
		c.App.Srs.GoodMultiplier = DefaultGoodMultiplier
	}
	if c.App.Srs.MaxIntervalDays <= 0 {
		c.App.Srs.MaxIntervalDays = DefaultMaxIntervalDays
	}
	if c.App.Stats.WindowDays <= 0 {
		c.App.Stats.WindowDays = DefaultStatsWindowDays
	}
	if c.Jobs.RollupIntervalMinutes <= 0 {
		c.Jobs.RollupIntervalMinutes = DefaultRollupIntervalMinutes
	}
	if c.Jobs.ReminderHourUTC < 0 || c.Jobs.ReminderHourUTC > 23 {
		c.Jobs.ReminderHourUTC = DefaultReminderHourUTC
	}
	if !viper.IsSet("jobs.enabled") {
		c.Jobs.Enabled = true
	}
	if !viper.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		c.Auth.Enabled = true
	}
	if c.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
}
