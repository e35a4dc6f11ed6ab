package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// BotConfig holds Telegram Bot API settings.
type BotConfig struct {
	Token string `yaml:"token" env:"BOT_TOKEN" env-required:"true"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"     env:"DB_HOST"     env-required:"true"`
	Port     int    `yaml:"port"     env:"DB_PORT"     env-default:"5432"`
	Name     string `yaml:"name"     env:"DB_NAME"     env-required:"true"`
	User     string `yaml:"user"     env:"DB_USER"     env-required:"true"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-required:"true"`

	MaxConns        int32         `yaml:"max_conns"          env:"DB_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"DB_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DB_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DB_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// DSN composes a pgx connection string from the discrete settings.
// User and password are escaped so credentials with special characters work.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Name,
	}
	return u.String()
}

// LogConfig holds logging settings. File enables an additional rotating
// log file next to stderr output.
type LogConfig struct {
	Level          string `yaml:"level"            env:"LOG_LEVEL"            env-default:"info"`
	Format         string `yaml:"format"           env:"LOG_FORMAT"           env-default:"json"`
	File           string `yaml:"file"             env:"LOG_FILE"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb" env:"LOG_FILE_MAX_SIZE_MB" env-default:"2"`
	FileMaxBackups int    `yaml:"file_max_backups" env:"LOG_FILE_MAX_BACKUPS" env-default:"5"`
}
