package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort           string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL        string `env:"DATABASE_URL,required"`
	JWTSecret          string `env:"JWT_SECRET,required"`
	JWTAccessTTLHours  int    `env:"JWT_ACCESS_TTL_HOURS" envDefault:"168"`
	JWTRefreshTTLHours int    `env:"JWT_REFRESH_TTL_HOURS" envDefault:"720"`
	BcryptCost         int    `env:"BCRYPT_COST" envDefault:"10"`
	SigninMaxAttempts  int    `env:"SIGNIN_MAX_ATTEMPTS" envDefault:"5"`
	SigninWindowMin    int    `env:"SIGNIN_WINDOW_MINUTES" envDefault:"15"`
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	SMTPHost           string `env:"SMTP_HOST"`
	SMTPPort           int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser           string `env:"SMTP_USER"`
	SMTPPass           string `env:"SMTP_PASS"`
	SMTPFrom           string `env:"SMTP_FROM"`
	SMTPFromName       string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS         bool   `env:"SMTP_USE_TLS" envDefault:"false"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
