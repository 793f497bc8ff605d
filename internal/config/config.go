package config

import (
	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

// Config is parsed once at startup and handed to the components that need
// it. Business code never reads the environment directly.
type Config struct {
	Port           string `env:"PORT" envDefault:"3000"`
	DatabaseURL    string `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret      string `env:"JWT_SECRET,required,notEmpty"`
	ExchangeAPIKey string `env:"EXCHANGE_API_KEY,required,notEmpty"`
	ExchangeAPIURL string `env:"EXCHANGE_API_URL" envDefault:"https://v6.exchangerate-api.com/v6"`
	CORSOrigin     string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`
}

func Load() (*Config, error) {
	// A missing .env file is fine in production; real env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
