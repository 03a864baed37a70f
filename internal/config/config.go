/**
 * @description
 * Configuration management for the dashboard service. Settings are loaded
 * from environment variables via viper, with defaults suitable for a local,
 * self-contained run (file-backed snapshots, no broker).
 */
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	ServerPort     string  `mapstructure:"SERVER_PORT"`
	DataDir        string  `mapstructure:"DATA_DIR"`
	StoreBackend   string  `mapstructure:"STORE_BACKEND"`
	DatabaseURL    string  `mapstructure:"DATABASE_URL"`
	AMQPURL        string  `mapstructure:"AMQP_URL"`
	JWTSecret      string  `mapstructure:"JWT_SECRET"`
	WalletTopUpCap float64 `mapstructure:"WALLET_TOPUP_CAP"`

	TokenTTLMinutes      int    `mapstructure:"TOKEN_TTL_MINUTES"`
	SimulatedDelayMillis int    `mapstructure:"SIMULATED_DELAY_MS"`
	BillingSweepSchedule string `mapstructure:"BILLING_SWEEP_SCHEDULE"`
}

// TokenTTL returns the session token lifetime.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// SimulatedDelay returns the artificial latency applied to simulated
// external calls (login, signup, catalog actions).
func (c Config) SimulatedDelay() time.Duration {
	return time.Duration(c.SimulatedDelayMillis) * time.Millisecond
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (Config, error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("STORE_BACKEND", "file")
	viper.SetDefault("JWT_SECRET", "local-dev-secret")
	viper.SetDefault("WALLET_TOPUP_CAP", 10000.0)
	viper.SetDefault("TOKEN_TTL_MINUTES", 24*60)
	viper.SetDefault("SIMULATED_DELAY_MS", 500)
	viper.SetDefault("BILLING_SWEEP_SCHEDULE", "0 2 * * *") // At 02:00 daily.
	viper.AllowEmptyEnv(true)                               // An empty schedule disables recurring sweeps.
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATA_DIR")
	_ = viper.BindEnv("STORE_BACKEND")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("AMQP_URL")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("WALLET_TOPUP_CAP")
	_ = viper.BindEnv("TOKEN_TTL_MINUTES")
	_ = viper.BindEnv("SIMULATED_DELAY_MS")
	_ = viper.BindEnv("BILLING_SWEEP_SCHEDULE")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	if config.StoreBackend != "file" && config.StoreBackend != "postgres" {
		return Config{}, errors.New("STORE_BACKEND must be 'file' or 'postgres'")
	}
	if config.StoreBackend == "postgres" && config.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required when STORE_BACKEND is 'postgres'")
	}

	return config, nil
}
