package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// defaults + environment only
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func SetDefaults() {
	viper.SetDefault("THRESHOLD_BAND", 0.1)
	viper.SetDefault("MATRIX_WORKERS", 1)

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("RESULT_CACHE_SIZE", 128)
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
}

// PipelineConfig holds the tunables of a toll computation run.
type PipelineConfig struct {
	ThresholdBand float64
	MatrixWorkers int
}

func LoadPipelineConfig() PipelineConfig {
	return PipelineConfig{
		ThresholdBand: viper.GetFloat64("THRESHOLD_BAND"),
		MatrixWorkers: viper.GetInt("MATRIX_WORKERS"),
	}
}

func (c PipelineConfig) Validate() error {
	switch {
	case !IsFiniteNonNegative(c.ThresholdBand):
		return WrapErrorf(errors.New("invalid threshold band"), ErrBadParamInput,
			"THRESHOLD_BAND should be a non-negative number, got %v", c.ThresholdBand)
	case c.MatrixWorkers < 1:
		return WrapErrorf(errors.New("invalid worker count"), ErrBadParamInput,
			"MATRIX_WORKERS should be greater than 0, got %d", c.MatrixWorkers)
	}
	return nil
}

// APIConfig holds the settings of the http surface.
type APIConfig struct {
	Port            int
	Timeout         time.Duration
	ResultCacheSize int
	RateLimitRPS    float64
	RateLimitBurst  int
}

func LoadAPIConfig() APIConfig {
	return APIConfig{
		Port:            viper.GetInt("API_PORT"),
		Timeout:         viper.GetDuration("API_TIMEOUT"),
		ResultCacheSize: viper.GetInt("RESULT_CACHE_SIZE"),
		RateLimitRPS:    viper.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:  viper.GetInt("RATE_LIMIT_BURST"),
	}
}
