package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Service *svcConfig
	Proxy   *proxyConfig
}

type svcConfig struct {
	Address      string `envconfig:"RVTOOLS_ASSESSOR_ADDRESS" default:":3443"`
	BaseUrl      string `envconfig:"RVTOOLS_ASSESSOR_BASE_URL" default:"http://localhost:3443"`
	LogLevel     string `envconfig:"RVTOOLS_ASSESSOR_LOG_LEVEL" default:"info"`
	MaxUploadMiB int64  `envconfig:"RVTOOLS_ASSESSOR_MAX_UPLOAD_MIB" default:"100"`
	WaveMode     string `envconfig:"RVTOOLS_ASSESSOR_WAVE_MODE" default:"complexity"`
}

type proxyConfig struct {
	BaseUrl      string        `envconfig:"RVTOOLS_ASSESSOR_PROXY_URL" default:""`
	Timeout      time.Duration `envconfig:"RVTOOLS_ASSESSOR_PROXY_TIMEOUT" default:"30s"`
	MaxRetries   int           `envconfig:"RVTOOLS_ASSESSOR_PROXY_MAX_RETRIES" default:"3"`
	CacheTTL     time.Duration `envconfig:"RVTOOLS_ASSESSOR_PROXY_CACHE_TTL" default:"15m"`
	CacheJanitor time.Duration `envconfig:"RVTOOLS_ASSESSOR_PROXY_CACHE_JANITOR" default:"5m"`
}

func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
