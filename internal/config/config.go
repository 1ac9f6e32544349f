package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCoinoneBaseURL = "https://api.coinone.co.kr/public/v2"
	DefaultBybitBaseURL   = "https://api.bybit.com/v5"
)

// Config is read from an optional YAML file named by MARKET_MCP_CONFIG; every
// field can be overridden by its environment variable.
type Config struct {
	MCPTransport          string `yaml:"mcp_transport"`
	MCPHTTPBind           string `yaml:"mcp_http_bind"`
	MCPHTTPPort           int    `yaml:"mcp_http_port"`
	MCPRequestTimeoutSecs int    `yaml:"mcp_request_timeout_secs"`
	MCPMaxBodyBytes       int64  `yaml:"mcp_max_body_bytes"`

	HTTPPort int `yaml:"http_port"`

	CoinoneBaseURL      string `yaml:"coinone_base_url"`
	BybitBaseURL        string `yaml:"bybit_base_url"`
	UpstreamTimeoutSecs int    `yaml:"upstream_timeout_secs"`

	RedisURL     string `yaml:"redis_url"`
	CacheTTLSecs int    `yaml:"cache_ttl_secs"`
}

func defaults() *Config {
	return &Config{
		MCPTransport:          "stdio",
		MCPHTTPBind:           "127.0.0.1",
		MCPHTTPPort:           8090,
		MCPRequestTimeoutSecs: 10,
		MCPMaxBodyBytes:       1 << 20,
		HTTPPort:              8080,
		CoinoneBaseURL:        DefaultCoinoneBaseURL,
		BybitBaseURL:          DefaultBybitBaseURL,
		UpstreamTimeoutSecs:   10,
		CacheTTLSecs:          30,
	}
}

func Load() *Config {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("MARKET_MCP_CONFIG")); path != "" {
		if err := loadFile(path, cfg); err != nil {
			log.Printf("Warning: ignoring config file %s: %v", path, err)
			cfg = defaults()
		}
		fillDefaults(cfg)
	}

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT"))); v != "" {
		cfg.MCPTransport = v
	}
	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(cfg.MCPTransport))
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Printf("Warning: unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	if v := strings.TrimSpace(os.Getenv("MCP_HTTP_BIND")); v != "" {
		cfg.MCPHTTPBind = v
	}
	positiveInt("MCP_HTTP_PORT", &cfg.MCPHTTPPort)
	positiveInt("MCP_REQUEST_TIMEOUT_SECS", &cfg.MCPRequestTimeoutSecs)
	if v := strings.TrimSpace(os.Getenv("MCP_MAX_BODY_BYTES")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MCPMaxBodyBytes = n
		}
	}

	positiveInt("HTTP_PORT", &cfg.HTTPPort)

	if v := strings.TrimSpace(os.Getenv("COINONE_BASE_URL")); v != "" {
		cfg.CoinoneBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("BYBIT_BASE_URL")); v != "" {
		cfg.BybitBaseURL = v
	}
	cfg.CoinoneBaseURL = strings.TrimRight(cfg.CoinoneBaseURL, "/")
	cfg.BybitBaseURL = strings.TrimRight(cfg.BybitBaseURL, "/")
	positiveInt("UPSTREAM_TIMEOUT_SECS", &cfg.UpstreamTimeoutSecs)

	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	if cfg.RedisURL == "" {
		log.Println("REDIS_URL not set, upstream cache disabled")
	}
	positiveInt("CACHE_TTL_SECS", &cfg.CacheTTLSecs)

	return cfg
}

// fillDefaults restores defaults for fields a config file left empty or set to
// a non-positive value.
func fillDefaults(cfg *Config) {
	def := defaults()
	if strings.TrimSpace(cfg.MCPTransport) == "" {
		cfg.MCPTransport = def.MCPTransport
	}
	if strings.TrimSpace(cfg.MCPHTTPBind) == "" {
		cfg.MCPHTTPBind = def.MCPHTTPBind
	}
	if strings.TrimSpace(cfg.CoinoneBaseURL) == "" {
		cfg.CoinoneBaseURL = def.CoinoneBaseURL
	}
	if strings.TrimSpace(cfg.BybitBaseURL) == "" {
		cfg.BybitBaseURL = def.BybitBaseURL
	}
	for _, f := range []struct {
		dst *int
		def int
	}{
		{&cfg.MCPHTTPPort, def.MCPHTTPPort},
		{&cfg.MCPRequestTimeoutSecs, def.MCPRequestTimeoutSecs},
		{&cfg.HTTPPort, def.HTTPPort},
		{&cfg.UpstreamTimeoutSecs, def.UpstreamTimeoutSecs},
		{&cfg.CacheTTLSecs, def.CacheTTLSecs},
	} {
		if *f.dst <= 0 {
			*f.dst = f.def
		}
	}
	if cfg.MCPMaxBodyBytes <= 0 {
		cfg.MCPMaxBodyBytes = def.MCPMaxBodyBytes
	}
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// positiveInt overrides *dst from the environment, ignoring values that are not
// positive integers.
func positiveInt(env string, dst *int) {
	v := strings.TrimSpace(os.Getenv(env))
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		*dst = n
	}
}
