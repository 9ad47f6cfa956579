package config

import (
	"bytes"
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2333
	defaultEnv        = "development"

	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "promptfinder"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"

	defaultRedisHost = "localhost"
	defaultRedisPort = 6379
	defaultRedisDB   = 0
)

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment overrides for secrets and pipeline knobs (see env.go).
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	DSN            string                `yaml:"dsn"` // MySQL DSN, synthesized from Database when empty
	RedisURL       string                `yaml:"redis_url"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Vision         VisionConfig          `yaml:"vision"`
	Fetcher        FetcherConfig         `yaml:"fetcher"`
	Pipeline       PipelineConfig        `yaml:"pipeline"`
	Media          MediaStorageConfig    `yaml:"media"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	APIKey         string                `yaml:"api_key"` // protects operator endpoints
}

type DatabaseRuntimeConfig struct {
	DSN       string            `yaml:"dsn"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// VisionConfig selects and authenticates the vision-capable LLM provider.
type VisionConfig struct {
	Provider       string `yaml:"provider"` // "openai" | "anthropic"
	APIKey         string `yaml:"api_key"`
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	Pass2Model     string `yaml:"pass2_model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxTokens      int    `yaml:"max_tokens"`
}

// FetcherConfig governs media downloads for vision analysis.
type FetcherConfig struct {
	AllowedHosts      []string `yaml:"allowed_hosts"` // suffix match
	MaxImageSizeBytes int64    `yaml:"max_image_size_bytes"`
	TimeoutSeconds    int      `yaml:"timeout_seconds"`
}

// PipelineConfig holds enrichment and scoring knobs.
type PipelineConfig struct {
	Pass2CooldownSeconds int     `yaml:"pass2_cooldown_seconds"`
	NSFWCacheTTLSeconds  int     `yaml:"nsfw_cache_ttl_seconds"`
	StopWordThreshold    float64 `yaml:"stop_word_threshold"`
	RelatedLimit         int     `yaml:"related_limit"`
	RelatedCandidateCap  int     `yaml:"related_candidate_cap"`
	SweepIntervalMinutes int     `yaml:"sweep_interval_minutes"`
}

// MediaStorageConfig points at the S3-compatible object store (B2) that holds
// uploaded media. Used only by the SEO file-rename task; optional.
type MediaStorageConfig struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PublicBaseURL   string `yaml:"public_base_url"`
}

// Load reads the YAML config, applies defaults, then environment overrides.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case os.IsNotExist(err) && configPath == "":
		// No config file is fine when everything comes from the environment.
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}
	normalize(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.Pipeline.StopWordThreshold <= 0 || cfg.Pipeline.StopWordThreshold >= 1 {
		return nil, fmt.Errorf("invalid stop_word_threshold %v, expected (0,1)", cfg.Pipeline.StopWordThreshold)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		Vision: VisionConfig{
			Provider:       "openai",
			Model:          "gpt-4o",
			Pass2Model:     "gpt-4o",
			TimeoutSeconds: 60,
			MaxTokens:      1500,
		},
		Fetcher: FetcherConfig{
			MaxImageSizeBytes: 5 * 1024 * 1024,
			TimeoutSeconds:    30,
		},
		Pipeline: PipelineConfig{
			Pass2CooldownSeconds: 300,
			NSFWCacheTTLSeconds:  3600,
			StopWordThreshold:    0.25,
			RelatedLimit:         60,
			RelatedCandidateCap:  500,
			SweepIntervalMinutes: 60,
		},
	}
}

func normalize(cfg *AppConfig) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DSN == "" {
		cfg.DSN = cfg.Database.DSNValue()
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = cfg.Redis.URLValue()
	}

	hosts := make([]string, 0, len(cfg.Fetcher.AllowedHosts))
	for _, h := range cfg.Fetcher.AllowedHosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	cfg.Fetcher.AllowedHosts = hosts

	cfg.Vision.Provider = strings.ToLower(strings.TrimSpace(cfg.Vision.Provider))
	if cfg.Vision.Pass2Model == "" {
		cfg.Vision.Pass2Model = cfg.Vision.Model
	}
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// DSNValue synthesizes a MySQL DSN from discrete fields unless an explicit
// DSN was configured.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := strings.TrimSpace(c.User)
	if user == "" {
		user = defaultDBUser
	}
	password := c.Password
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultDBName
	}
	charset := strings.TrimSpace(c.Charset)
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := strings.TrimSpace(c.Loc)
	if loc == "" {
		loc = defaultDBLoc
	}

	params := neturl.Values{}
	for key, value := range c.Params {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			params.Set(k, v)
		}
	}
	if params.Get("charset") == "" {
		params.Set("charset", charset)
	}
	if params.Get("parseTime") == "" {
		params.Set("parseTime", strconv.FormatBool(c.ParseTime))
	}
	if params.Get("loc") == "" {
		params.Set("loc", loc)
	}

	auth := user
	if password != "" {
		auth += ":" + password
	}
	return fmt.Sprintf("%s@tcp(%s)/%s?%s", auth, net.JoinHostPort(host, strconv.Itoa(port)), name, params.Encode())
}

// URLValue synthesizes a redis:// URL from discrete fields unless an explicit
// URL was configured.
func (c RedisRuntimeConfig) URLValue() string {
	if u := strings.TrimSpace(c.URL); u != "" {
		if strings.HasPrefix(u, "redis://") || strings.HasPrefix(u, "rediss://") {
			return u
		}
		return "redis://" + u
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultRedisHost
	}
	port := c.Port
	if port == 0 {
		port = defaultRedisPort
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}
	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	username := strings.TrimSpace(c.Username)
	password := strings.TrimSpace(c.Password)
	if username != "" {
		if password != "" {
			u.User = neturl.UserPassword(username, password)
		} else {
			u.User = neturl.User(username)
		}
	} else if password != "" {
		u.User = neturl.UserPassword("", password)
	}
	return u.String()
}
