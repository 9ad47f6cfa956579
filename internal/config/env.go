package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides mirrors the deployment environment variables that take
// precedence over the YAML file. Secrets should arrive this way.
type envOverrides struct {
	Port     int    `env:"PORT"`
	Env      string `env:"APP_ENV"`
	DSN      string `env:"DATABASE_DSN"`
	RedisURL string `env:"REDIS_URL"`
	APIKey   string `env:"API_KEY"`

	VisionProvider       string   `env:"VISION_PROVIDER"`
	VisionAPIKey         string   `env:"VISION_API_KEY"`
	VisionEndpoint       string   `env:"VISION_ENDPOINT"`
	VisionModel          string   `env:"VISION_MODEL"`
	VisionPass2Model     string   `env:"VISION_PASS2_MODEL"`
	VisionTimeoutSeconds int      `env:"VISION_TIMEOUT_SECONDS"`
	VisionMaxTokens      int      `env:"VISION_MAX_TOKENS"`
	AllowedImageHosts    []string `env:"ALLOWED_IMAGE_HOSTS" envSeparator:","`
	MaxImageSizeBytes    int64    `env:"MAX_IMAGE_SIZE_BYTES"`
	FetchTimeoutSeconds  int      `env:"FETCH_TIMEOUT_SECONDS"`

	Pass2CooldownSeconds int     `env:"PASS2_COOLDOWN_SECONDS"`
	NSFWCacheTTLSeconds  int     `env:"NSFW_CACHE_TTL_SECONDS"`
	StopWordThreshold    float64 `env:"STOP_WORD_THRESHOLD"`

	MediaEndpoint        string `env:"MEDIA_S3_ENDPOINT"`
	MediaRegion          string `env:"MEDIA_S3_REGION"`
	MediaBucket          string `env:"MEDIA_S3_BUCKET"`
	MediaAccessKeyID     string `env:"MEDIA_S3_ACCESS_KEY_ID"`
	MediaSecretAccessKey string `env:"MEDIA_S3_SECRET_ACCESS_KEY"`
	MediaPublicBaseURL   string `env:"MEDIA_PUBLIC_BASE_URL"`
}

func applyEnvOverrides(cfg *AppConfig) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	if o.Port != 0 {
		cfg.Port = o.Port
	}
	if o.Env != "" {
		cfg.Env = o.Env
	}
	if o.DSN != "" {
		cfg.DSN = o.DSN
	}
	if o.RedisURL != "" {
		cfg.RedisURL = o.RedisURL
	}
	if o.APIKey != "" {
		cfg.APIKey = o.APIKey
	}

	if o.VisionProvider != "" {
		cfg.Vision.Provider = o.VisionProvider
	}
	if o.VisionAPIKey != "" {
		cfg.Vision.APIKey = o.VisionAPIKey
	}
	if o.VisionEndpoint != "" {
		cfg.Vision.Endpoint = o.VisionEndpoint
	}
	if o.VisionModel != "" {
		cfg.Vision.Model = o.VisionModel
	}
	if o.VisionPass2Model != "" {
		cfg.Vision.Pass2Model = o.VisionPass2Model
	}
	if o.VisionTimeoutSeconds > 0 {
		cfg.Vision.TimeoutSeconds = o.VisionTimeoutSeconds
	}
	if o.VisionMaxTokens > 0 {
		cfg.Vision.MaxTokens = o.VisionMaxTokens
	}
	if len(o.AllowedImageHosts) > 0 {
		cfg.Fetcher.AllowedHosts = o.AllowedImageHosts
	}
	if o.MaxImageSizeBytes > 0 {
		cfg.Fetcher.MaxImageSizeBytes = o.MaxImageSizeBytes
	}
	if o.FetchTimeoutSeconds > 0 {
		cfg.Fetcher.TimeoutSeconds = o.FetchTimeoutSeconds
	}

	if o.Pass2CooldownSeconds > 0 {
		cfg.Pipeline.Pass2CooldownSeconds = o.Pass2CooldownSeconds
	}
	if o.NSFWCacheTTLSeconds > 0 {
		cfg.Pipeline.NSFWCacheTTLSeconds = o.NSFWCacheTTLSeconds
	}
	if o.StopWordThreshold > 0 {
		cfg.Pipeline.StopWordThreshold = o.StopWordThreshold
	}

	if o.MediaEndpoint != "" {
		cfg.Media.Endpoint = o.MediaEndpoint
	}
	if o.MediaRegion != "" {
		cfg.Media.Region = o.MediaRegion
	}
	if o.MediaBucket != "" {
		cfg.Media.Bucket = o.MediaBucket
	}
	if o.MediaAccessKeyID != "" {
		cfg.Media.AccessKeyID = o.MediaAccessKeyID
	}
	if o.MediaSecretAccessKey != "" {
		cfg.Media.SecretAccessKey = o.MediaSecretAccessKey
	}
	if o.MediaPublicBaseURL != "" {
		cfg.Media.PublicBaseURL = o.MediaPublicBaseURL
	}
	return nil
}
