package app

import (
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"

	"github.com/promptfinder/core/internal/config"
)

// corsConfig builds the CORS policy from the configured origin patterns.
// With no patterns configured every origin is allowed, which keeps local
// development and curl usage friction-free.
func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-API-Key"}
	c.MaxAge = 12 * time.Hour

	patterns := cfg.AllowedOrigins
	if len(patterns) == 0 {
		c.AllowAllOrigins = true
		return c
	}

	c.AllowCredentials = true
	c.AllowOriginFunc = func(origin string) bool {
		host := extractOriginHost(origin)
		for _, p := range patterns {
			if matchOriginPattern(p, host) {
				return true
			}
		}
		return false
	}
	return c
}

// extractOriginHost returns the "host[:port]" portion of an origin URL.
func extractOriginHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// matchOriginPattern reports whether host matches the given wildcard pattern.
func matchOriginPattern(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		suffix := pattern[1:]
		return strings.HasSuffix(host, suffix)
	}
	if strings.HasSuffix(pattern, ":*") {
		prefix := pattern[:len(pattern)-1]
		return strings.HasPrefix(host, prefix)
	}
	return false
}
