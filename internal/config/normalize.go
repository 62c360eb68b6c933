package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() {
	c.normalizeAPI()
	c.normalizeKaltura()
	c.normalizeCourse()
	c.normalizeLoader()
	c.normalizeLogging()
}

func (c *Config) normalizeAPI() {
	c.API.Host = strings.TrimSpace(c.API.Host)
	if c.API.Host == "" {
		c.API.Host = defaultAPIHost
	}
	c.API.AuthID = strings.TrimSpace(c.API.AuthID)
	if c.API.AuthID == "" {
		if value, ok := os.LookupEnv("MIVIDEO_AUTH_ID"); ok {
			c.API.AuthID = strings.TrimSpace(value)
		}
	}
	c.API.AuthSecret = strings.TrimSpace(c.API.AuthSecret)
	if c.API.AuthSecret == "" {
		if value, ok := os.LookupEnv("MIVIDEO_AUTH_SECRET"); ok {
			c.API.AuthSecret = strings.TrimSpace(value)
		}
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.API.Version = strings.TrimSpace(c.API.Version)
	if c.API.Version == "" {
		c.API.Version = defaultAPIVersion
	}
	c.API.Backend = strings.ToLower(strings.TrimSpace(c.API.Backend))
	if c.API.Backend == "" {
		c.API.Backend = defaultBackend
	}
}

func (c *Config) normalizeKaltura() {
	c.Kaltura.Host = strings.TrimSpace(c.Kaltura.Host)
	if c.Kaltura.Host == "" {
		c.Kaltura.Host = defaultKalturaHost
	}
	c.Kaltura.SessionToken = strings.TrimSpace(c.Kaltura.SessionToken)
	if c.Kaltura.SessionToken == "" {
		if value, ok := os.LookupEnv("MIVIDEO_SESSION_TOKEN"); ok {
			c.Kaltura.SessionToken = strings.TrimSpace(value)
		}
	}
	c.Kaltura.CategoryPrefix = strings.TrimSpace(c.Kaltura.CategoryPrefix)
	if c.Kaltura.CategoryPrefix == "" {
		c.Kaltura.CategoryPrefix = defaultCategoryPrefix
	}
}

func (c *Config) normalizeCourse() {
	c.Course.ID = strings.TrimSpace(c.Course.ID)
	c.Course.UserID = strings.TrimSpace(c.Course.UserID)
}

func (c *Config) normalizeLoader() {
	c.Loader.URLTemplate = strings.TrimSpace(c.Loader.URLTemplate)
	if c.Loader.ChunkSeconds <= 0 {
		c.Loader.ChunkSeconds = defaultChunkSeconds
	}
	langs := make([]string, 0, len(c.Loader.Languages))
	seen := make(map[string]struct{}, len(c.Loader.Languages))
	for _, lang := range c.Loader.Languages {
		normalized := strings.ToLower(strings.TrimSpace(lang))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		langs = append(langs, normalized)
	}
	c.Loader.Languages = langs
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
