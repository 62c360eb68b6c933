package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateCourse(); err != nil {
		return err
	}
	if err := c.validateLoader(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAPI() error {
	switch c.API.Backend {
	case "mivideo":
		if c.API.AuthID == "" || c.API.AuthSecret == "" {
			defaultPath, err := DefaultConfigPath()
			if err != nil {
				defaultPath = "~/.config/mivideo/config.toml"
			}
			return fmt.Errorf("api.auth_id and api.auth_secret are required. Set MIVIDEO_AUTH_ID and MIVIDEO_AUTH_SECRET env vars or edit %s (create with 'mivideo config init')", defaultPath)
		}
	case "kaltura":
		if c.Kaltura.SessionToken == "" {
			return errors.New("kaltura.session_token is required when api.backend is \"kaltura\". Set MIVIDEO_SESSION_TOKEN or edit the config file")
		}
	default:
		return fmt.Errorf("api.backend must be \"mivideo\" or \"kaltura\", got %q", c.API.Backend)
	}
	if c.API.TimeoutSeconds <= 0 {
		return errors.New("api.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateCourse() error {
	if c.Course.ID == "" {
		return errors.New("course.id must be set")
	}
	if c.Course.UserID == "" {
		return errors.New("course.user_id must be set")
	}
	return nil
}

func (c *Config) validateLoader() error {
	if c.Loader.URLTemplate == "" {
		return errors.New("loader.url_template must be set and contain {mediaId} and {startSeconds}")
	}
	if c.Loader.ChunkSeconds <= 0 {
		return errors.New("loader.chunk_seconds must be positive")
	}
	return nil
}
