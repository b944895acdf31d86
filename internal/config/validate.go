package config

import (
	"errors"
	"fmt"
)

var validVideoPresets = map[string]bool{
	"ultrafast": true,
	"superfast": true,
	"veryfast":  true,
	"faster":    true,
	"fast":      true,
	"medium":    true,
	"slow":      true,
	"slower":    true,
	"veryslow":  true,
}

// Validate checks structural constraints after normalization. It returns
// plain errors keyed by the offending TOML field so callers can print them
// without unwrapping.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return c.validateNotifications()
}

func (c *Config) validatePaths() error {
	if c.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.StagingDir == c.Paths.OutputDir {
		return errors.New("paths.staging_dir and paths.output_dir must differ")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.Workers > maxRenderWorkers {
		return fmt.Errorf("render.workers must be at most %d", maxRenderWorkers)
	}
	if c.Render.JobTimeout <= 0 {
		return errors.New("render.job_timeout must be positive")
	}
	if c.Render.AudioVolume <= 0 || c.Render.AudioVolume > 2 {
		return errors.New("render.audio_volume must be in (0, 2]")
	}
	if !validVideoPresets[c.Render.VideoPreset] {
		return fmt.Errorf("render.video_preset %q is not a recognized x264 preset", c.Render.VideoPreset)
	}
	if c.Render.VideoCRF < 0 || c.Render.VideoCRF > 51 {
		return errors.New("render.video_crf must be between 0 and 51")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}
