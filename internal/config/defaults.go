package config

const (
	defaultStagingDir           = "~/.local/share/reelbender/staging"
	defaultOutputDir            = "~/reels"
	defaultLogDir               = "~/.local/share/reelbender/logs"
	defaultLogRetentionDays     = 30
	defaultLogFormat            = "auto"
	defaultLogLevel             = "info"
	defaultRenderWorkers        = 2
	maxRenderWorkers            = 8
	defaultJobTimeoutSeconds    = 600
	defaultAudioVolume          = 0.35
	defaultVideoPreset          = "medium"
	defaultVideoCRF             = 20
	defaultNotifyRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Render: Render{
			Workers:     defaultRenderWorkers,
			JobTimeout:  defaultJobTimeoutSeconds,
			AudioVolume: defaultAudioVolume,
			VideoPreset: defaultVideoPreset,
			VideoCRF:    defaultVideoCRF,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			RunStarted:     true,
			RunCompleted:   true,
			JobFailures:    true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
