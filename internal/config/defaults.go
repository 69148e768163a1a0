package config

import "time"

const (
	defaultVideoDir            = "~/greenroom/videos"
	defaultPyVideoDir          = "~/greenroom/pyvideo"
	defaultStateDir            = "~/.local/share/greenroom"
	defaultLogDir              = "~/.local/share/greenroom/logs"
	defaultConferenceName      = "PyBay"
	defaultFetchWorkers        = 4
	defaultFetchMaxRetries     = 5
	defaultFetchTimeoutSeconds = 60
	defaultConfidence          = 95.0
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			VideoDir:   defaultVideoDir,
			PyVideoDir: defaultPyVideoDir,
			StateDir:   defaultStateDir,
			LogDir:     defaultLogDir,
		},
		Conference: Conference{
			Name: defaultConferenceName,
			Year: time.Now().Year(),
		},
		Fetch: Fetch{
			Workers:        defaultFetchWorkers,
			MaxRetries:     defaultFetchMaxRetries,
			TimeoutSeconds: defaultFetchTimeoutSeconds,
		},
		Attribution: Attribution{
			ConfidenceThreshold: defaultConfidence,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
