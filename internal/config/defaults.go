package config

const (
	defaultConfigPath            = "~/.config/keepaudio/config.toml"
	defaultTMDBBaseURL           = "https://api.themoviedb.org/3"
	defaultTMDBLanguage          = "en-US"
	defaultTMDBRequestsPerSecond = 4
	defaultTMDBTimeoutSeconds    = 10
	defaultFFmpegBinary          = "ffmpeg"
	defaultFFprobeBinary         = "ffprobe"
	defaultCachePath             = "~/.cache/keepaudio/lookups.db"
	defaultCacheTTLHours         = 24 * 7
	defaultLogDir                = "~/.local/share/keepaudio/logs"
	defaultLockDir               = "~/.local/share/keepaudio/run"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		TMDB: TMDB{
			BaseURL:           defaultTMDBBaseURL,
			Language:          defaultTMDBLanguage,
			RequestsPerSecond: defaultTMDBRequestsPerSecond,
			TimeoutSeconds:    defaultTMDBTimeoutSeconds,
		},
		FFmpeg: FFmpeg{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Cache: Cache{
			Enabled:  true,
			Path:     defaultCachePath,
			TTLHours: defaultCacheTTLHours,
		},
		Paths: Paths{
			LogDir:  defaultLogDir,
			LockDir: defaultLockDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
