package sync

// Config holds configuration for the reconciliation engine.
type Config struct {
	// Bitrate is the quality tier reconciled, in kbit/s.
	Bitrate int `mapstructure:"bitrate" default:"128"`
	// DownloadDir is the local directory segments are downloaded into.
	DownloadDir string `mapstructure:"download_dir" default:"downloads"`
	// RefreshIntervalSeconds is the period of the background refresh
	// trigger. Zero disables periodic refresh.
	RefreshIntervalSeconds int `mapstructure:"refresh_interval_seconds" default:"3600"`
}

// JobRefresh is the scheduler job name for reconciliation passes.
const JobRefresh = "refresh"
