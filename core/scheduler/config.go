package scheduler

// Config holds configuration for the job scheduler.
type Config struct {
	// RetryBaseSeconds is the initial backoff delay after a retryable run.
	RetryBaseSeconds int `mapstructure:"retry_base_seconds" default:"10"`
	// RetryMaxSeconds caps the exponential backoff delay.
	RetryMaxSeconds int `mapstructure:"retry_max_seconds" default:"600"`
	// RetryMaxAttempts bounds retries per submission. Zero means unbounded.
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" default:"0"`
	// ProbeAddr is the TCP address dialed to check network connectivity
	// before a job starts. Empty disables the check.
	ProbeAddr string `mapstructure:"probe_addr" default:""`
	// ProbeTimeoutSeconds is the dial timeout for the connectivity probe.
	ProbeTimeoutSeconds int `mapstructure:"probe_timeout_seconds" default:"5"`
	// ProbeIntervalSeconds is how often connectivity is re-checked while
	// waiting to come online.
	ProbeIntervalSeconds int `mapstructure:"probe_interval_seconds" default:"15"`
}
