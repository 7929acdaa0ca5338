package entitlement

// Config holds configuration for the offline-access gate.
type Config struct {
	// Mode selects the gate implementation (static, remote).
	Mode string `mapstructure:"mode" default:"static"`
	// Entitled is the fixed answer in static mode.
	Entitled bool `mapstructure:"entitled" default:"true"`
	// URL is the entitlement endpoint queried in remote mode.
	URL string `mapstructure:"url" default:""`
	// TimeoutSeconds bounds the remote check.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
