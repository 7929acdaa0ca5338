package catalog

// Config holds configuration for the content catalog.
type Config struct {
	// ManifestObject is the object name of the catalog manifest in the
	// content bucket.
	ManifestObject string `mapstructure:"manifest_object" default:"catalog/manifest.json"`
	// CacheTTLSeconds is the time-to-live for the cached manifest index.
	// Zero disables caching and every lookup refetches.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}
