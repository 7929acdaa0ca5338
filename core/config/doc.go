// Package config provides configuration management for the sound sync
// service.
//
// It utilizes Viper for loading configuration from environment variables
// and a .env file, with defaults declared as struct tags on each
// sub-package's partial Config.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application
// settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Storage: remote content bucket credentials and settings
//   - Database: local state database (sqlite or mysql)
//   - Catalog: manifest object name and cache TTL
//   - Sync: bitrate, download directory, refresh interval
//   - Scheduler: retry backoff and connectivity probing
//   - Entitlement: offline-access gate mode
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
