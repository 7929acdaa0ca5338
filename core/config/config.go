package config

import (
	"reflect"
	"strings"

	"sound-sync/core/database"
	"sound-sync/core/logger"
	"sound-sync/core/scheduler"
	"sound-sync/core/server"
	"sound-sync/core/storage"
	libsync "sound-sync/core/sync"
	"sound-sync/feature/catalog"
	"sound-sync/feature/entitlement"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the remote content bucket.
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the local state database.
	Database database.Config `mapstructure:"database"`
	// Catalog holds configuration for the remote content catalog.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Sync holds configuration for the reconciliation engine.
	Sync libsync.Config `mapstructure:"sync"`
	// Scheduler holds configuration for background job scheduling.
	Scheduler scheduler.Config `mapstructure:"scheduler"`
	// Entitlement holds configuration for the offline-access gate.
	Entitlement entitlement.Config `mapstructure:"entitlement"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists; ignore the error in production where
	// only real environment variables are set.
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
