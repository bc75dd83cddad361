package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"comics-etl/core/database"
	"comics-etl/core/logger"
	"comics-etl/core/marvel"
	"comics-etl/core/server"
	"comics-etl/core/storage"
	"comics-etl/feature/pipeline"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Marvel holds the API endpoint and credentials.
	Marvel marvel.Config `mapstructure:"marvel"`
	// Pipeline holds the batch run settings.
	Pipeline pipeline.Config `mapstructure:"pipeline"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for the object storage archive.
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the warehouse database.
	Database database.Config `mapstructure:"database"`
	// Server holds configuration for the report HTTP server.
	Server server.Config `mapstructure:"server"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
// Values in the .env file win over the process environment.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	registerDefaults(v, reflect.TypeOf(Config{}), "")

	// MARVEL_PUBLIC_KEY -> marvel.public_key
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &config, nil
}

// registerDefaults walks t and registers every `mapstructure` key with the value of
// its `default` tag. Keys are registered even with an empty default, otherwise
// AutomaticEnv never sees them during Unmarshal.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for _, field := range reflect.VisibleFields(t) {
		name, ok := field.Tag.Lookup("mapstructure")
		if !ok || name == "" || !field.IsExported() {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			registerDefaults(v, field.Type, name)
			continue
		}
		v.SetDefault(name, field.Tag.Get("default"))
	}
}
