package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// HTTPTimeoutSeconds is the fixed timeout for courier fetches.
	HTTPTimeoutSeconds int `mapstructure:"HTTP_TIMEOUT" default:"15"`

	// Couriers holds the courier endpoint configuration.
	Couriers CourierConfig `mapstructure:",squash"`

	// Watchlist holds the watchlist persistence configuration.
	Watchlist WatchlistConfig `mapstructure:",squash"`

	// Cache holds the record cache configuration.
	Cache CacheConfig `mapstructure:",squash"`
}

// CourierConfig holds the base URLs of the courier tracking endpoints.
// These are unstable, undocumented third-party surfaces; overriding them
// is mainly useful for pointing tests and staging at mock servers.
type CourierConfig struct {
	// BlueDartURL is the Blue Dart tracking page endpoint (HTML).
	BlueDartURL string `mapstructure:"COURIER_BLUEDART_URL" default:"https://www.bluedart.com/trackdartresultthirdparty" required:"true"`
	// DTDCURL is the DTDC tracking API endpoint (JSON, POST).
	DTDCURL string `mapstructure:"COURIER_DTDC_URL" default:"https://www.dtdc.com/wp-json/custom/v1/domestic/track" required:"true"`
	// DelhiveryURL is the Delhivery unified-tracking endpoint (JSON, GET).
	DelhiveryURL string `mapstructure:"COURIER_DELHIVERY_URL" default:"https://dlv-api.delhivery.com/v3/unified-tracking" required:"true"`
}

// WatchlistConfig holds the on-disk watchlist settings.
type WatchlistConfig struct {
	// Path is the JSON file holding the tracked shipments.
	Path string `mapstructure:"WATCHLIST_PATH" default:"tracking_list_v2.json" required:"true"`
}

// CacheConfig holds the optional Redis record cache settings.
type CacheConfig struct {
	// RedisURL enables the record cache when non-empty.
	// Format: redis://[:password@]host[:port][/database]
	RedisURL string `mapstructure:"REDIS_URL"`
	// TTLSeconds is how long a fetched record stays cached.
	TTLSeconds int `mapstructure:"CACHE_TTL" default:"300"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
