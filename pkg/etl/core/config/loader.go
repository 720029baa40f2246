package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go.uber.org/fx"

	"github.com/tigerroll/fantasyload/pkg/etl/support/exception"
	"github.com/tigerroll/fantasyload/pkg/etl/support/logger"
)

const moduleName = "config"

// envPrefix is the root of every configuration environment variable, e.g.
// FANTASYLOAD_BATCH_BATCH_SIZE or FANTASYLOAD_DATABASE_DEFAULT_HOST.
const envPrefix = "FANTASYLOAD_"

// ConfigParams defines the dependencies for NewConfigProvider.
type ConfigParams struct {
	fx.In
	EmbeddedConfig EmbeddedConfig
	EnvFilePath    string `name:"envFilePath" optional:"true"`
}

// loadConfig layers configuration: defaults, then embedded YAML, then
// environment variables. It is intended to run once at startup.
func loadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			logger.Warnf(".env file (%s) not found or could not be loaded: %v", envFilePath, err)
		}
	} else {
		if err := godotenv.Load(); err != nil {
			logger.Debugf(".env file not found or could not be loaded: %v", err)
		}
	}

	cfg := NewConfig()

	// yaml.Unmarshal leaves fields absent from the document untouched, so
	// unmarshalling into the defaults applies only the keys the file sets.
	if err := yaml.Unmarshal(embeddedConfig, cfg); err != nil {
		return nil, exception.NewLoadError(moduleName, "failed to unmarshal embedded config", err, false, false)
	}

	if err := loadStructFromEnv(reflect.ValueOf(&cfg.Fantasyload).Elem(), envPrefix); err != nil {
		return nil, exception.NewLoadError(moduleName, "failed to load config from environment variables", err, false, false)
	}
	return cfg, nil
}

// LoadConfig loads configuration from the embedded file and environment
// variables. It is expected to be called only once during application
// startup.
func LoadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	return loadConfig(envFilePath, embeddedConfig)
}

// NewConfigProvider is the Fx provider for *Config. It also sets the global
// log level so every later provider logs at the configured verbosity.
func NewConfigProvider(params ConfigParams) (*Config, error) {
	cfg, err := loadConfig(params.EnvFilePath, params.EmbeddedConfig)
	if err != nil {
		return nil, err
	}

	logger.SetLogLevel(cfg.Fantasyload.System.Logging.Level)
	logger.Infof("Log level set to: %s", cfg.Fantasyload.System.Logging.Level)

	return cfg, nil
}

// loadStructFromEnv recursively overrides struct fields from environment
// variables named after the yaml tags, upper-cased and joined with '_'.
func loadStructFromEnv(val reflect.Value, prefix string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		yamlTag := fieldType.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		envVarName := strings.ToUpper(prefix + yamlTag)

		if field.Kind() == reflect.Struct {
			if err := loadStructFromEnv(field, envVarName+"_"); err != nil {
				return err
			}
			continue
		}

		if field.Kind() == reflect.Map && field.Type().Key().Kind() == reflect.String && field.Type().Elem().Kind() == reflect.Struct {
			if err := loadMapOfStructsFromEnv(field, envVarName+"_"); err != nil {
				return err
			}
			continue
		}

		envValue, exists := os.LookupEnv(envVarName)
		if !exists {
			continue
		}
		if err := setField(field, envValue); err != nil {
			return fmt.Errorf("failed to set field '%s' from env var '%s': %w", fieldType.Name, envVarName, err)
		}
	}
	return nil
}

// loadMapOfStructsFromEnv populates map[string]struct fields from environment
// variables. FANTASYLOAD_DATABASE_DEFAULT_HOST=db1 sets the Host field of the
// DatabaseConfig stored under the "default" key.
func loadMapOfStructsFromEnv(mapField reflect.Value, prefix string) error {
	if mapField.IsNil() {
		mapField.Set(reflect.MakeMap(mapField.Type()))
	}

	elemType := mapField.Type().Elem()

	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, prefix) {
			continue
		}

		parts := strings.SplitN(strings.TrimPrefix(env, prefix), "=", 2)
		if len(parts) != 2 {
			continue
		}
		keyAndField := strings.Split(parts[0], "_")
		if len(keyAndField) < 2 {
			continue
		}
		mapKey := strings.ToLower(keyAndField[0])
		fieldName := strings.Join(keyAndField[1:], "_")

		structVal := reflect.New(elemType).Elem()
		if existing := mapField.MapIndex(reflect.ValueOf(mapKey)); existing.IsValid() {
			structVal.Set(existing)
		}

		if err := setStructFieldFromEnv(structVal, fieldName, parts[1]); err != nil {
			return err
		}
		mapField.SetMapIndex(reflect.ValueOf(mapKey), structVal)
	}
	return nil
}

// setStructFieldFromEnv sets the struct field whose yaml tag matches
// fieldName, comparing case-insensitively. An unknown field is not an error.
func setStructFieldFromEnv(structVal reflect.Value, fieldName string, value string) error {
	typ := structVal.Type()
	for i := 0; i < typ.NumField(); i++ {
		yamlTag := typ.Field(i).Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		if strings.EqualFold(yamlTag, fieldName) {
			return setField(structVal.Field(i), value)
		}
	}
	return nil
}

// setField converts a string environment value onto a field by kind.
func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)
	case reflect.Float64, reflect.Float32:
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolValue)
	}
	return nil
}
