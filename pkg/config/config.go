package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/jhoicas/chestcraft/internal/domain/chest"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Log     LogConfig
	Chest   ChestConfig
	Metrics MetricsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, production
	Name string
}

// LogConfig nivel del logger (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// ChestConfig política de capacidad del cofre.
// Policy: "total" (suma de cantidades), "slots" (claves distintas) o "unbounded".
type ChestConfig struct {
	Policy string
	Limit  int
}

// Capacity construye la política de capacidad configurada.
func (c ChestConfig) Capacity() (chest.Capacity, error) {
	return chest.ParseCapacity(c.Policy, c.Limit)
}

// MetricsConfig configuración de los contadores Prometheus.
type MetricsConfig struct {
	Namespace string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, LOG_LEVEL, CHEST_CAPACITY_POLICY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v), nil
}

// Default configuración sin leer archivo ni entorno.
func Default() *Config {
	return fromViper(viper.New())
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "chestcraft"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Chest: ChestConfig{
			Policy: getString(v, "CHEST_CAPACITY_POLICY", "total"),
			Limit:  getInt(v, "CHEST_CAPACITY_LIMIT", 1000),
		},
		Metrics: MetricsConfig{
			Namespace: getString(v, "METRICS_NAMESPACE", "chestcraft"),
		},
	}
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
