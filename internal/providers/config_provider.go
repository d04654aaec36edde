package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"picktime/internal/structures"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("persistence.driver", "file")
	v.SetDefault("persistence.filePath", "./picktime.db")
	v.SetDefault("persistence.compress", true)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")
	v.SetDefault("shift.timezone", "Local")
	v.SetDefault("shift.monitorInterval", "60s")
	v.SetDefault("shift.displayInterval", "1s")
	v.SetDefault("shift.cutoverBucket", "cutover")
	v.SetDefault("report.order", "desc")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 60)
	v.SetDefault("metrics.enabled", true)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setDefaults(v)

	v.BindEnv("logger.level", "PICKTIME_LOG_LEVEL")
	v.BindEnv("logger.dir", "PICKTIME_LOG_DIR")
	v.BindEnv("persistence.driver", "PICKTIME_DB_DRIVER")
	v.BindEnv("persistence.filePath", "PICKTIME_DB_PATH")
	v.BindEnv("shift.timezone", "PICKTIME_TIMEZONE")
	v.BindEnv("shift.cutoverBucket", "PICKTIME_CUTOVER_BUCKET")
	v.BindEnv("cache.enabled", "PICKTIME_CACHE_ENABLED")
	v.BindEnv("webServer.port", "PICKTIME_PORT")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "PickTime"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
