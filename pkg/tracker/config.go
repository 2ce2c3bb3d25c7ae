package tracker

import (
	"os"
	"strconv"
	"time"

	"github.com/nyem69/flotilla-freedom-2025/pkg/eta"
	"github.com/nyem69/flotilla-freedom-2025/pkg/history"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TargetLatitude  float64 `yaml:"target_latitude"`
	TargetLongitude float64 `yaml:"target_longitude"`

	Timezone string `yaml:"timezone"`

	HistoryCap         int     `yaml:"history_cap"`
	NotMovingThreshold float64 `yaml:"not_moving_threshold"`

	SnapshotPath string `yaml:"snapshot_path"`
	HistoryPath  string `yaml:"history_path"`
}

func DefaultConfig() Config {
	return Config{
		TargetLatitude:     31.5,
		TargetLongitude:    34.45,
		Timezone:           "Asia/Kuala_Lumpur",
		HistoryCap:         history.DefaultCap,
		NotMovingThreshold: eta.DefaultNotMovingThreshold,
		SnapshotPath:       "data/snapshot.json",
		HistoryPath:        "data/history.json",
	}
}

// GetConfig returns the tracker configuration from the optional YAML file
// pointed at by FLOTILLA_CONFIG, with FLOTILLA_* environment variables
// overriding individual values
func GetConfig() Config {
	config := DefaultConfig()

	if path := os.Getenv("FLOTILLA_CONFIG"); path != "" {
		configYaml, err := os.ReadFile(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to read config file")
		}

		if err := yaml.Unmarshal(configYaml, &config); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to decode config file")
		}
	}

	if val := os.Getenv("FLOTILLA_TARGET_LATITUDE"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			config.TargetLatitude = parsed
		}
	}

	if val := os.Getenv("FLOTILLA_TARGET_LONGITUDE"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			config.TargetLongitude = parsed
		}
	}

	if val := os.Getenv("FLOTILLA_TIMEZONE"); val != "" {
		config.Timezone = val
	}

	if val := os.Getenv("FLOTILLA_HISTORY_CAP"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.HistoryCap = parsed
		}
	}

	if val := os.Getenv("FLOTILLA_NOT_MOVING_THRESHOLD"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			config.NotMovingThreshold = parsed
		}
	}

	if val := os.Getenv("FLOTILLA_SNAPSHOT_PATH"); val != "" {
		config.SnapshotPath = val
	}

	if val := os.Getenv("FLOTILLA_HISTORY_PATH"); val != "" {
		config.HistoryPath = val
	}

	return config
}

// Location resolves the configured display timezone, falling back to a
// fixed UTC+8 zone when the zone database lookup fails
func (c Config) Location() *time.Location {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", c.Timezone).Msg("Unknown timezone, using fixed UTC+8")

		return time.FixedZone("UTC+8", 8*60*60)
	}

	return location
}
