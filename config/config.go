package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/imkonsowa/makansini/logger"
	"github.com/imkonsowa/makansini/ranking"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultPath = "./config/config.yaml"

type Server struct {
	Port           int      `mapstructure:"port"`
	Host           string   `mapstructure:"host"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type Catalog struct {
	Path  string `mapstructure:"path"`
	Cache bool   `mapstructure:"cache"`
}

type Recommend struct {
	MaxCount      int             `mapstructure:"maxCount"`
	Threshold     float64         `mapstructure:"threshold"`
	OnlyOpenToday bool            `mapstructure:"onlyOpenToday"`
	Timezone      string          `mapstructure:"timezone"`
	Weights       ranking.Weights `mapstructure:"weights"`
}

func (r *Recommend) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", r.Timezone, err)
	}

	return loc, nil
}

type Config struct {
	Server    Server        `mapstructure:"server"`
	Catalog   Catalog       `mapstructure:"catalog"`
	Recommend Recommend     `mapstructure:"recommend"`
	Log       logger.Config `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowedOrigins", []string{"*"})

	v.SetDefault("catalog.path", "data/catalog.csv")
	v.SetDefault("catalog.cache", true)

	v.SetDefault("recommend.maxCount", ranking.DefaultMaxCount)
	v.SetDefault("recommend.threshold", ranking.DefaultThreshold)
	v.SetDefault("recommend.onlyOpenToday", true)
	v.SetDefault("recommend.timezone", "Asia/Kuala_Lumpur")

	w := ranking.DefaultWeights()
	for key, value := range map[string]float64{
		"cuisine":        w.Cuisine,
		"budgetWithin":   w.BudgetWithin,
		"budgetPartial":  w.BudgetPartial,
		"budgetOver":     w.BudgetOver,
		"tierVeryCheap":  w.TierVeryCheap,
		"tierCheap":      w.TierCheap,
		"meal":           w.Meal,
		"travel":         w.Travel,
		"halalMatch":     w.HalalMatch,
		"halalMismatch":  w.HalalMismatch,
		"campusMatch":    w.CampusMatch,
		"campusMismatch": w.CampusMismatch,
		"areaMatch":      w.AreaMatch,
		"ratingFactor":   w.RatingFactor,
	} {
		v.SetDefault("recommend.weights."+key, value)
	}

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads the yaml file at path on top of the defaults. An empty path
// skips the file. A .env file in the working directory is loaded into the
// environment first when present, and environment variables such as
// CATALOG_PATH override the file. Flags, when given, override everything.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &config, nil
}

func LoadConfig() *Config {
	config, err := Load(DefaultPath, nil)
	if err != nil {
		log.Fatal(err)
	}

	return config
}
