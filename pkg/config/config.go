package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"perfscore/pkg/engine"
	"perfscore/pkg/report"
)

// EnvPrefix prefixes every environment override, e.g. PERFSCORE_SALES_PATH.
const EnvPrefix = "PERFSCORE"

// Config is the file/env configuration of the CLI and the bridge.
type Config struct {
	Sales             Source         `mapstructure:"sales"`
	Internet          Source         `mapstructure:"internet"`
	Applications      Source         `mapstructure:"applications"`
	Cities            []string       `mapstructure:"cities"`
	IncludeTerminated bool           `mapstructure:"include_terminated"`
	Tolerance         float64        `mapstructure:"tolerance"`
	Weights           engine.Weights `mapstructure:"weights"`
	Defaults          Defaults       `mapstructure:"defaults"`
	Log               Log            `mapstructure:"log"`
}

// Source points at one input file.
type Source struct {
	Path string `mapstructure:"path"`
}

// Defaults are the raw usage fallbacks for employees without rows.
type Defaults struct {
	InternetUsage float64 `mapstructure:"internet_usage"`
	AppUsage      float64 `mapstructure:"app_usage"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from path (any format viper knows; empty for
// none), a .env file in the working directory if present, and PERFSCORE_*
// environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "load .env")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, eris.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	w := engine.DefaultWeights()
	v.SetDefault("cities", engine.DefaultCityTokens)
	v.SetDefault("include_terminated", false)
	v.SetDefault("tolerance", engine.DefaultSalesTolerance)
	v.SetDefault("weights.sales", w.Sales)
	v.SetDefault("weights.mail", w.Mail)
	v.SetDefault("weights.chat_risk", w.ChatRisk)
	v.SetDefault("weights.internet_productivity", w.InternetProductivity)
	v.SetDefault("weights.relative_internet", w.RelativeInternet)
	v.SetDefault("weights.relative_app", w.RelativeApp)
	v.SetDefault("defaults.internet_usage", engine.DefaultInternetUsage)
	v.SetDefault("defaults.app_usage", engine.DefaultAppUsage)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// AutomaticEnv only sees keys viper already knows.
	v.SetDefault("sales.path", "")
	v.SetDefault("internet.path", "")
	v.SetDefault("applications.path", "")
}

// Validate rejects settings no session can run with.
func (c *Config) Validate() error {
	if len(c.Cities) == 0 {
		return eris.New("config: cities must list at least one city token")
	}
	if c.Tolerance < 0 {
		return eris.Errorf("config: tolerance must not be negative, got %v", c.Tolerance)
	}
	for _, u := range []float64{c.Defaults.InternetUsage, c.Defaults.AppUsage} {
		if u < 0 || u > 100 {
			return eris.Errorf("config: default usage must be within [0,100], got %v", u)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return eris.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// Options converts the configuration into session options.
func (c *Config) Options(logger *slog.Logger) report.Options {
	cities := make([]string, len(c.Cities))
	copy(cities, c.Cities)
	return report.Options{
		CityTokens:        cities,
		IncludeTerminated: c.IncludeTerminated,
		Tolerance:         c.Tolerance,
		Weights:           c.Weights,
		Usage: engine.UsageDefaults{
			Internet: c.Defaults.InternetUsage,
			App:      c.Defaults.AppUsage,
		},
		Logger: logger,
	}
}

// Logger builds the slog logger described by the Log section.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
