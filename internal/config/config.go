// Package config loads the connection settings shared by every s3tool
// command from flags, environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "S3TOOL"

// Flag names. They double as viper keys.
const (
	FlagAccessKeyID     = "access-key-id"
	FlagSecretAccessKey = "secret-access-key"
	FlagRegion          = "region"
	FlagAddressingStyle = "addressing-style"
	FlagEndpoint        = "endpoint"
	FlagMaxRetries      = "max-retries"
	FlagTimeout         = "timeout"
	FlagLogLevel        = "log-level"
	FlagConfig          = "config"
)

// Config holds the settings needed to open a connection.
type Config struct {
	AccessKeyID     string        `mapstructure:"access-key-id"`
	SecretAccessKey string        `mapstructure:"secret-access-key"`
	Region          string        `mapstructure:"region"`
	AddressingStyle string        `mapstructure:"addressing-style"`
	Endpoint        string        `mapstructure:"endpoint"`
	MaxRetries      int           `mapstructure:"max-retries"`
	Timeout         time.Duration `mapstructure:"timeout"`
	LogLevel        string        `mapstructure:"log-level"`
}

// RegisterFlags adds the connection flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagAccessKeyID, "", "access key id")
	fs.String(FlagSecretAccessKey, "", "secret access key")
	fs.String(FlagRegion, "", "region; forces ordinary addressing when set")
	fs.String(FlagAddressingStyle, string(s3types.AddressingOrdinary), "addressing style (ordinary|virtual)")
	fs.String(FlagEndpoint, "", "endpoint of an S3-compatible store")
	fs.Int(FlagMaxRetries, 0, "maximum attempts per request (0 keeps the SDK default)")
	fs.Duration(FlagTimeout, 0, "HTTP client timeout (0 disables it)")
	fs.String(FlagLogLevel, "warn", "log level (debug|info|warn|error)")
	fs.String(FlagConfig, "", "config file (default ./s3tool.yaml when present)")
}

// Load reads configuration from fs, the environment and a config file.
//
// Flags set on the command line win over environment variables, which win
// over the config file. Environment variables use the prefix "S3TOOL" with
// "." and "-" replaced by "_": "access-key-id" is read from
// "S3TOOL_ACCESS_KEY_ID". Without --config, s3tool.yaml in the working
// directory is read when it exists.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString(FlagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("s3tool")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Credentials converts the connection settings.
func (c *Config) Credentials() (s3types.Credentials, error) {
	style, ok := s3types.ParseAddressingStyle(c.AddressingStyle)
	if !ok {
		return s3types.Credentials{}, fmt.Errorf("invalid addressing style %q: must be ordinary or virtual", c.AddressingStyle)
	}
	return s3types.Credentials{
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		Region:          c.Region,
		Addressing:      style,
		Endpoint:        c.Endpoint,
	}, nil
}

// Level parses LogLevel. An empty level is slog.LevelWarn.
func (c *Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
