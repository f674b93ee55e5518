package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/weiawesome/typedid/generator"
	"github.com/weiawesome/typedid/generator/pretty"
	pkgconfig "github.com/weiawesome/typedid/pkg/config"
	"github.com/weiawesome/typedid/pkg/database"
	"github.com/weiawesome/typedid/pkg/jwt"
	pkglog "github.com/weiawesome/typedid/pkg/log"
	"github.com/weiawesome/typedid/pkg/pubsub"
	"github.com/weiawesome/typedid/pkg/storage"
)

type Config struct {
	Snowflake SnowflakeConfig `mapstructure:"snowflake"`
	NanoID    NanoIDConfig    `mapstructure:"nanoid"`
	CUID2     CUID2Config     `mapstructure:"cuid2"`
	Pretty    PrettyConfig    `mapstructure:"pretty"`
	Log       pkglog.Config   `mapstructure:"log"`
	Audit     AuditConfig     `mapstructure:"audit"`
	Token     jwt.Config      `mapstructure:"token"`
}

type SnowflakeConfig struct {
	MachineID    int64         `mapstructure:"machine_id"`
	NodeID       int64         `mapstructure:"node_id"`
	Epoch        int64         `mapstructure:"epoch"`
	ClockPolicy  string        `mapstructure:"clock_policy"`
	MaxClockWait time.Duration `mapstructure:"max_clock_wait"`
}

type NanoIDConfig struct {
	Size     int    `mapstructure:"size"`
	Alphabet string `mapstructure:"alphabet"`
}

type CUID2Config struct {
	Length      int    `mapstructure:"length"`
	Fingerprint string `mapstructure:"fingerprint"`
}

type PrettyConfig struct {
	PartsSize int    `mapstructure:"parts_size"`
	Delimiter string `mapstructure:"delimiter"`
}

// AuditConfig selects where minted envelopes are recorded. Sinks lists any
// of "log", "redis", "database" and "archive".
type AuditConfig struct {
	Sinks    []string           `mapstructure:"sinks"`
	Redis    pubsub.RedisConfig `mapstructure:"redis"`
	Database database.Config    `mapstructure:"database"`
	Archive  ArchiveConfig      `mapstructure:"archive"`
}

type ArchiveConfig struct {
	Prefix  string         `mapstructure:"prefix"`
	Storage storage.Config `mapstructure:"storage"`
}

// Audit sink names.
const (
	SinkLog      = "log"
	SinkRedis    = "redis"
	SinkDatabase = "database"
	SinkArchive  = "archive"
)

// Load reads config.yaml from ./config (or the working directory) and the
// environment.
func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// LoadFile reads an explicit config file and the environment.
func LoadFile(path string) (*Config, error) {
	v, err := pkgconfig.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper applies defaults and environment bindings to v and decodes it.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	redis := pubsub.DefaultRedisConfig()

	v.SetDefault("snowflake.machine_id", 1)
	v.SetDefault("snowflake.node_id", 0)
	v.SetDefault("snowflake.epoch", generator.DefaultEpoch)
	v.SetDefault("snowflake.clock_policy", generator.ClockFail.String())
	v.SetDefault("snowflake.max_clock_wait", generator.DefaultMaxClockWait)
	v.SetDefault("nanoid.size", generator.DefaultNanoIDSize)
	v.SetDefault("nanoid.alphabet", generator.DefaultNanoIDAlphabet)
	v.SetDefault("cuid2.length", generator.DefaultCUID2Length)
	v.SetDefault("pretty.parts_size", pretty.DefaultPartsSize)
	v.SetDefault("pretty.delimiter", pretty.DefaultDelimiter)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.caller", false)
	v.SetDefault("log.service_name", "typedid")
	v.SetDefault("audit.sinks", []string{SinkLog})
	v.SetDefault("audit.redis.address", redis.Address)
	v.SetDefault("audit.redis.pool_size", redis.PoolSize)
	v.SetDefault("audit.redis.read_timeout", redis.ReadTimeout)
	v.SetDefault("audit.redis.write_timeout", redis.WriteTimeout)
	v.SetDefault("audit.redis.dial_timeout", redis.DialTimeout)
	v.SetDefault("audit.database.driver", "postgres")
	v.SetDefault("audit.database.host", "localhost")
	v.SetDefault("audit.database.port", 5432)
	v.SetDefault("audit.database.sslmode", "disable")
	v.SetDefault("audit.archive.prefix", "audit")
	v.SetDefault("audit.archive.storage.backend", "local")
	v.SetDefault("audit.archive.storage.local.base_path", "./data/archive")
	v.SetDefault("audit.archive.storage.s3.region", "us-east-1")
	v.SetDefault("token.issuer", "typedid")
	v.SetDefault("token.ttl", time.Duration(0))
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("snowflake.machine_id", "SNOWFLAKE_MACHINE_ID")
	v.BindEnv("snowflake.node_id", "SNOWFLAKE_NODE_ID")
	v.BindEnv("snowflake.clock_policy", "SNOWFLAKE_CLOCK_POLICY")
	v.BindEnv("nanoid.size", "NANOID_SIZE")
	v.BindEnv("nanoid.alphabet", "NANOID_ALPHABET")
	v.BindEnv("cuid2.length", "CUID2_LENGTH")
	v.BindEnv("cuid2.fingerprint", "CUID2_FINGERPRINT")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("audit.redis.address", "REDIS_ADDRESS")
	v.BindEnv("audit.redis.password", "REDIS_PASSWORD")
	v.BindEnv("audit.database.password", "DATABASE_PASSWORD")
	v.BindEnv("audit.archive.storage.s3.access_key_id", "S3_ACCESS_KEY_ID")
	v.BindEnv("audit.archive.storage.s3.secret_access_key", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("token.private_key_file", "TOKEN_PRIVATE_KEY_FILE")
}

// Validate checks values the generators would otherwise reject later.
func (c *Config) Validate() error {
	if _, err := generator.NewMachineNode(c.Snowflake.MachineID, c.Snowflake.NodeID); err != nil {
		return fmt.Errorf("invalid snowflake config: %w", err)
	}
	if _, err := generator.ParseClockPolicy(c.Snowflake.ClockPolicy); err != nil {
		return fmt.Errorf("invalid snowflake config: %w", err)
	}
	for _, s := range c.Audit.Sinks {
		switch s {
		case SinkLog, SinkRedis, SinkDatabase, SinkArchive:
		default:
			return fmt.Errorf("unknown audit sink %q", s)
		}
	}
	switch c.Audit.Archive.Storage.Backend {
	case "", "local", "s3":
	default:
		return fmt.Errorf("unknown archive storage backend %q", c.Audit.Archive.Storage.Backend)
	}
	if c.Token.TTL < 0 {
		return fmt.Errorf("token ttl must not be negative, got %s", c.Token.TTL)
	}
	return nil
}
