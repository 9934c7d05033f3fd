package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts yaml strings like "30s" or "5m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	Cache struct {
		ListTTL     Duration `yaml:"listTTL"`
		DocumentTTL Duration `yaml:"documentTTL"`
	} `yaml:"cache"`

	Session struct {
		IdleTTL     Duration `yaml:"idleTTL"`
		MaxSessions int      `yaml:"maxSessions"`
	} `yaml:"session"`

	Viewer struct {
		MaxTreeDepth int `yaml:"maxTreeDepth"`
	} `yaml:"viewer"`

	Audit struct {
		Driver string `yaml:"driver"` // none | mysql | postgres
	} `yaml:"audit"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`

	AI struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"ai"`

	HTTP struct {
		CORSOrigins  []string          `yaml:"corsOrigins"`
		APIKeys      map[string]string `yaml:"apiKeys"`
		RateCapacity int               `yaml:"rateCapacity"`
		RateRefill   int               `yaml:"rateRefillPerSec"`
	} `yaml:"http"`
}

// Load reads a yaml config file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Cache.ListTTL == 0 {
		c.Cache.ListTTL = Duration(30 * time.Second)
	}
	if c.Cache.DocumentTTL == 0 {
		c.Cache.DocumentTTL = Duration(5 * time.Minute)
	}
	if c.Session.IdleTTL == 0 {
		c.Session.IdleTTL = Duration(30 * time.Minute)
	}
	if c.Session.MaxSessions == 0 {
		c.Session.MaxSessions = 1000
	}
	if c.Viewer.MaxTreeDepth == 0 {
		c.Viewer.MaxTreeDepth = 512
	}
	if c.Audit.Driver == "" {
		c.Audit.Driver = "none"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.HTTP.RateRefill == 0 {
		c.HTTP.RateRefill = 10
	}
}

func (c *Config) validate() error {
	switch c.Audit.Driver {
	case "none", "mysql", "postgres":
	default:
		return fmt.Errorf("unknown audit driver %q (want none, mysql or postgres)", c.Audit.Driver)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// Helper to build the MySQL DSN
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// Helper to build the Postgres DSN
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
