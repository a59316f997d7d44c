// Package config loads the server configuration from a .env file, an
// optional config.yaml and the environment.
package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/256dpi/xo"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the server configuration.
type Config struct {
	Port        int    `mapstructure:"port"`
	Environment string `mapstructure:"environment"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Mongo struct {
		URI      string `mapstructure:"uri"`
		User     string `mapstructure:"user"`
		Pass     string `mapstructure:"pass"`
		Database string `mapstructure:"database"`
		Memory   bool   `mapstructure:"memory"`
	} `mapstructure:"mongo"`

	Token struct {
		Secret string `mapstructure:"secret"`
		Issuer string `mapstructure:"issuer"`
	} `mapstructure:"token"`

	Stripe struct {
		Secret   string        `mapstructure:"secret"`
		URL      string        `mapstructure:"url"`
		Currency string        `mapstructure:"currency"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"stripe"`

	Server struct {
		RequestTimeout time.Duration `mapstructure:"request_timeout"`
		BodyLimit      string        `mapstructure:"body_limit"`
		Rate           float64       `mapstructure:"rate"`
		Burst          int           `mapstructure:"burst"`
	} `mapstructure:"server"`

	CORS struct {
		Origins []string `mapstructure:"origins"`
	} `mapstructure:"cors"`

	Reconcile struct {
		Schedule string `mapstructure:"schedule"`
	} `mapstructure:"reconcile"`
}

var aliases = map[string]string{
	"port":          "PORT",
	"environment":   "NODE_ENV",
	"mongo.user":    "DB_USER",
	"mongo.pass":    "DB_PASS",
	"token.secret":  "ACCESS_TOKEN_SECRET",
	"stripe.secret": "STRIPE_SECRET_KEY",
}

// every key needs a default to be picked up from the environment
func defaults(v *viper.Viper) {
	v.SetDefault("port", 5000)
	v.SetDefault("environment", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.user", "")
	v.SetDefault("mongo.pass", "")
	v.SetDefault("mongo.database", "threadNexus")
	v.SetDefault("mongo.memory", false)
	v.SetDefault("token.secret", "")
	v.SetDefault("token.issuer", "thread-nexus")
	v.SetDefault("stripe.secret", "")
	v.SetDefault("stripe.url", "https://api.stripe.com")
	v.SetDefault("stripe.currency", "usd")
	v.SetDefault("stripe.timeout", "0s")
	v.SetDefault("server.request_timeout", "0s")
	v.SetDefault("server.body_limit", "4K")
	v.SetDefault("server.rate", 0)
	v.SetDefault("server.burst", 0)
	v.SetDefault("cors.origins", []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"https://thread-nexus.web.app",
	})
	v.SetDefault("reconcile.schedule", "@hourly")
}

// Load will read the configuration from the specified directory. A .env file
// is loaded into the environment first without overriding existing variables,
// then an optional config.yaml is read. Environment variables take precedence
// using the NEXUS_ prefix, the unprefixed legacy names are honored as well.
func Load(dir string) (*Config, error) {
	// load dotenv
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, xo.W(err)
	}

	// prepare viper
	v := viper.New()
	defaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("NEXUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// read config file
	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, xo.W(err)
		}
	}

	// bind legacy names
	for key, name := range aliases {
		err = v.BindEnv(key, "NEXUS_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), name)
		if err != nil {
			return nil, xo.W(err)
		}
	}

	// decode config
	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, xo.W(err)
	}

	return &config, nil
}

// Production returns whether the server runs in production.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// Validate will validate the configuration.
func (c *Config) Validate() error {
	// check port
	if c.Port <= 0 || c.Port > 65535 {
		return xo.F("invalid port %d", c.Port)
	}

	// check database
	if !c.Mongo.Memory && c.Mongo.URI == "" {
		return xo.F("missing mongo uri")
	}

	// check secret
	if c.Token.Secret != "" && len(c.Token.Secret) < 16 {
		return xo.F("token secret must be at least 16 bytes")
	}
	if c.Token.Secret == "" && c.Production() {
		return xo.F("missing token secret")
	}

	// check payments
	if c.Stripe.Secret == "" && c.Production() {
		return xo.F("missing stripe secret")
	}

	// check throttle
	if c.Server.Rate < 0 || c.Server.Burst < 0 {
		return xo.F("invalid throttle")
	}

	return nil
}

// MongoURI returns the connection URI with the configured credentials and
// database applied.
func (c *Config) MongoURI() (string, error) {
	// parse uri
	uri, err := url.Parse(c.Mongo.URI)
	if err != nil {
		return "", xo.W(err)
	}

	// set credentials
	if c.Mongo.User != "" {
		uri.User = url.UserPassword(c.Mongo.User, c.Mongo.Pass)
	}

	// set database
	if strings.Trim(uri.Path, "/") == "" {
		uri.Path = "/" + c.Mongo.Database
	}

	return uri.String(), nil
}
