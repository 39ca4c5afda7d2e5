package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs  `toml:"database"`
	ApiServer APIServerConfigs `toml:"api_server"`
	Auth      AuthConfigs      `toml:"auth"`
	Session   SessionConfigs   `toml:"session"`
	Voting    VotingConfigs    `toml:"voting"`
	Results   ResultConfigs    `toml:"results"`
	Redis     RedisConfigs     `toml:"redis"`
	Logger    LoggerConfigs    `toml:"logger"`
}

type DatabaseConfigs struct {
	// Driver is one of postgres, mysql or sqlite.
	Driver   string `toml:"driver"`
	DSN      string `toml:"dsn"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`

	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

// ConnectionString returns the DSN if it was given explicitly, otherwise builds one for the driver
// from the individual fields.
func (d *DatabaseConfigs) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}

	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=require TimeZone=UTC",
			d.Host,
			d.Port,
			d.User,
			d.Password,
			d.Database,
		)
	}
}

type APIServerConfigs struct {
	Host           string        `toml:"host"`
	Port           string        `toml:"port"`
	AllowedOrigins []string      `toml:"allowed_origins"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	DefaultLimit   int           `toml:"default_limit"`
	MaxLimit       int           `toml:"max_limit"`

	// MaxBodySize caps POST bodies in bytes. Zero disables the limit.
	MaxBodySize int64 `toml:"max_body_size"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type AuthConfigs struct {
	TokenSecret string         `toml:"token_secret"`
	AccessToken TokenConfigs   `toml:"access_token"`
	LandingURL  string         `toml:"landing_url"`
	OAuth2      []OAuth2Config `toml:"oauth2"`
}

type OAuth2Config struct {
	Name         string   `toml:"name"`
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	RedirectURL  string   `toml:"redirect_url"`
	Scopes       []string `toml:"scopes"`

	// Issuer enables OIDC discovery and id-token verification. Providers without OIDC need AuthURL,
	// TokenURL and VerifyURL (userinfo endpoint) instead.
	Issuer    string `toml:"issuer"`
	AuthURL   string `toml:"auth_url"`
	TokenURL  string `toml:"token_url"`
	VerifyURL string `toml:"verify_url"`

	IDField     string `toml:"id_field"`
	NameField   string `toml:"name_field"`
	EmailField  string `toml:"email_field"`
	AvatarField string `toml:"avatar_field"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

// VotingConfigs holds the wall-clock components of the voting window. They are interpreted in the
// fixed TimezoneOffset and converted once into absolute instants at startup.
type VotingConfigs struct {
	TimezoneOffset  string `toml:"timezone_offset"`
	Deadline        string `toml:"deadline"`
	LiveVotingStart string `toml:"live_voting_start"`
	LockEnabled     bool   `toml:"lock_enabled"`
}

type ResultConfigs struct {
	CountOpenBallots bool          `toml:"count_open_ballots"`
	CacheTTL         time.Duration `toml:"cache_ttl"`
	SnapshotInterval time.Duration `toml:"snapshot_interval"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type LoggerConfigs struct {
	Level  string `toml:"level"`
	IsJSON bool   `toml:"is_json"`
}

// Placeholder secrets of Default. CheckSecrets rejects them.
const (
	defaultTokenSecret   = "secret"
	defaultSessionSecret = "session-secret"
)

// Default returns a configuration usable for local development.
func Default() Configs {
	return Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Driver:          "sqlite",
			Database:        "awards.db",
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
		},
		ApiServer: APIServerConfigs{
			Host:           "localhost",
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:3000"},
			RequestTimeout: 10 * time.Second,
			DefaultLimit:   20,
			MaxLimit:       100,
			MaxBodySize:    64 << 10,
		},
		Auth: AuthConfigs{
			TokenSecret: defaultTokenSecret,
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 7 * 24 * time.Hour,
			},
			LandingURL: "/",
		},
		Session: SessionConfigs{
			Secret: defaultSessionSecret,
			Name:   "awards_session",
		},
		Voting: VotingConfigs{
			TimezoneOffset:  "+08:00",
			Deadline:        "2026-01-07 23:59:59",
			LiveVotingStart: "2025-10-01 00:00:00",
			LockEnabled:     true,
		},
		Results: ResultConfigs{
			CountOpenBallots: false,
			CacheTTL:         time.Hour,
			SnapshotInterval: 10 * time.Minute,
		},
		Logger: LoggerConfigs{
			Level:  "INFO",
			IsJSON: false,
		},
	}
}

// Load reads the TOML file at path on top of Default, then applies environment overrides. An
// empty path skips the file.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

// CheckSecrets returns an error if the token or session secret is empty or still the placeholder
// of Default.
func (c *Configs) CheckSecrets() error {
	switch c.Auth.TokenSecret {
	case "", defaultTokenSecret:
		return errors.New("auth.token_secret (TOKEN_SECRET) must be set to a private value")
	}

	switch c.Session.Secret {
	case "", defaultSessionSecret:
		return errors.New("session.secret (SESSION_SECRET) must be set to a private value")
	}

	return nil
}

func (c *Configs) applyEnv() error {
	setString(&c.Env, "ENV")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DB_CONNECTION")
	setString(&c.ApiServer.Port, "PORT")
	setString(&c.Auth.TokenSecret, "TOKEN_SECRET")
	setString(&c.Session.Secret, "SESSION_SECRET")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Voting.Deadline, "VOTING_DEADLINE")
	setString(&c.Voting.LiveVotingStart, "LIVE_VOTING_START")
	setString(&c.Logger.Level, "LOG_LEVEL")

	if v := os.Getenv("LOCK_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOCK_ENABLED %q: %w", v, err)
		}
		c.Voting.LockEnabled = b
	}

	for i := range c.Auth.OAuth2 {
		o := &c.Auth.OAuth2[i]
		setString(&o.ClientID, fmt.Sprintf("OAUTH2_%s_CLIENT_ID", envName(o.Name)))
		setString(&o.ClientSecret, fmt.Sprintf("OAUTH2_%s_CLIENT_SECRET", envName(o.Name)))
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envName(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			b[i] = '_'
		}
	}

	return string(b)
}
