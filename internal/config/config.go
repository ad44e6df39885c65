package config

import (
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Site
	AppEnv          string
	SiteName        string
	SiteURL         string
	SiteTitle       string
	SiteDescription string
	SiteTagline     string
	AppLoginURL     string
	RegisterAction  string

	// Build
	ContentPath   string
	PublicPath    string
	OutputDir     string
	ImageMaxWidth int
	StrictLinks   bool

	// Preview server
	Port               string
	RegisterRateLimit  int // 0 disables the limit
	RegisterRateWindow time.Duration
	TrustedProxies     []netip.Prefix

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Email
	EmailFrom           string
	ResendAPIKey        string
	ResendAudienceID    string
	RegisterNotifyEmail string

	// Analytics (all optional, can be used simultaneously)
	GoogleAnalyticsID string
	PlausibleDomain   string
	PlausibleHost     string

	// Observability (optional)
	SentryDSN string
	LogLevel  string

	// Publishing (S3-compatible: AWS S3, Cloudflare R2, MinIO, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppEnv:          envString("APP_ENV", "development"),
		SiteName:        envString("SITE_NAME", "Slate Social"),
		SiteURL:         envString("SITE_URL", "https://slatesocial.com"),
		SiteTitle:       envString("SITE_TITLE", "Slate Social - Social Media for Climbing Gyms"),
		SiteDescription: envString("SITE_DESCRIPTION", "Slate Social is the community hub for your climbing gym: message boards, groups, competitions and partner finding in one platform."),
		SiteTagline:     envString("SITE_TAGLINE", "Social Media for Climbing Gyms"),
		AppLoginURL:     envString("APP_LOGIN_URL", "https://app.slatesocial.com/login"),
		RegisterAction:  envString("REGISTER_ACTION", "/register"),

		ContentPath:   envString("CONTENT_PATH", "content"),
		PublicPath:    envString("PUBLIC_PATH", "public"),
		OutputDir:     envString("OUTPUT_DIR", "dist"),
		ImageMaxWidth: envInt("IMAGE_MAX_WIDTH", 1600),
		StrictLinks:   envBool("STRICT_LINKS", true),

		Port:               envString("PORT", "4173"),
		RegisterRateLimit:  envInt("REGISTER_RATE_LIMIT", 5),
		RegisterRateWindow: envDuration("REGISTER_RATE_WINDOW", 15*time.Minute),
		TrustedProxies:     envPrefixes("TRUSTED_PROXIES"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/slate.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// RESEND_API_KEY optional in development, required in production
		EmailFrom:           envString("EMAIL_FROM", "Slate Social <hello@slatesocial.com>"),
		ResendAPIKey:        envString("RESEND_API_KEY", ""),
		ResendAudienceID:    envString("RESEND_AUDIENCE_ID", ""),
		RegisterNotifyEmail: envString("REGISTER_NOTIFY_EMAIL", "team@slatesocial.com"),

		GoogleAnalyticsID: envString("GOOGLE_ANALYTICS_ID", ""),
		PlausibleDomain:   envString("PLAUSIBLE_DOMAIN", ""),
		PlausibleHost:     envString("PLAUSIBLE_HOST", "plausible.io"),

		SentryDSN: envString("SENTRY_DSN", ""),
		LogLevel:  envString("LOG_LEVEL", ""),

		S3Region:    envString("S3_REGION", "auto"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures the registration backend can deliver email.
// Development logs emails instead of sending them.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

// RequirePublish checks the settings only the publish command needs.
func (c *Config) RequirePublish() error {
	missing := []string{}
	if c.S3Bucket == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if c.S3AccessKey == "" {
		missing = append(missing, "S3_ACCESS_KEY")
	}
	if c.S3SecretKey == "" {
		missing = append(missing, "S3_SECRET_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("publish requires %v", missing)
	}
	return nil
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envPrefixes reads a comma separated list of IPs and CIDRs.
// A bare IP is a single-address prefix. Invalid entries are skipped.
func envPrefixes(key string) []netip.Prefix {
	var prefixes []netip.Prefix
	for _, v := range strings.Split(os.Getenv(key), ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(v); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			slog.Warn("config invalid proxy address, skipping", "key", key, "value", v)
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public fields.
// Safe to expose in ctx and templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppEnv:          c.AppEnv,
		SiteName:        c.SiteName,
		SiteURL:         c.SiteURL,
		SiteTitle:       c.SiteTitle,
		SiteDescription: c.SiteDescription,
		SiteTagline:     c.SiteTagline,
		AppLoginURL:     c.AppLoginURL,
		RegisterAction:  c.RegisterAction,

		GoogleAnalyticsID: c.GoogleAnalyticsID,
		PlausibleDomain:   c.PlausibleDomain,
		PlausibleHost:     c.PlausibleHost,
	}
}
