package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Follow modes. FollowModeMirror pushes each party into the other's following list,
// FollowModeDirected writes following on the follower and followers on the target.
const (
	FollowModeMirror   = "mirror"
	FollowModeDirected = "directed"
)

type AuthConfig struct {
	JWTSecret            string
	SessionTTL           time.Duration
	SessionTTLPersistent time.Duration
	BcryptCost           int
	MinPasswordLength    int
}

type CodeConfig struct {
	UserCodeLength  int
	EventCodeLength int
	MaxAttempts     int
}

type EmailConfig struct {
	ResendAPIKey        string
	FromAddress         string
	FromName            string
	ConfirmationBaseURL string
}

type Config struct {
	Port        string
	DatabaseURL string
	CORSOrigins string

	RateLimitMax    int
	RateLimitWindow time.Duration

	Auth  AuthConfig
	Codes CodeConfig
	Email EmailConfig

	UnconfirmedUserTTL time.Duration
	PurgeInterval      time.Duration
	FollowMode         string

	TurnstileSecret string

	JoinBaseURL   string
	FriendBaseURL string
	QRSize        int

	LogLevel  string
	LogFormat string
}

// loader collects every problem so a misconfigured deploy reports all of them at once.
type loader struct {
	problems []string
}

func (l *loader) required(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		l.problems = append(l.problems, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func (l *loader) optional(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func (l *loader) optionalInt(key string, defaultValue, min int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		l.problems = append(l.problems, fmt.Sprintf("invalid value for %s: expected integer, got '%s'", key, raw))
		return defaultValue
	}
	if value < min {
		l.problems = append(l.problems, fmt.Sprintf("invalid value for %s: must be at least %d", key, min))
		return defaultValue
	}
	return value
}

func (l *loader) optionalDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		l.problems = append(l.problems, fmt.Sprintf("invalid value for %s: expected positive duration, got '%s'", key, raw))
		return defaultValue
	}
	return value
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	l := &loader{}

	cfg := &Config{
		Port:        l.optional("PORT", "8080"),
		DatabaseURL: l.required("DATABASE_URL"),
		CORSOrigins: l.optional("CORS_ORIGINS", "http://localhost:5173"),

		RateLimitMax:    l.optionalInt("RATE_LIMIT_MAX", 60, 1),
		RateLimitWindow: l.optionalDuration("RATE_LIMIT_WINDOW", time.Minute),

		Auth: AuthConfig{
			JWTSecret:            l.required("JWT_SECRET"),
			SessionTTL:           l.optionalDuration("SESSION_TTL", 24*time.Hour),
			SessionTTLPersistent: l.optionalDuration("SESSION_TTL_PERSISTENT", 30*24*time.Hour),
			BcryptCost:           l.optionalInt("BCRYPT_COST", 10, 4),
			MinPasswordLength:    l.optionalInt("MIN_PASSWORD_LENGTH", 4, 1),
		},
		Codes: CodeConfig{
			UserCodeLength:  l.optionalInt("USER_CODE_LENGTH", 8, 4),
			EventCodeLength: l.optionalInt("EVENT_CODE_LENGTH", 6, 4),
			MaxAttempts:     l.optionalInt("CODE_MAX_ATTEMPTS", 10, 1),
		},
		Email: EmailConfig{
			ResendAPIKey:        l.optional("RESEND_API_KEY", ""),
			FromAddress:         l.optional("EMAIL_FROM_ADDRESS", "no-reply@groupslot.app"),
			FromName:            l.optional("EMAIL_FROM_NAME", "Groupslot"),
			ConfirmationBaseURL: strings.TrimRight(l.optional("CONFIRMATION_BASE_URL", "http://localhost:8080/api"), "/"),
		},

		UnconfirmedUserTTL: l.optionalDuration("UNCONFIRMED_USER_TTL", 24*time.Hour),
		PurgeInterval:      l.optionalDuration("PURGE_INTERVAL", 10*time.Minute),
		FollowMode:         strings.ToLower(l.optional("FOLLOW_MODE", FollowModeMirror)),

		TurnstileSecret: l.optional("TURNSTILE_SECRET_KEY", ""),

		JoinBaseURL:   l.optional("JOIN_BASE_URL", "http://localhost:5173/join/"),
		FriendBaseURL: l.optional("FRIEND_BASE_URL", "http://localhost:5173/add/"),
		QRSize:        l.optionalInt("QR_SIZE", 256, 64),

		LogLevel:  l.optional("LOG_LEVEL", "info"),
		LogFormat: l.optional("LOG_FORMAT", "json"),
	}

	if cfg.FollowMode != FollowModeMirror && cfg.FollowMode != FollowModeDirected {
		l.problems = append(l.problems, fmt.Sprintf("invalid value for FOLLOW_MODE: expected %q or %q, got %q",
			FollowModeMirror, FollowModeDirected, cfg.FollowMode))
	}
	if cfg.Auth.SessionTTLPersistent < cfg.Auth.SessionTTL {
		l.problems = append(l.problems, "SESSION_TTL_PERSISTENT must not be shorter than SESSION_TTL")
	}

	if len(l.problems) > 0 {
		return nil, fmt.Errorf("configuration errors:\n  - %s", strings.Join(l.problems, "\n  - "))
	}
	return cfg, nil
}
