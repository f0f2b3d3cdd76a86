// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Runtime
	AppMode        string `mapstructure:"APP_MODE" validate:"oneof=debug release test"`
	AppDisplayName string `mapstructure:"APP_DISPLAY_NAME" validate:"required"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn warning error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"oneof=console json"`

	// Local persistence
	StoreDriver string `mapstructure:"STORE_DRIVER" validate:"oneof=sqlite memory"`
	StorePath   string `mapstructure:"STORE_PATH" validate:"required_if=StoreDriver sqlite"`

	// Google Sign-In
	GooglePlatform        string   `mapstructure:"GOOGLE_PLATFORM" validate:"oneof=web ios android"`
	GoogleWebClientID     string   `mapstructure:"GOOGLE_WEB_CLIENT_ID"`
	GoogleIOSClientID     string   `mapstructure:"GOOGLE_IOS_CLIENT_ID"`
	GoogleAndroidClientID string   `mapstructure:"GOOGLE_ANDROID_CLIENT_ID"`
	GoogleClientSecret    string   `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleOfflineAccess   bool     `mapstructure:"GOOGLE_OFFLINE_ACCESS"`
	GoogleScopes          []string `mapstructure:"GOOGLE_SCOPES" validate:"min=1"`

	// Facebook Login
	FacebookAppID       string   `mapstructure:"FACEBOOK_APP_ID"`
	FacebookAppSecret   string   `mapstructure:"FACEBOOK_APP_SECRET"`
	FacebookPermissions []string `mapstructure:"FACEBOOK_PERMISSIONS" validate:"min=1"`
	FacebookGraphURL    string   `mapstructure:"FACEBOOK_GRAPH_URL" validate:"required,url"`

	// Loopback redirect receiver shared by both providers
	OAuthRedirectHost string `mapstructure:"OAUTH_REDIRECT_HOST" validate:"required"`
	OAuthRedirectPort int    `mapstructure:"OAUTH_REDIRECT_PORT" validate:"min=0,max=65535"`
	OAuthCallbackPath string `mapstructure:"OAUTH_CALLBACK_PATH" validate:"required,startswith=/"`

	// Session behaviour
	OperationTimeout      time.Duration `mapstructure:"-" validate:"min=0"` // from OPERATION_TIMEOUT_SECONDS
	ClearProfileOnSignOut bool          `mapstructure:"CLEAR_PROFILE_ON_SIGN_OUT"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.OperationTimeout = time.Duration(v.GetInt("OPERATION_TIMEOUT_SECONDS")) * time.Second

	cfg.GoogleScopes = splitList(cfg.GoogleScopes)
	cfg.FacebookPermissions = splitList(cfg.FacebookPermissions)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_MODE", "debug")
	v.SetDefault("APP_DISPLAY_NAME", "Social Media Auth")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("STORE_DRIVER", "sqlite")
	v.SetDefault("STORE_PATH", "data/session.db")

	v.SetDefault("GOOGLE_PLATFORM", "web")
	v.SetDefault("GOOGLE_WEB_CLIENT_ID", "")
	v.SetDefault("GOOGLE_IOS_CLIENT_ID", "")
	v.SetDefault("GOOGLE_ANDROID_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_OFFLINE_ACCESS", true)
	v.SetDefault("GOOGLE_SCOPES", "profile,email")

	v.SetDefault("FACEBOOK_APP_ID", "")
	v.SetDefault("FACEBOOK_APP_SECRET", "")
	v.SetDefault("FACEBOOK_PERMISSIONS", "public_profile,email")
	v.SetDefault("FACEBOOK_GRAPH_URL", "https://graph.facebook.com")

	v.SetDefault("OAUTH_REDIRECT_HOST", "127.0.0.1")
	v.SetDefault("OAUTH_REDIRECT_PORT", 0)
	v.SetDefault("OAUTH_CALLBACK_PATH", "/oauth/callback")

	v.SetDefault("OPERATION_TIMEOUT_SECONDS", 60)
	v.SetDefault("CLEAR_PROFILE_ON_SIGN_OUT", false)
}

// Validate checks struct constraints and reports every failing field at once.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validating configuration: %w", err)
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// GoogleClientID returns the client ID registered for the configured platform.
func (c *Config) GoogleClientID() string {
	switch c.GooglePlatform {
	case "ios":
		return c.GoogleIOSClientID
	case "android":
		return c.GoogleAndroidClientID
	default:
		return c.GoogleWebClientID
	}
}

// splitList flattens entries that arrived as a single comma separated string.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
