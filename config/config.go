package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Gmail          GmailConfig
	GoogleCalendar GoogleCalendarConfig
	Fetch          FetchConfig
	Newsletter     NewsletterConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// GmailConfig configures the newsletter mail source.
type GmailConfig struct {
	CredentialsPath string
	AccountEmail    string // mailbox the service account impersonates
	SenderEmail     string // newsletter sender to search for
	ProcessedLabel  string
	MaxEmails       int
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

// FetchConfig controls the invitation-link fetch collaborator.
type FetchConfig struct {
	TimeoutSeconds  int
	MaxBodyBytes    int64
	CacheSize       int
	CacheTTLMinutes int
	RequestsPerSec  float64
}

// NewsletterConfig is the language-agnostic option set consumed by the
// extraction engine.
type NewsletterConfig struct {
	Timezone               string
	DefaultStartTime       string // "HH:MM"
	DefaultDurationMinutes int
	SkipPastEvents         bool
	FooterMarkers          []string
	Cities                 []string
	EventTypeKeywords      map[string]string // type code -> keyword
	OrganizerKeywords      map[string]string // keyword -> organizer name
	TimePatterns           []string          // ordered time regexes, ranges first
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Gmail.CredentialsPath = viper.GetString("gmail.credentials_path")
	cfg.Gmail.AccountEmail = viper.GetString("gmail.account_email")
	cfg.Gmail.SenderEmail = viper.GetString("gmail.sender_email")
	cfg.Gmail.ProcessedLabel = viper.GetString("gmail.processed_label")
	cfg.Gmail.MaxEmails = viper.GetInt("gmail.max_emails")
	if sender := viper.GetString("gmail_sender_email"); sender != "" {
		cfg.Gmail.SenderEmail = sender
	}

	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	cfg.Fetch.TimeoutSeconds = viper.GetInt("fetch.timeout_seconds")
	cfg.Fetch.MaxBodyBytes = viper.GetInt64("fetch.max_body_bytes")
	cfg.Fetch.CacheSize = viper.GetInt("fetch.cache_size")
	cfg.Fetch.CacheTTLMinutes = viper.GetInt("fetch.cache_ttl_minutes")
	cfg.Fetch.RequestsPerSec = viper.GetFloat64("fetch.requests_per_sec")

	cfg.Newsletter.Timezone = viper.GetString("newsletter.timezone")
	cfg.Newsletter.DefaultStartTime = viper.GetString("newsletter.default_start_time")
	cfg.Newsletter.DefaultDurationMinutes = viper.GetInt("newsletter.default_duration_minutes")
	cfg.Newsletter.SkipPastEvents = viper.GetBool("newsletter.skip_past_events")
	cfg.Newsletter.FooterMarkers = viper.GetStringSlice("newsletter.footer_markers")
	cfg.Newsletter.Cities = viper.GetStringSlice("newsletter.cities")
	cfg.Newsletter.EventTypeKeywords = viper.GetStringMapString("newsletter.event_type_keywords")
	cfg.Newsletter.OrganizerKeywords = viper.GetStringMapString("newsletter.organizer_keywords")
	cfg.Newsletter.TimePatterns = viper.GetStringSlice("newsletter.time_patterns")

	if cfg.Newsletter.DefaultStartTime == "" {
		return nil, fmt.Errorf("newsletter.default_start_time must not be empty")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("gmail.processed_label", "WomensRightsProcessed")
	viper.SetDefault("gmail.max_emails", 10)

	viper.SetDefault("fetch.timeout_seconds", 15)
	viper.SetDefault("fetch.max_body_bytes", 10*1024*1024)
	viper.SetDefault("fetch.cache_size", 128)
	viper.SetDefault("fetch.cache_ttl_minutes", 60)
	viper.SetDefault("fetch.requests_per_sec", 2.0)

	viper.SetDefault("newsletter.timezone", "Asia/Jerusalem")
	viper.SetDefault("newsletter.default_start_time", "19:00")
	viper.SetDefault("newsletter.default_duration_minutes", 120)
	viper.SetDefault("newsletter.skip_past_events", true)
	viper.SetDefault("newsletter.footer_markers", []string{
		"This email was sent to",
		"Want to change how you receive",
		"Facebook (https://",
		"** Website (https://",
		"** Email (mailto:",
		"Facebook (http://",
		"Website (https://",
		"Email (mailto:",
		"Copyright ©",
		"Our mailing address is:",
		"unsubscribe from this list",
		"=============================================================",
	})
	viper.SetDefault("newsletter.cities", []string{
		"תל אביב", "ירושלים", "חיפה", "באר שבע",
	})
	viper.SetDefault("newsletter.event_type_keywords", map[string]string{
		"discussion": "דיון",
		"lecture":    "הרצאה",
		"meeting":    "מפגש",
	})
	viper.SetDefault("newsletter.organizer_keywords", map[string]string{
		"הוועדה לקידום מעמד האישה": "הוועדה לקידום מעמד האישה",
	})
	viper.SetDefault("newsletter.time_patterns", []string{
		`(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})`,
		`(\d{1,2})\s*:\s*(\d{2})\s*-\s*(\d{1,2})\s*:\s*(\d{2})`,
		`מ(\d{1,2}):(\d{2})\s*עד\s*(\d{1,2}):(\d{2})`,
		`(\d{1,2}):(\d{2})`,
	})
}
