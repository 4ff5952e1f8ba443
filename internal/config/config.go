package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config holds everything outside the database layer: server address,
// Slack, SMTP and file-storage credentials. Missing Slack/SMTP values
// turn the matching notifier into a no-op rather than an error.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR,default=:8080"`
	SiteName   string `env:"SITE_NAME,default=RenderShot"`
	SiteDomain string `env:"SITE_DOMAIN,default=rendershot.local"`

	SlackToken         string `env:"SLACK_TOKEN"`
	SlackUserName      string `env:"SLACK_USER_NAME,default=rendershot"`
	SlackChannel       string `env:"SLACK_CHANNEL,default=#rendershot_notification"`
	SlackTicketChannel string `env:"SLACK_TICKET_CHANNEL,default=#rendershot_ticket"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort string `env:"SMTP_PORT,default=587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	SMTPFrom string `env:"SMTP_FROM,default=noreply@rendershot.local"`

	StorageBaseURL string `env:"STORAGE_BASE_URL"`
	StorageToken   string `env:"STORAGE_TOKEN"`

	NotifyWorkers int `env:"NOTIFY_WORKERS,default=4"`
	NotifyQueue   int `env:"NOTIFY_QUEUE,default=256"`
}

// to help with testing
var envProcess = envconfig.Process

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envProcess(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	var errs []string

	if strings.TrimSpace(cfg.ListenAddr) == "" {
		errs = append(errs, "LISTEN_ADDR is required")
	}

	if cfg.NotifyWorkers < 1 {
		errs = append(errs, "NOTIFY_WORKERS must be positive")
	}

	if cfg.NotifyQueue < 1 {
		errs = append(errs, "NOTIFY_QUEUE must be positive")
	}

	if cfg.SlackToken != "" && !strings.HasPrefix(cfg.SlackChannel, "#") {
		errs = append(errs, "SLACK_CHANNEL must start with #")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	return nil
}
