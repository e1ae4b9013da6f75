package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server configuration
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Source configuration
	SourcesDir    string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing source configuration files"`
	PrimarySource string `long:"primary-source" env:"PRIMARY_SOURCE" default:"gazzetta" description:"Source used when a request names none"`
	CacheTTL      int    `long:"cache-ttl" env:"CACHE_TTL" default:"7200" description:"Schedule cache TTL in seconds"`
	HTTPTimeout   int    `long:"http-timeout" env:"HTTP_TIMEOUT" default:"10" description:"Outbound HTTP timeout in seconds"`

	// Background scheduler configuration
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for scheduled tasks"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"0" description:"Background scheduler interval in seconds (0 disables)"`
	SyncSource        string `long:"sync-source" env:"SYNC_SOURCE" description:"Source synced to the calendar by the background scheduler (optional)"`

	// Calendar configuration
	CalendarID      string `long:"calendar-id" env:"CALENDAR_ID" default:"primary" description:"Target calendar identifier"`
	CredentialsFile string `long:"credentials-file" env:"CREDENTIALS_FILE" default:"credentials.json" description:"OAuth client credentials file"`
	TokenFile       string `long:"token-file" env:"TOKEN_FILE" default:"token.json" description:"Stored OAuth token file"`
	Authorize       bool   `long:"authorize" env:"AUTHORIZE" description:"Run the interactive calendar authorization flow at startup"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"MatchComb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Europe/Athens" description:"Timezone for timestamps (e.g., Europe/Athens, UTC)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		SourcesDir:        raw.SourcesDir,
		PrimarySource:     raw.PrimarySource,
		CacheTTL:          raw.CacheTTL,
		HTTPTimeout:       raw.HTTPTimeout,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		SyncSource:        raw.SyncSource,
		CalendarID:        raw.CalendarID,
		CredentialsFile:   raw.CredentialsFile,
		TokenFile:         raw.TokenFile,
		Authorize:         raw.Authorize,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
