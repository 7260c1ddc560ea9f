package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/availiq/availiq/pkg/domain/model/config"
	"github.com/availiq/availiq/pkg/domain/types"
)

// AppConfig holds the CLI flag for the application config file and loads it.
// The file is TOML:
//
//	timezone = "America/New_York"
//	leadership_channel = "C0123456789"
//	allowed_emails = ["alice@example.com", "bob@example.com"]
//	summary_time = "12:05"
//
//	[[run]]
//	label = "9AM"
//	time = "09:00"
//
//	[[run]]
//	label = "12PM"
//	time = "12:00"
type AppConfig struct {
	path string
}

type appFile struct {
	Timezone          string     `toml:"timezone"`
	LeadershipChannel string     `toml:"leadership_channel"`
	AllowedEmails     []string   `toml:"allowed_emails"`
	Runs              []runEntry `toml:"run"`
	SummaryTime       string     `toml:"summary_time"`
}

type runEntry struct {
	Label string `toml:"label"`
	Time  string `toml:"time"`
}

// Defaults applied when the file leaves them out
const (
	defaultTimezone    = "America/New_York"
	defaultSummaryTime = "12:05"
)

var defaultRuns = []runEntry{
	{Label: "9AM", Time: "09:00"},
	{Label: "12PM", Time: "12:00"},
}

func (x *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to application config file (TOML)",
			Required:    true,
			Sources:     cli.EnvVars("AVAILIQ_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Configure loads, validates, and resolves the config file into the domain
// PollConfig.
func (x *AppConfig) Configure() (*domainConfig.PollConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", x.path))
	}

	var file appFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", x.path))
	}

	cfg, err := buildPollConfig(&file)
	if err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", x.path))
	}

	return cfg, nil
}

func buildPollConfig(file *appFile) (*domainConfig.PollConfig, error) {
	tz := file.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid timezone", goerr.V("timezone", tz))
	}

	if file.LeadershipChannel == "" {
		return nil, goerr.New("leadership_channel is required")
	}

	allowed := make([]types.EmailAddress, 0, len(file.AllowedEmails))
	for _, raw := range file.AllowedEmails {
		email := types.EmailAddress(raw)
		if err := email.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid allow-list email", goerr.V("email", raw))
		}
		allowed = append(allowed, email)
	}

	entries := file.Runs
	if len(entries) == 0 {
		entries = defaultRuns
	}

	seen := make(map[types.RunLabel]bool, len(entries))
	runs := make([]domainConfig.DispatchRun, 0, len(entries))
	for _, entry := range entries {
		label := types.RunLabel(entry.Label)
		if err := label.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid run label", goerr.V("label", entry.Label))
		}
		if seen[label] {
			return nil, goerr.New("duplicate run label", goerr.V("label", entry.Label))
		}
		seen[label] = true

		at, err := domainConfig.ParseDayTime(entry.Time)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid run time", goerr.V("label", entry.Label))
		}
		runs = append(runs, domainConfig.DispatchRun{Label: label, At: at})
	}

	summaryTime := file.SummaryTime
	if summaryTime == "" {
		summaryTime = defaultSummaryTime
	}
	summaryAt, err := domainConfig.ParseDayTime(summaryTime)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid summary time")
	}

	return domainConfig.New(loc, file.LeadershipChannel, allowed, runs, summaryAt), nil
}
