// Package config loads the report query runtime configuration from the
// environment, falling back to the values the pipeline ships with.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/nutrigenlab/genereport/genereport"
)

// Environment variable names recognized by Load.
const (
	EnvRegion         = "REPORT_REGION"
	EnvDatabase       = "REPORT_DATABASE"
	EnvOutputLocation = "REPORT_OUTPUT_LOCATION"
	EnvQuery          = "REPORT_QUERY"
	EnvWorkgroup      = "REPORT_WORKGROUP"
	EnvPollInterval   = "REPORT_POLL_INTERVAL"
	EnvPollTimeout    = "REPORT_POLL_TIMEOUT"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultDatabase       = "genomics"
	DefaultOutputLocation = "s3://gene-report-query-results/"
)

// Load reads the report configuration from the environment. AWS credentials
// are left to the SDK's default chain.
func Load() (genereport.Config, error) {
	cfg := genereport.Config{
		Region:         envOr(EnvRegion, genereport.DefaultRegion),
		Database:       envOr(EnvDatabase, DefaultDatabase),
		OutputLocation: envOr(EnvOutputLocation, DefaultOutputLocation),
		QueryString:    envOr(EnvQuery, genereport.DefaultQuery),
		Workgroup:      os.Getenv(EnvWorkgroup),
		PollInterval:   genereport.DefaultPollInterval,
		PollTimeout:    genereport.DefaultPollTimeout,
	}

	var err error
	if cfg.PollInterval, err = durationOr(EnvPollInterval, cfg.PollInterval); err != nil {
		return genereport.Config{}, err
	}
	if cfg.PollTimeout, err = durationOr(EnvPollTimeout, cfg.PollTimeout); err != nil {
		return genereport.Config{}, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: duration must be positive, got %q", key, v)
	}
	return d, nil
}
