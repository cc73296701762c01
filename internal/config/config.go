package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"timesheet-reporter/internal/domain"
)

// Config holds environment-driven configuration for both pipelines.
// Variables are read without a prefix to match the names the invoking
// workflow injects.
type Config struct {
	// Export job: direct database connection.
	DBHost     string `envconfig:"SUPABASE_DB_HOST"`
	DBPort     int    `envconfig:"SUPABASE_DB_PORT" default:"5432"`
	DBName     string `envconfig:"SUPABASE_DB_NAME"`
	DBUser     string `envconfig:"SUPABASE_DB_USER"`
	DBPassword string `envconfig:"SUPABASE_DB_PASSWORD"`

	TargetProjects string `envconfig:"TARGET_PROJECTS"`
	DateFilter     string `envconfig:"DATE_FILTER" default:"TODAY"`
	StartDate      string `envconfig:"START_DATE"`
	EndDate        string `envconfig:"END_DATE"`
	ExportDir      string `envconfig:"EXPORT_DIR" default:"exports"`

	// Report generator: HTTP data API.
	SupabaseURL string `envconfig:"SUPABASE_URL"`
	SupabaseKey string `envconfig:"SUPABASE_KEY"`
	ReportDir   string `envconfig:"REPORT_DIR" default:"."`
	SinceDays   int    `envconfig:"REPORT_SINCE_DAYS" default:"180"`
}

// Load reads configuration from environment variables. Validation is
// deferred to the per-pipeline methods so each entry point only demands
// its own variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	return cfg, nil
}

// Projects returns the target project names, comma-split and trimmed.
func (c Config) Projects() []string {
	var out []string
	for _, p := range strings.Split(c.TargetProjects, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateExport checks the export-job variables before any connection is
// opened.
func (c Config) ValidateExport() error {
	var missing []string
	if c.DBHost == "" {
		missing = append(missing, "SUPABASE_DB_HOST")
	}
	if c.DBName == "" {
		missing = append(missing, "SUPABASE_DB_NAME")
	}
	if c.DBUser == "" {
		missing = append(missing, "SUPABASE_DB_USER")
	}
	if c.DBPassword == "" {
		missing = append(missing, "SUPABASE_DB_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrConfiguration, strings.Join(missing, ", "))
	}
	if len(c.Projects()) == 0 {
		return fmt.Errorf("%w: TARGET_PROJECTS is empty", domain.ErrConfiguration)
	}
	return nil
}

// DSN builds the export connection string. The pooled database user must be
// the compound "user.project-reference" form; a bare user is rejected here
// so the failure surfaces before dialing.
func (c Config) DSN() (string, error) {
	if !strings.Contains(c.DBUser, ".") {
		return "", fmt.Errorf("%w: database user %q is missing the project reference (expected user.project-ref)", domain.ErrConnection, c.DBUser)
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   c.DBName,
	}
	return u.String(), nil
}

// ValidateReport checks the report-generator variables.
func (c Config) ValidateReport() error {
	var missing []string
	if c.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.SupabaseKey == "" {
		missing = append(missing, "SUPABASE_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}
