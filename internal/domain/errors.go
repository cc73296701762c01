package domain

import "errors"

// Error taxonomy shared by both pipelines. Callers classify failures with
// errors.Is and wrap additional context with fmt.Errorf("...: %w", ...).
var (
	// ErrConfiguration marks missing or malformed credentials or date
	// inputs. Fatal before any query is issued.
	ErrConfiguration = errors.New("configuration error")

	// ErrConnection marks an unreachable database or API. Fatal for the
	// export job; isolated to a single table for the report.
	ErrConnection = errors.New("connection error")

	// ErrQuery marks a malformed or rejected query. Fatal for the export
	// job, which never writes a partial artifact.
	ErrQuery = errors.New("query error")
)
