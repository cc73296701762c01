package report

import (
	"os"
	"path/filepath"
	"strings"
)

// Side-channel files inspected by the invoking toolchain.
const (
	statusFile   = "query_status.txt"
	errorLogFile = "error_log.txt"
)

// WriteStatus records the fetch outcome next to the document: SUCCESS when
// every table fetch succeeded, FAILED otherwise, with the collected messages
// in the error log (empty file when there were none).
func WriteStatus(dir string, fetchErrors []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	status := "SUCCESS"
	if len(fetchErrors) > 0 {
		status = "FAILED"
	}
	if err := os.WriteFile(filepath.Join(dir, statusFile), []byte(status+"\n"), 0o644); err != nil {
		return err
	}
	log := ""
	if len(fetchErrors) > 0 {
		log = strings.Join(fetchErrors, "\n") + "\n"
	}
	return os.WriteFile(filepath.Join(dir, errorLogFile), []byte(log), 0o644)
}
