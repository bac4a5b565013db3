// Package deps reports on the external executables folio shells out to.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var errNotConfigured = errors.New("command not configured")

// Requirement names an executable folio invokes and why.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is a Requirement after PATH resolution. Command holds the resolved
// path when Available is set.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// CheckBinaries resolves every requirement on PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		status := Status{Requirement: req}
		if resolved, err := resolve(req.Command); err != nil {
			status.Detail = err.Error()
		} else {
			status.Command = resolved
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}

func resolve(command string) (string, error) {
	if command == "" {
		return "", errNotConfigured
	}
	resolved, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("binary %q not found in PATH", command)
	}
	return resolved, nil
}
