package content

import (
	"fmt"
	"strings"
)

// Issue is a single field that failed validation.
type Issue struct {
	Field   string
	Message string
}

// ValidationError collects the issues of one entry file.
type ValidationError struct {
	File   string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s: %s", e.File, is.Field, is.Message))
	}
	return strings.Join(lines, "\n")
}

// Has reports whether field has an issue.
func (e *ValidationError) Has(field string) bool {
	for _, is := range e.Issues {
		if is.Field == field {
			return true
		}
	}
	return false
}

// ValidationErrors is returned by Collection.Load when any entry is invalid.
type ValidationErrors struct {
	Collection string
	Entries    []*ValidationError
}

func (e *ValidationErrors) Error() string {
	count := 0
	for _, entry := range e.Entries {
		count += len(entry.Issues)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "collection %q: %d invalid field(s) in %d entry file(s)", e.Collection, count, len(e.Entries))
	for _, entry := range e.Entries {
		for _, line := range strings.Split(entry.Error(), "\n") {
			b.WriteString("\n  ")
			b.WriteString(line)
		}
	}
	return b.String()
}

// For returns the validation error of file, or nil.
func (e *ValidationErrors) For(file string) *ValidationError {
	for _, entry := range e.Entries {
		if entry.File == file {
			return entry
		}
	}
	return nil
}
