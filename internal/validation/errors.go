package validation

import (
	"sort"
	"strings"
)

// Errors maps form field names to a message.
type Errors map[string]string

func (e Errors) Add(field string, err error) {
	if err != nil {
		e[field] = err.Error()
	}
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}
