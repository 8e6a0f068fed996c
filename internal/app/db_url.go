package app

import (
	"fmt"
	"net/url"
	"strings"
)

// dsnOptions are connection parameters added to DB_URL when it does not set
// them itself.
type dsnOptions struct {
	// BinaryParameters makes lib/pq send parameters in binary form, which
	// skips the unnamed prepare step. Needed behind transaction-mode poolers.
	BinaryParameters bool
	ApplicationName  string
}

func normalizeDBURL(raw string, opts dsnOptions) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("db url is empty")
	}

	defaults := map[string]string{}
	if opts.BinaryParameters {
		defaults["binary_parameters"] = "yes"
	}
	if name := strings.TrimSpace(opts.ApplicationName); name != "" {
		defaults["application_name"] = name
	}

	if !strings.Contains(trimmed, "://") {
		return normalizeKeyValueDSN(trimmed, defaults), nil
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse db url: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return "", fmt.Errorf("unsupported db url scheme %q", parsed.Scheme)
	}
	if len(defaults) == 0 {
		return trimmed, nil
	}

	query := parsed.Query()
	changed := false
	for key, value := range defaults {
		if query.Get(key) == "" {
			query.Set(key, value)
			changed = true
		}
	}
	if !changed {
		return trimmed, nil
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func normalizeKeyValueDSN(dsn string, defaults map[string]string) string {
	present := make(map[string]struct{})
	for _, token := range strings.Fields(dsn) {
		key, _, ok := strings.Cut(token, "=")
		if ok {
			present[key] = struct{}{}
		}
	}

	var b strings.Builder
	b.WriteString(dsn)
	for _, key := range []string{"binary_parameters", "application_name"} {
		value, ok := defaults[key]
		if !ok {
			continue
		}
		if _, exists := present[key]; exists {
			continue
		}
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(value)
	}
	return b.String()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(name, `"'`); name != "" {
			return name
		}
	}

	return ""
}
