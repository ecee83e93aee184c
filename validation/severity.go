package validation

import (
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Severity indicates whether and how strongly violations of a rule are reported.
type Severity string

const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Severities lists the recognized severities, weakest first.
var Severities = []Severity{SeverityOff, SeverityWarn, SeverityError}

func (s Severity) String() string {
	return string(s)
}

// IsValid reports whether s is one of off, warn or error.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityOff, SeverityWarn, SeverityError:
		return true
	default:
		return false
	}
}

// Enabled reports whether a rule with this severity runs at all.
func (s Severity) Enabled() bool {
	return s == SeverityWarn || s == SeverityError
}

// ParseSeverity converts a raw configuration value into a Severity.
// Strings must be one of off, warn or error; the legacy numeric levels 0, 1 and 2 are also accepted.
func ParseSeverity(v any) (Severity, error) {
	switch val := v.(type) {
	case Severity:
		if val.IsValid() {
			return val, nil
		}
	case string:
		if s := Severity(val); s.IsValid() {
			return s, nil
		}
		return "", fmt.Errorf("severity %q is not one of off, warn, error", val)
	case int:
		return severityFromLevel(int64(val))
	case int64:
		return severityFromLevel(val)
	case uint64:
		if val <= math.MaxInt64 {
			return severityFromLevel(int64(val))
		}
	case float64:
		if val == math.Trunc(val) {
			return severityFromLevel(int64(val))
		}
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return severityFromLevel(i)
		}
	}
	return "", fmt.Errorf("severity %v is not one of off, warn, error", v)
}

func severityFromLevel(level int64) (Severity, error) {
	if level < 0 || level >= int64(len(Severities)) {
		return "", fmt.Errorf("severity level %d is not one of 0, 1, 2", level)
	}
	return Severities[level], nil
}

// UnmarshalYAML accepts both the string and numeric forms of a severity.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalJSON accepts both the string and numeric forms of a severity.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
