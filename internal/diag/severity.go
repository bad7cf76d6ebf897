package diag

import "fmt"

// Severity defines the importance of a diagnostic. The order matters:
// severity filtering keeps everything >= the configured minimum.
type Severity uint8

const (
	// SevInfo is for informational diagnostics (style, conventions).
	SevInfo Severity = iota
	// SevGas flags gas-inefficient but correct code.
	SevGas
	SevLow
	SevMed
	SevHigh
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevGas:
		return "gas"
	case SevLow:
		return "low"
	case SevMed:
		return "med"
	case SevHigh:
		return "high"
	}
	return "unknown"
}

// ParseSeverity converts a configuration string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info":
		return SevInfo, nil
	case "gas":
		return SevGas, nil
	case "low":
		return SevLow, nil
	case "med", "medium":
		return SevMed, nil
	case "high":
		return SevHigh, nil
	}
	return SevInfo, fmt.Errorf("unknown severity %q", s)
}
