package doctor

// Severity is the outcome of a check, ordered from best to worst.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult is what a single check found.
type CheckResult struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Status   Severity       `json:"status"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
	// FixHint tells the user how to resolve a warning or error.
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary counts results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) add(status Severity) {
	switch status {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	case SeverityError:
		s.Errors++
	}
}

func pass(msg string) *CheckResult {
	return &CheckResult{Status: SeverityPass, Message: msg}
}

func warn(msg, hint string) *CheckResult {
	return &CheckResult{Status: SeverityWarning, Message: msg, FixHint: hint}
}

func fail(msg, hint string) *CheckResult {
	return &CheckResult{Status: SeverityError, Message: msg, FixHint: hint}
}

func info(msg string) *CheckResult {
	return &CheckResult{Status: SeverityInfo, Message: msg}
}
