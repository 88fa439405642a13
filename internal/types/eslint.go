package types

// ESLintMessage is one entry of the "messages" array in `eslint --format json`.
type ESLintMessage struct {
	RuleID    *string `json:"ruleId"`
	Severity  int     `json:"severity"`
	Message   string  `json:"message"`
	Line      int     `json:"line"`
	Column    int     `json:"column"`
	EndLine   int     `json:"endLine,omitempty"`
	EndColumn int     `json:"endColumn,omitempty"`
	Fatal     bool    `json:"fatal,omitempty"`
}

type ESLintResult struct {
	FilePath            string          `json:"filePath"`
	Messages            []ESLintMessage `json:"messages"`
	ErrorCount          int             `json:"errorCount"`
	WarningCount        int             `json:"warningCount"`
	FixableErrorCount   int             `json:"fixableErrorCount"`
	FixableWarningCount int             `json:"fixableWarningCount"`
	Output              string          `json:"output,omitempty"`
}

// Severity of a Finding. Values match ESLint's numeric levels.
type Severity int

const (
	SeverityWarning Severity = 1
	SeverityError   Severity = 2
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Finding is one issue reported by the engine. RuleID is nil for parse failures.
type Finding struct {
	FilePath string
	RuleID   *string
	Severity Severity
	Message  string
	Line     int
	Column   int
	Fatal    bool
}

// Rule returns the rule identifier or an empty string.
func (f Finding) Rule() string {
	if f.RuleID == nil {
		return ""
	}
	return *f.RuleID
}

// FindingFromMessage converts an ESLint message. Anything that is not a
// warning is treated as an error so that unknown levels can never pass silently.
func FindingFromMessage(filePath string, m ESLintMessage) Finding {
	severity := SeverityError
	if m.Severity == int(SeverityWarning) && !m.Fatal {
		severity = SeverityWarning
	}
	return Finding{
		FilePath: filePath,
		RuleID:   m.RuleID,
		Severity: severity,
		Message:  m.Message,
		Line:     m.Line,
		Column:   m.Column,
		Fatal:    m.Fatal,
	}
}
