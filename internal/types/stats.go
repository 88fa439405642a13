package types

type Outcome struct {
	ErrorCount   int
	WarningCount int
	ExitCode     int
}

// RuleStats counts findings per rule. Parse failures are grouped under an empty rule.
type RuleStats struct {
	Rule     string
	Errors   int
	Warnings int
}

func (r RuleStats) Count() int {
	return r.Errors + r.Warnings
}
