// Package advisor turns aggregated forecast series into planting,
// irrigation and general farming recommendations. All evaluators are pure
// functions over the series and the static crop profile table.
package advisor

// Severity tags a single advisory reason line.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityBlocking
)

// Marker returns the emoji prefix used in farmer-facing text.
func (s Severity) Marker() string {
	switch s {
	case SeverityWarning:
		return "⚠️"
	case SeverityBlocking:
		return "❌"
	default:
		return "✅"
	}
}

// Reason is one line of an advisory verdict.
type Reason struct {
	Severity Severity
	Text     string
}

func (r Reason) String() string {
	return r.Marker() + " " + r.Text
}

func (r Reason) Marker() string {
	return r.Severity.Marker()
}

// Outcome is the categorical result of an evaluation.
type Outcome int

const (
	// OutcomeWait means conditions are not right yet, or there is not
	// enough data to judge.
	OutcomeWait Outcome = iota
	OutcomeFavorable
	OutcomeUnfavorable
)

// Verdict is the outcome of a recommendation evaluation together with its
// ordered, severity-tagged reasons.
type Verdict struct {
	Outcome Outcome
	Reasons []Reason
}

func (v *Verdict) add(sev Severity, text string) {
	v.Reasons = append(v.Reasons, Reason{Severity: sev, Text: text})
}

// flagWrite records one rule block's decision to set the planting flag.
// A nil entry means the rule block did not touch the flag.
type flagWrite *bool

func writeFlag(v bool) flagWrite {
	return &v
}

// resolvePlantingFlag folds an ordered list of flag writes into the final
// planting decision. Later writes override earlier ones; rules that did not
// write are skipped. This reproduces the sequential-check semantics the
// per-crop rules depend on (for example, a rainfall override for beans
// cancels an earlier favorable temperature write, while for maize a
// rainfall warning never flips the flag back).
func resolvePlantingFlag(writes []flagWrite) bool {
	res := false
	for _, w := range writes {
		if w != nil {
			res = *w
		}
	}
	return res
}
