package gate

// #region veto-type
// VetoType enumerates hard veto categories.
type VetoType string

const (
	VetoEmptySamples VetoType = "empty_samples"
	VetoNumeric      VetoType = "numeric_violation"
	VetoSupport      VetoType = "support_violation"
)

// #endregion veto-type

// #region veto-signal
// VetoSignal represents a detected hard veto condition.
type VetoSignal struct {
	Type   VetoType
	Reason string
}

// #endregion veto-signal

// #region gate-config
// GateConfig holds thresholds for gate decisions.
type GateConfig struct {
	MaxAbsError float64 // soft: scales the Monte-Carlo error into the soft score
}

// DefaultGateConfig returns defaults matched to the 10k-draw calibration run.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		MaxAbsError: 0.02,
	}
}

// #endregion gate-config

// #region gate-decision
// GateDecision is the output of the gate evaluation.
type GateDecision struct {
	Action      string // "commit" | "reject"
	Reason      string
	Vetoed      bool
	VetoSignals []VetoSignal // non-empty if vetoed
	SoftScore   float64      // 0-1 margin of the Monte-Carlo error (for logging)
}

// #endregion gate-decision
