package model

import "time"

// ValidationResult is the rule-based validator's verdict on a submission.
// Violations are data, never errors: all broken rules accumulate.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// CheckResult is the reconciled input check: rule-based findings merged
// with the model's semantic judgment, tool truth taking precedence.
type CheckResult struct {
	Valid            bool     `json:"valid"`
	Errors           []string `json:"errors"`
	MessageToManager string   `json:"message_to_manager,omitempty"`
}

// PipelineStatus is the terminal disposition of one pipeline run.
type PipelineStatus string

const (
	// StatusAccepted means the last extraction pass showed zero discrepancies.
	StatusAccepted PipelineStatus = "accepted"

	// StatusExhausted means the revision budget ran out (or the run was
	// cancelled / extraction failed) with discrepancies still open.
	StatusExhausted PipelineStatus = "exhausted"

	// StatusInvalidInput means the input check rejected the submission
	// before any draft was produced.
	StatusInvalidInput PipelineStatus = "invalid_input"
)

// PipelineResult is the serializable artifact of a full pipeline run.
// Everything in it is a plain structure: no provider response objects.
type PipelineResult struct {
	RunID      string          `json:"run_id"`
	Status     PipelineStatus  `json:"status"`
	ManagerID  string          `json:"manager_id"`
	Employee   string          `json:"employee"`
	Validation CheckResult     `json:"validation"`
	Draft      string          `json:"draft,omitempty"`
	Evidence   *EvidenceBundle `json:"evidence,omitempty"` // Terminal bundle, possibly stale
	Revisions  int             `json:"revisions"`
	Reason     string          `json:"reason,omitempty"` // Why a non-accepted run stopped
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}
