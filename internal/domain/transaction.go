package domain

import "time"

// TransactionStage labels where in the pipeline an event was emitted.
type TransactionStage string

const (
	StagePreDispatch     TransactionStage = "pre_dispatch"
	StagePostDispatch    TransactionStage = "post_dispatch"
	StageRepairAttempted TransactionStage = "repair_attempted"
	StageAudit           TransactionStage = "audit"
)

// TransactionEvent is one structured record consumed by the recorder sink.
// Failure to record an event must never fail the command that produced it.
type TransactionEvent struct {
	ID         string           `json:"id"`
	Timestamp  time.Time        `json:"timestamp"`
	Stage      TransactionStage `json:"stage"`
	Input      string           `json:"input"`
	ActionID   string           `json:"action_id"`
	HandlerID  string           `json:"handler_id"`
	Confidence float64          `json:"confidence"`
	Success    bool             `json:"success"`
	Entities   []Entity         `json:"entities,omitempty"`
	ErrorKind  ErrorKind        `json:"error_kind,omitempty"`
	RetryCount int              `json:"retry_count"`
	Message    string           `json:"message,omitempty"`
}

// RepairEvent records one pass through the self-healing loop.
type RepairEvent struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	OriginalInput  string    `json:"original_input"`
	OriginalAction string    `json:"original_action"`
	ErrorKind      ErrorKind `json:"error_kind"`
	ErrorMessage   string    `json:"error_message"`
	SuggestedInput string    `json:"suggested_input"`
	Accepted       bool      `json:"accepted"`
	RetryCount     int       `json:"retry_count"`
}
