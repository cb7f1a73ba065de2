package constants

// WorkflowState is the state of a single extraction run.
type WorkflowState string

const (
	StateIdle       WorkflowState = "idle"
	StateProcessing WorkflowState = "processing"
	// StateValidatingEntities holds both the client and agent match results until the caller accepts.
	StateValidatingEntities WorkflowState = "validating-entities"
	StateComplete           WorkflowState = "complete"
	StateError              WorkflowState = "error"
)

// ExtractionMethod records which path produced a record.
type ExtractionMethod string

const (
	MethodStructured    ExtractionMethod = "structured"
	MethodFallbackText  ExtractionMethod = "fallback-text"
	MethodFallbackImage ExtractionMethod = "fallback-image"
)
