package entity

import "github.com/joseph-ayodele/policy-intake/constants"

// ClassificationResult is the classifier's issuer/product guess.
type ClassificationResult struct {
	Issuer          constants.Issuer  `json:"issuer"`
	Product         constants.Product `json:"product"`
	AnalyzedExcerpt string            `json:"analyzed_excerpt"`
}

// ExtractionOutcome is what a workflow run hands back to the caller.
type ExtractionOutcome struct {
	Record                     PolicyRecord               `json:"record"`
	Classification             ClassificationResult       `json:"classification"`
	Method                     constants.ExtractionMethod `json:"method"`
	MatchedClient              *ClientRef                 `json:"matched_client,omitempty"`
	MatchedAgent               *AgentRef                  `json:"matched_agent,omitempty"`
	AgentCodeAlreadyRegistered bool                       `json:"agent_code_already_registered"`
}
