package models

// ProcessRequest is the payload accepted by the conversation endpoint.
type ProcessRequest struct {
	Conversation string `json:"conversation" validate:"required"`
}

// ProcessResult bundles the three records produced by one pipeline run.
type ProcessResult struct {
	User      *User                `json:"user"`
	Analytics *UserAnalytics       `json:"analytics"`
	History   *ConversationHistory `json:"conversation_history"`
}

// BudgetRequest is the payload for the standalone budget formatting utility.
type BudgetRequest struct {
	Budget string `json:"budget" validate:"required"`
}

// TranscriptEvent is the Kafka envelope for completed-call transcripts.
type TranscriptEvent struct {
	Pattern string         `json:"pattern"`
	Data    TranscriptData `json:"data"`
}

type TranscriptData struct {
	CallID       string `json:"call_id"`
	Conversation string `json:"conversation"`
}
