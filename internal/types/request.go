package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params" binding:"required"`
}

// WSMessage represents a WebSocket message. ID is echoed back on every
// reply so a client can match responses to the edit that caused them.
type WSMessage struct {
	Type   string                 `json:"type"`
	ID     string                 `json:"id,omitempty"`
	ToolID string                 `json:"tool_id,omitempty"`
	Params map[string]interface{} `json:"params,omitempty"`
}
