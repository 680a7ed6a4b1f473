package server

// Msg is one websocket frame.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Message types.
const (
	TypeResolve  = "resolve"
	TypeResolved = "resolved"
	TypeRankine  = "rankine"
	TypeError    = "error"
)

// Error codes carried by error replies that do not come from the resolver.
const (
	CodeBadRequest  = "E_BAD_REQUEST"
	CodeUnknownType = "E_UNKNOWN_TYPE"
	CodeInternal    = "E_INTERNAL"
)

// ErrorContent is the content of an error reply.
type ErrorContent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
