package bridge

// Request is the wire envelope carried by every transport. Params is the raw
// parameter object; each method decodes it into its own typed struct before
// touching any tree state.
type Request struct {
	Method    string         `json:"method"`
	Params    map[string]any `json:"params"`
	RequestID string         `json:"requestId,omitempty"`
}

// Response is the uniform reply envelope. Exactly one of Data or Error/Code
// is populated. RequestID echoes the request's token verbatim when present,
// enabling correlation over fire-and-forget transports.
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func ok(requestID string, data any) Response {
	return Response{Success: true, Data: data, RequestID: requestID}
}

func fail(requestID, code, message string) Response {
	return Response{Success: false, Error: message, Code: code, RequestID: requestID}
}
