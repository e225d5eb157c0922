package responses

// Envelope wraps every successful report body.
type Envelope struct {
	Data any `json:"data"`
}

// ErrorBody is the public part of a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}
