package common

const (
	// MaxRequestBody limits JSON request bodies for submission endpoints.
	MaxRequestBody = 1 << 20
)
