package gemini

const geminiEndpoint = "https://generativelanguage.googleapis.com/%v/models"

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-1.5-flash"
	// DefaultVersion is the REST API version segment.
	DefaultVersion = "v1beta"

	roleModel = "model"
)
