package provider

const (
	// ProviderGeminiAI identifies Google Gemini API
	ProviderGeminiAI = "gemini"
)
