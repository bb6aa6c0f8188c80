package llm

import "context"

// Model generates a completion for a chat request.
type Model interface {
	Generate(ctx context.Context, request *GenerateRequest) (*GenerateResponse, error)
	Implements(feature string) bool
}

// ModelFunc adapts a plain function to Model; it implements no features.
type ModelFunc func(ctx context.Context, request *GenerateRequest) (*GenerateResponse, error)

func (f ModelFunc) Generate(ctx context.Context, request *GenerateRequest) (*GenerateResponse, error) {
	return f(ctx, request)
}

func (f ModelFunc) Implements(string) bool { return false }
