package llm

import (
	"context"
	"fmt"

	"github.com/calscribe/calscribe/internal/model"
)

// MockExtractor replays a canned JSON response through the same parser the
// live client uses, so regression fixtures exercise the full decode path.
type MockExtractor struct {
	Response []byte

	// Err, when set, is returned instead of a result.
	Err error

	// Calls counts ExtractEvents invocations.
	Calls int
}

func (m *MockExtractor) ExtractEvents(_ context.Context, _ ExtractRequest) (*model.ExtractionResult, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Response) == 0 {
		return nil, fmt.Errorf("mock extractor has no canned response")
	}
	return ParseResponse(m.Response)
}
