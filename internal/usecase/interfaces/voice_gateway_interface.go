package interfaces

import (
	"context"

	"evergreen_estimator/internal/domain/entities"
)

// ITranscriber turns a recorded audio clip into text. One failed attempt is
// one reported error; no retries happen behind this interface.
type ITranscriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// IVoiceParser extracts structured estimate fragments from a transcript.
// The result is validated by the merge layer before being applied; the
// parser itself is trusted only as far as returning well-formed records.
type IVoiceParser interface {
	Parse(ctx context.Context, transcript string) (entities.VoiceParseResult, error)
}
