package voice

import (
	"context"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"evergreen_estimator/internal/usecase/interfaces"
)

// GCPTranscriber is the alternate speech-to-text provider, selected with
// VOICE_TRANSCRIBER=gcp. It only transcribes; fragment extraction still goes
// through the configured parser.
type GCPTranscriber struct {
	client   *speech.Client
	language string
}

var _ interfaces.ITranscriber = (*GCPTranscriber)(nil)

// NewGCPTranscriber authenticates via application-default credentials, or an
// explicit service-account file when GCP_SPEECH_CREDENTIALS_FILE is set.
func NewGCPTranscriber(ctx context.Context) (*GCPTranscriber, error) {
	var opts []option.ClientOption
	if f := strings.TrimSpace(os.Getenv("GCP_SPEECH_CREDENTIALS_FILE")); f != "" {
		opts = append(opts, option.WithCredentialsFile(f))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	return &GCPTranscriber{
		client:   client,
		language: getenvDefault("VOICE_LANGUAGE", "en-US"),
	}, nil
}

func (t *GCPTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               t.language,
			Encoding:                   inferEncoding(mimeType),
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", classifyGRPCError(err)
	}

	var full strings.Builder
	for _, r := range resp.GetResults() {
		alts := r.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		transcript := strings.TrimSpace(alts[0].GetTranscript())
		if transcript == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(transcript)
	}

	log.Debug().Int("audio_bytes", len(audio)).Int("transcript_len", full.Len()).Msg("audio transcribed via gcp speech")
	return full.String(), nil
}

func (t *GCPTranscriber) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}

func inferEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.Contains(m, "wav"):
		return speechpb.RecognitionConfig_LINEAR16
	case strings.Contains(m, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(m, "mp3") || strings.Contains(m, "mpeg"):
		return speechpb.RecognitionConfig_MP3
	case strings.Contains(m, "ogg"), strings.Contains(m, "opus"), strings.Contains(m, "webm"):
		return speechpb.RecognitionConfig_OGG_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}

// classifyGRPCError keeps the user-facing diagnostic specific: a credential
// problem reads differently from a transient outage.
func classifyGRPCError(err error) error {
	switch status.Code(err) {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("speech credentials rejected: %w", err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("speech service unavailable: %w", err)
	case codes.InvalidArgument:
		return fmt.Errorf("unsupported audio: %w", err)
	default:
		return fmt.Errorf("speech recognize: %w", err)
	}
}
