// Package voice holds the speech/NLU collaborators: adapters that turn a
// recorded clip into a transcript and a transcript into structured estimate
// fragments. Every failure here is a recoverable external-service error; the
// editing session itself never goes down with the provider.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"evergreen_estimator/internal/domain/entities"
	"evergreen_estimator/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

var ErrMissingOpenAIKey = errors.New("missing OPENAI_API_KEY")

const parseSystemPrompt = "You are an intelligent construction estimate parser. " +
	"Analyze voice input and extract structured data for project details, line items, " +
	"and scope information. Return only valid JSON."

// OpenAIGateway implements both ITranscriber and IVoiceParser against the
// OpenAI HTTP API: audio transcription for speech-to-text and a JSON-mode
// chat completion for fragment extraction. One request per attempt; retries
// are the caller's decision, not the gateway's.
type OpenAIGateway struct {
	baseURL         string
	apiKey          string
	transcribeModel string
	parseModel      string
	httpClient      *http.Client
}

var (
	_ interfaces.ITranscriber = (*OpenAIGateway)(nil)
	_ interfaces.IVoiceParser = (*OpenAIGateway)(nil)
)

func NewOpenAIGateway() (*OpenAIGateway, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, ErrMissingOpenAIKey
	}

	baseURL := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	return &OpenAIGateway{
		baseURL:         strings.TrimRight(baseURL, "/"),
		apiKey:          apiKey,
		transcribeModel: getenvDefault("VOICE_TRANSCRIBE_MODEL", "whisper-1"),
		parseModel:      getenvDefault("VOICE_PARSE_MODEL", "gpt-4-turbo-preview"),
		httpClient:      &http.Client{Timeout: 90 * time.Second},
	}, nil
}

func (g *OpenAIGateway) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", clipFilename(mimeType))
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(audio); err != nil {
		return "", err
	}
	if err := mw.WriteField("model", g.transcribeModel); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/audio/transcriptions", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError("transcription", resp)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("transcription response: %w", err)
	}

	log.Debug().Int("audio_bytes", len(audio)).Int("transcript_len", len(out.Text)).Msg("audio transcribed")
	return out.Text, nil
}

func (g *OpenAIGateway) Parse(ctx context.Context, transcript string) (entities.VoiceParseResult, error) {
	payload := map[string]any{
		"model": g.parseModel,
		"messages": []map[string]string{
			{"role": "system", "content": parseSystemPrompt},
			{"role": "user", "content": buildParsePrompt(transcript)},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     0.2,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return entities.VoiceParseResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return entities.VoiceParseResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return entities.VoiceParseResult{}, fmt.Errorf("parse request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entities.VoiceParseResult{}, apiError("parse", resp)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return entities.VoiceParseResult{}, fmt.Errorf("parse response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return entities.VoiceParseResult{}, errors.New("parse response: no choices")
	}

	var result entities.VoiceParseResult
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &result); err != nil {
		return entities.VoiceParseResult{}, fmt.Errorf("parse content: %w", err)
	}
	if result.Type == "" {
		result.Type = entities.VoiceResultLineItems
	}
	result.Success = true
	return result, nil
}

func buildParsePrompt(transcript string) string {
	var b strings.Builder
	b.WriteString("Analyze the following transcription and extract relevant information for a construction estimate. Return ONLY valid JSON in this format:\n")
	b.WriteString(`{
  "type": "lineItems" | "projectDetails" | "scope" | "mixed",
  "items": [
    {"description": "item description", "quantity": number, "unitCost": number, "confidence": 0.0-1.0, "needsReview": boolean}
  ],
  "projectDetails": {
    "projectName": "string", "client": "string", "address": "string",
    "projectType": "Multi-Family" | "Townhome" | "Commercial TI",
    "buildings": number, "units": number, "bidDate": "YYYY-MM-DD"
  },
  "scope": {
    "inclusions": ["string"], "exclusions": ["string"],
    "deliveryTerms": ["string"], "comments": "string"
  }
}`)
	b.WriteString("\n\nTranscription: \"")
	b.WriteString(transcript)
	b.WriteString("\"\n\nANALYSIS INSTRUCTIONS:\n")
	b.WriteString("1. DETERMINE TYPE: \"lineItems\" for materials/costs/quantities, \"projectDetails\" for project name/client/address/dates, \"scope\" for inclusions/exclusions/delivery terms, \"mixed\" when several apply.\n")
	b.WriteString("2. FOR LINE ITEMS: look for quantities, descriptions and costs. If quantity is missing use 1. If cost is missing use 0 and set needsReview true.\n")
	b.WriteString("3. FOR PROJECT DETAILS: extract project name, client, address; identify the project type from context; extract building/unit counts; convert dates to YYYY-MM-DD.\n")
	b.WriteString("4. FOR SCOPE: identify inclusions, exclusions, delivery terms and general comments.\n")
	b.WriteString("5. CONFIDENCE & REVIEW: confidence 1.0 when very clear, lower when uncertain; needsReview true when any field is ambiguous or missing.\n")
	return b.String()
}

func apiError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s: openai status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(snippet)))
}

func clipFilename(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "wav"):
		return "audio.wav"
	case strings.Contains(mimeType, "mp3") || strings.Contains(mimeType, "mpeg"):
		return "audio.mp3"
	case strings.Contains(mimeType, "ogg"):
		return "audio.ogg"
	default:
		return "audio.webm"
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
