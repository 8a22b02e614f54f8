package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"evergreen_estimator/internal/domain/entities"
	"evergreen_estimator/internal/domain/mutate"
	"evergreen_estimator/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrVoiceServiceFailure = errors.New("voice service failure")
	ErrNoVoiceContent      = errors.New("no usable voice content")
	ErrEmptyAudio          = errors.New("empty audio clip")
)

// VoiceCategory tags line items that came in through the voice pipeline so
// the editor can show their origin.
const VoiceCategory = "Voice Input"

// VoiceMergeOutcome summarizes one applied voice clip: the new snapshot plus
// what the merge actually did, so the caller can build a status message.
type VoiceMergeOutcome struct {
	Estimate       entities.Estimate
	Result         entities.VoiceParseResult
	Transcript     string
	ItemsAdded     int
	DetailsUpdated bool
	ScopeUpdated   bool
}

// IVoiceUseCase turns a recorded clip into one atomic batch mutation of the
// estimate. Nothing is applied when transcription or parsing fails; the
// stored snapshot is only replaced once with everything the clip produced.
type IVoiceUseCase interface {
	ProcessClip(ctx context.Context, estimateID string, audio []byte, mimeType string) (VoiceMergeOutcome, error)
}

type VoiceUseCase struct {
	repo        interfaces.IEstimateRepository
	transcriber interfaces.ITranscriber
	parser      interfaces.IVoiceParser
}

var _ IVoiceUseCase = (*VoiceUseCase)(nil)

func NewVoiceUseCase(repo interfaces.IEstimateRepository, transcriber interfaces.ITranscriber, parser interfaces.IVoiceParser) *VoiceUseCase {
	return &VoiceUseCase{repo: repo, transcriber: transcriber, parser: parser}
}

func (u *VoiceUseCase) ProcessClip(ctx context.Context, estimateID string, audio []byte, mimeType string) (VoiceMergeOutcome, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return VoiceMergeOutcome{}, ErrInvalidEstimateID
	}
	if len(audio) == 0 {
		return VoiceMergeOutcome{}, ErrEmptyAudio
	}
	if u.transcriber == nil || u.parser == nil {
		return VoiceMergeOutcome{}, fmt.Errorf("%w: voice gateway not configured", ErrVoiceServiceFailure)
	}

	e, err := u.repo.GetByID(ctx, estimateID)
	if err != nil {
		return VoiceMergeOutcome{}, err
	}
	if e.ID == "" {
		return VoiceMergeOutcome{}, ErrEstimateNotFound
	}

	transcript, err := u.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		log.Error().Err(err).Str("estimate_id", estimateID).Msg("voice transcription failed")
		return VoiceMergeOutcome{}, fmt.Errorf("%w: %v", ErrVoiceServiceFailure, err)
	}
	if strings.TrimSpace(transcript) == "" {
		return VoiceMergeOutcome{}, ErrNoVoiceContent
	}

	result, err := u.parser.Parse(ctx, transcript)
	if err != nil {
		log.Error().Err(err).Str("estimate_id", estimateID).Msg("voice parse failed")
		return VoiceMergeOutcome{}, fmt.Errorf("%w: %v", ErrVoiceServiceFailure, err)
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "parser reported failure"
		}
		return VoiceMergeOutcome{}, fmt.Errorf("%w: %s", ErrVoiceServiceFailure, msg)
	}

	outcome := VoiceMergeOutcome{Result: result, Transcript: transcript}

	// All fragments land on one snapshot, saved once, so a clip can never be
	// half applied.
	if len(result.Items) > 0 {
		items := make([]entities.LineItem, 0, len(result.Items))
		for _, parsed := range result.Items {
			items = append(items, entities.LineItem{
				ID:          uuid.NewString(),
				Category:    VoiceCategory,
				Description: parsed.Description,
				Quantity:    sanitizeQuantity(parsed.Quantity),
				UnitCost:    sanitizeUnitCost(parsed.UnitCost),
			})
		}
		e, err = mutate.AddLineItems(e, items)
		if err != nil {
			return VoiceMergeOutcome{}, err
		}
		outcome.ItemsAdded = len(items)
	}

	if patch := detailsPatchFromVoice(result.ProjectDetails); !patch.Empty() {
		e = mutate.UpdateDetails(e, patch)
		outcome.DetailsUpdated = true
	}

	if patch := scopePatchFromVoice(result.Scope, e.Scope); !patch.Empty() {
		e = mutate.UpdateScope(e, patch)
		outcome.ScopeUpdated = true
	}

	if outcome.ItemsAdded == 0 && !outcome.DetailsUpdated && !outcome.ScopeUpdated {
		return VoiceMergeOutcome{}, ErrNoVoiceContent
	}

	saved, err := u.repo.Save(ctx, e)
	if err != nil {
		return VoiceMergeOutcome{}, err
	}
	outcome.Estimate = saved

	log.Info().Str("estimate_id", estimateID).
		Int("items_added", outcome.ItemsAdded).
		Bool("details_updated", outcome.DetailsUpdated).
		Bool("scope_updated", outcome.ScopeUpdated).
		Msg("voice clip merged")
	return outcome, nil
}

// sanitizeQuantity falls back to 1 when the parser produced no usable
// quantity, matching the extraction prompt's own default.
func sanitizeQuantity(q float64) float64 {
	if q <= 0 {
		return 1
	}
	return q
}

func sanitizeUnitCost(c float64) float64 {
	if c < 0 {
		return 0
	}
	return c
}

// detailsPatchFromVoice validates the partial project fields before merge:
// unknown project types and non-positive counts are dropped rather than
// trusted blindly.
func detailsPatchFromVoice(d *entities.VoiceParsedProjectDetails) mutate.DetailsPatch {
	patch := mutate.DetailsPatch{}
	if d == nil {
		return patch
	}
	if d.ProjectName != nil && strings.TrimSpace(*d.ProjectName) != "" {
		patch.ProjectName = d.ProjectName
	}
	if d.Client != nil && strings.TrimSpace(*d.Client) != "" {
		patch.Client = d.Client
	}
	if d.Address != nil && strings.TrimSpace(*d.Address) != "" {
		patch.Address = d.Address
	}
	if d.BidDate != nil && strings.TrimSpace(*d.BidDate) != "" {
		patch.BidDate = d.BidDate
	}
	if d.ProjectType != nil && entities.ValidProjectType(*d.ProjectType) {
		patch.ProjectType = d.ProjectType
	}
	if d.Buildings != nil && *d.Buildings >= 1 {
		patch.Buildings = d.Buildings
	}
	if d.Units != nil && *d.Units >= 1 {
		patch.Units = d.Units
	}
	return patch
}

// scopePatchFromVoice appends spoken scope lines to the current sections.
// A clip adds to the narrative; it never wipes what the editor already holds.
func scopePatchFromVoice(s *entities.VoiceParsedScope, current entities.ScopeDetails) mutate.ScopePatch {
	patch := mutate.ScopePatch{}
	if s == nil {
		return patch
	}
	if len(s.Inclusions) > 0 {
		patch.Inclusions = append(append([]string{}, current.Inclusions...), s.Inclusions...)
	}
	if len(s.Exclusions) > 0 {
		patch.Exclusions = append(append([]string{}, current.Exclusions...), s.Exclusions...)
	}
	if len(s.DeliveryTerms) > 0 {
		patch.DeliveryTerms = append(append([]string{}, current.DeliveryTerms...), s.DeliveryTerms...)
	}
	if s.Comments != nil && strings.TrimSpace(*s.Comments) != "" {
		patch.Comments = s.Comments
	}
	return patch
}
