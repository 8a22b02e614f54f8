package usecase

import (
	"context"
	"errors"
	"testing"

	"evergreen_estimator/internal/domain/entities"
	mock_interfaces "evergreen_estimator/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func voiceMocks(t *testing.T) (*gomock.Controller, *mock_interfaces.MockIEstimateRepository, *mock_interfaces.MockITranscriber, *mock_interfaces.MockIVoiceParser) {
	ctrl := gomock.NewController(t)
	return ctrl,
		mock_interfaces.NewMockIEstimateRepository(ctrl),
		mock_interfaces.NewMockITranscriber(ctrl),
		mock_interfaces.NewMockIVoiceParser(ctrl)
}

func TestVoiceUseCase_ProcessClip(t *testing.T) {
	audio := []byte("clip")

	t.Run("invalid estimate id", func(t *testing.T) {
		uc := NewVoiceUseCase(nil, nil, nil)
		_, err := uc.ProcessClip(context.Background(), "  ", audio, "audio/webm")
		if !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("empty audio", func(t *testing.T) {
		uc := NewVoiceUseCase(nil, nil, nil)
		_, err := uc.ProcessClip(context.Background(), "est-1", nil, "audio/webm")
		if !errors.Is(err, ErrEmptyAudio) {
			t.Fatalf("expected ErrEmptyAudio, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewVoiceUseCase(repo, nil, nil)

		_, err := uc.ProcessClip(context.Background(), "est-1", audio, "audio/webm")
		if !errors.Is(err, ErrVoiceServiceFailure) {
			t.Fatalf("expected ErrVoiceServiceFailure, got %v", err)
		}
	})

	t.Run("estimate not found", func(t *testing.T) {
		ctrl, repo, tr, pr := voiceMocks(t)
		defer ctrl.Finish()
		uc := NewVoiceUseCase(repo, tr, pr)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{}, nil)

		_, err := uc.ProcessClip(context.Background(), "est-1", audio, "audio/webm")
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("transcription failure, nothing saved", func(t *testing.T) {
		ctrl, repo, tr, pr := voiceMocks(t)
		defer ctrl.Finish()
		uc := NewVoiceUseCase(repo, tr, pr)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedEstimate(), nil)
		tr.EXPECT().Transcribe(gomock.Any(), audio, "audio/webm").Return("", errors.New("upstream 500"))

		_, err := uc.ProcessClip(context.Background(), "est-1", audio, "audio/webm")
		if !errors.Is(err, ErrVoiceServiceFailure) {
			t.Fatalf("expected ErrVoiceServiceFailure, got %v", err)
		}
	})

	t.Run("blank transcript", func(t *testing.T) {
		ctrl, repo, tr, pr := voiceMocks(t)
		defer ctrl.Finish()
		uc := NewVoiceUseCase(repo, tr, pr)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedEstimate(), nil)
		tr.EXPECT().Transcribe(gomock.Any(), audio, "audio/webm").Return("   ", nil)

		_, err := uc.ProcessClip(context.Background(), "est-1", audio, "audio/webm")
		if !errors.Is(err, ErrNoVoiceContent) {
			t.Fatalf("expected ErrNoVoiceContent, got %v", err)
		}
	})

	t.Run("parser reported failure, nothing saved", func(t *testing.T) {
		ctrl, repo, tr, pr := voiceMocks(t)
		defer ctrl.Finish()
		uc := NewVoiceUseCase(repo, tr, pr)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedEstimate(), nil)
		tr.EXPECT().Transcribe(gomock.Any(), audio, "audio/webm").Return("gibberish", nil)
		pr.EXPECT().Parse(gomock.Any(), "gibberish").Return(entities.VoiceParseResult{
			Success: false, Error: "could not extract anything",
		}, nil)

		_, err := uc.ProcessClip(context.Background(), "est-1", audio, "audio/webm")
		if !errors.Is(err, ErrVoiceServiceFailure) {
			t.Fatalf("expected ErrVoiceServiceFailure, got %v", err)
		}
	})

	t.Run("no usable fragments", func(t *testing.T) {
		ctrl, repo, tr, pr := voiceMocks(t)
		defer ctrl.Finish()
		uc := NewVoiceUseCase(repo, tr, pr)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedEstimate(), nil)
		tr.EXPECT().Transcribe(gomock.Any(), audio, "audio/webm").Return("hello there", nil)
		pr.EXPECT().Parse(gomock.Any(), "hello there").Return(entities.VoiceParseResult{
			Type: entities.VoiceResultLineItems, Success: true,
		}, nil)

		_, err := uc.ProcessClip(context.Background(), "est-1", audio, "audio/webm")
		if !errors.Is(err, ErrNoVoiceContent) {
			t.Fatalf("expected ErrNoVoiceContent, got %v", err)
		}
	})

	t.Run("line items merged atomically under voice category", func(t *testing.T) {
		ctrl, repo, tr, pr := voiceMocks(t)
		defer ctrl.Finish()
		uc := NewVoiceUseCase(repo, tr, pr)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedEstimate(), nil)
		tr.EXPECT().Transcribe(gomock.Any(), audio, "audio/webm").Return("add ten base cabinets at 250 each", nil)
		pr.EXPECT().Parse(gomock.Any(), gomock.Any()).Return(entities.VoiceParseResult{
			Type:    entities.VoiceResultLineItems,
			Success: true,
			Items: []entities.VoiceParsedItem{
				{Description: "base cabinets", Quantity: 10, UnitCost: 250},
				{Description: "crown molding", Quantity: 0, UnitCost: -5},
			},
		}, nil)

		var saved entities.Estimate
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				saved = e
				return e, nil
			})

		outcome, err := uc.ProcessClip(context.Background(), "est-1", audio, "audio/webm")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome.ItemsAdded != 2 {
			t.Fatalf("expected 2 items added, got %d", outcome.ItemsAdded)
		}
		if len(saved.LineItems) != 3 {
			t.Fatalf("expected 3 items in saved snapshot, got %d", len(saved.LineItems))
		}
		first := saved.LineItems[1]
		if first.Category != VoiceCategory || first.Total != 2500 {
			t.Fatalf("unexpected merged item %+v", first)
		}
		// Sanitized: zero quantity becomes 1, negative unit cost becomes 0.
		second := saved.LineItems[2]
		if second.Quantity != 1 || second.UnitCost != 0 {
			t.Fatalf("expected sanitized item, got %+v", second)
		}
	})

	t.Run("mixed result saves once", func(t *testing.T) {
		ctrl, repo, tr, pr := voiceMocks(t)
		defer ctrl.Finish()
		uc := NewVoiceUseCase(repo, tr, pr)

		name := "Maple Court Phase 2"
		badType := entities.ProjectType("Castle")
		stored := storedEstimate()
		stored.Scope.Inclusions = []string{"base cabinets"}

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(stored, nil)
		tr.EXPECT().Transcribe(gomock.Any(), audio, "audio/webm").Return("transcript", nil)
		pr.EXPECT().Parse(gomock.Any(), "transcript").Return(entities.VoiceParseResult{
			Type:    entities.VoiceResultMixed,
			Success: true,
			Items: []entities.VoiceParsedItem{
				{Description: "island panels", Quantity: 4, UnitCost: 120},
			},
			ProjectDetails: &entities.VoiceParsedProjectDetails{
				ProjectName: &name,
				ProjectType: &badType,
			},
			Scope: &entities.VoiceParsedScope{
				Exclusions: []string{"appliances"},
			},
		}, nil)

		var saved entities.Estimate
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				saved = e
				return e, nil
			}).Times(1)

		outcome, err := uc.ProcessClip(context.Background(), "est-1", audio, "audio/webm")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !outcome.DetailsUpdated || !outcome.ScopeUpdated || outcome.ItemsAdded != 1 {
			t.Fatalf("unexpected outcome %+v", outcome)
		}
		if saved.ProjectName != name {
			t.Fatalf("expected project name merged, got %q", saved.ProjectName)
		}
		// Unknown project type is dropped, not trusted.
		if saved.ProjectType != entities.ProjectTypeMultiFamily {
			t.Fatalf("expected project type untouched, got %q", saved.ProjectType)
		}
		// Voice scope lines append to what the editor already holds.
		if len(saved.Scope.Inclusions) != 1 || len(saved.Scope.Exclusions) != 1 {
			t.Fatalf("unexpected scope %+v", saved.Scope)
		}
	})

	t.Run("save failure surfaces", func(t *testing.T) {
		ctrl, repo, tr, pr := voiceMocks(t)
		defer ctrl.Finish()
		uc := NewVoiceUseCase(repo, tr, pr)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(storedEstimate(), nil)
		tr.EXPECT().Transcribe(gomock.Any(), audio, "audio/webm").Return("transcript", nil)
		pr.EXPECT().Parse(gomock.Any(), "transcript").Return(entities.VoiceParseResult{
			Type:    entities.VoiceResultLineItems,
			Success: true,
			Items:   []entities.VoiceParsedItem{{Description: "shelf", Quantity: 1, UnitCost: 10}},
		}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Estimate{}, errors.New("db"))

		if _, err := uc.ProcessClip(context.Background(), "est-1", audio, "audio/webm"); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}
