package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edudraft/edudraft-backend/internal/apierr"
	"github.com/edudraft/edudraft-backend/internal/clients/openai"
	"github.com/edudraft/edudraft-backend/internal/content"
	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/observability"
	"github.com/edudraft/edudraft-backend/internal/repos"
	"github.com/edudraft/edudraft-backend/internal/sse"
	"github.com/edudraft/edudraft-backend/internal/stream"
	"github.com/edudraft/edudraft-backend/internal/types"
)

// GenerationService sequences one credit-metered generation:
// balance pre-check, provider stream relay, validation, persistence, tag
// enrichment, ledger deduction, terminal event. Persistence always happens
// before deduction; a failed validation or persistence never charges.
type GenerationService interface {
	Precheck(ctx context.Context, userID uuid.UUID, kind content.Kind) (*types.User, int, error)
	Run(ctx context.Context, user *types.User, req GenerationRequest, enc *stream.Encoder)
}

type generationService struct {
	db  *gorm.DB
	log *logger.Logger

	userRepo    repos.UserRepo
	artifactSvc ArtifactService
	ledger      LedgerService
	ai          openai.Client
	emitter     SSEEmitter
	metrics     *observability.Metrics
}

func NewGenerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	artifactSvc ArtifactService,
	ledger LedgerService,
	ai openai.Client,
	emitter SSEEmitter,
	metrics *observability.Metrics,
) GenerationService {
	return &generationService{
		db:          db,
		log:         baseLog.With("service", "GenerationService"),
		userRepo:    userRepo,
		artifactSvc: artifactSvc,
		ledger:      ledger,
		ai:          ai,
		emitter:     emitter,
		metrics:     metrics,
	}
}

// Precheck runs before any stream is opened so rejections can go out as a
// plain structured response. The balance read here is advisory only; Deduct
// re-checks atomically at charge time.
func (gs *generationService) Precheck(ctx context.Context, userID uuid.UUID, kind content.Kind) (*types.User, int, error) {
	cost := content.CreditCost(kind)
	if cost == 0 {
		return nil, 0, apierr.New(http.StatusBadRequest, "invalid_kind", fmt.Errorf("unknown artifact kind %q", kind))
	}

	users, err := gs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, 0, apierr.New(http.StatusInternalServerError, "user_lookup_failed", err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, 0, apierr.New(http.StatusNotFound, "user_not_found", ErrAccountNotFound)
	}
	user := users[0]

	if user.CreditsBalance < cost {
		return nil, 0, apierr.New(http.StatusPaymentRequired, "insufficient_credits",
			&InsufficientCreditsError{Required: cost, Available: user.CreditsBalance})
	}
	return user, cost, nil
}

// Run drives the stream to its single terminal event. Every failure path
// after Start emits exactly one error event and skips the deduction; the
// one exception is a ledger failure after persistence, where the artifact
// is kept and the miss is logged for reconciliation.
func (gs *generationService) Run(ctx context.Context, user *types.User, req GenerationRequest, enc *stream.Encoder) {
	kind := req.Kind
	cost := content.CreditCost(kind)
	started := time.Now()

	if gs.metrics != nil {
		gs.metrics.GenerationsStarted.WithLabelValues(string(kind)).Inc()
	}
	outcome := "ok"
	defer func() {
		if gs.metrics != nil {
			gs.metrics.GenerationsFinished.WithLabelValues(string(kind), outcome).Inc()
			gs.metrics.GenerationSeconds.WithLabelValues(string(kind)).Observe(time.Since(started).Seconds())
		}
	}()

	fail := func(label, message string, err error) {
		outcome = label
		gs.log.Warn("Generation failed",
			"user_id", user.ID,
			"kind", kind,
			"outcome", label,
			"error", err,
		)
		_ = enc.Error(message)
	}

	system, userPrompt := BuildPrompt(req)
	_ = enc.Start(fmt.Sprintf("Generating %s...", strings.ReplaceAll(string(kind), "_", " ")))

	// Chunks are relayed in arrival order while the encoder accumulates
	// the full text for parsing once the provider finishes.
	_, err := gs.ai.StreamCompletion(ctx, system, userPrompt, func(delta string) {
		_ = enc.Chunk(delta)
	})
	if err != nil {
		fail("provider_error", "The model provider failed before the response completed. You have not been charged.", err)
		return
	}

	rawOutput := enc.Text()
	parsed, err := parseModelJSON(rawOutput)
	if err != nil {
		fail("schema_violation", "The model returned output that is not valid JSON. You have not been charged.", err)
		return
	}

	doc, err := content.Validate(kind, parsed)
	if err != nil {
		fail("schema_violation", fmt.Sprintf("Generation failed validation: %s. You have not been charged.", err.Error()), err)
		return
	}

	artifact, err := gs.artifactSvc.CreateFromDocument(ctx, nil, user.ID, doc, rawOutput, userPrompt)
	if err != nil {
		fail("persistence_error", "Saving the generated content failed. You have not been charged.", err)
		return
	}

	// Best-effort enrichment: tag failures never unwind a persisted
	// artifact.
	if tags := content.DeriveTags(doc); len(tags) > 0 {
		if err := gs.artifactSvc.SetTags(ctx, artifact.ID, tags); err != nil {
			gs.log.Warn("Tagging artifact failed", "artifact_id", artifact.ID, "error", err)
		} else {
			tagsJSON, _ := json.Marshal(tags)
			artifact.Tags = datatypes.JSON(tagsJSON)
		}
	}

	txn, err := gs.ledger.Deduct(ctx, user.ID, cost, fmt.Sprintf("%s generation: %s", kind, doc.Title))
	if err != nil {
		// The artifact stays; deleting delivered work over a billing
		// hiccup is worse than an uncharged generation.
		gs.log.Error("Ledger deduction failed after persistence; needs reconciliation",
			"user_id", user.ID,
			"artifact_id", artifact.ID,
			"cost", cost,
			"error", err,
		)
		if gs.metrics != nil {
			gs.metrics.LedgerReconcile.Inc()
		}
		fail("ledger_error", "The content was saved but charging your account failed. Support has been notified.", err)
		return
	}
	if gs.metrics != nil {
		gs.metrics.CreditsCharged.Add(float64(cost))
	}

	gs.notify(ctx, user.ID, artifact, txn)

	_ = enc.End(map[string]any{
		string(kind):      artifact,
		"file_id":         artifact.ID.String(),
		"file_type":       artifact.Kind,
		"credits_used":    cost,
		"credits_balance": txn.BalanceAfter,
	})

	gs.log.Info("Generation complete",
		"user_id", user.ID,
		"kind", kind,
		"artifact_id", artifact.ID,
		"credits_used", cost,
		"duration", time.Since(started).String(),
	)
}

func (gs *generationService) notify(ctx context.Context, userID uuid.UUID, artifact *types.Artifact, txn *types.CreditTransaction) {
	if gs.emitter == nil {
		return
	}
	gs.emitter.Emit(ctx, sse.SSEMessage{
		Channel: userID.String(),
		Event:   sse.SSEEventArtifactCreated,
		Data:    map[string]any{"artifact": artifact},
	})
	gs.emitter.Emit(ctx, sse.SSEMessage{
		Channel: userID.String(),
		Event:   sse.SSEEventCreditsChanged,
		Data: map[string]any{
			"balance":     txn.BalanceAfter,
			"transaction": txn,
		},
	})
}

// parseModelJSON tolerates the markdown fences models wrap JSON in despite
// instructions.
func parseModelJSON(raw string) (any, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	return parsed, nil
}
