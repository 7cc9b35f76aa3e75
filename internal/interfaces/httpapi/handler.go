package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/fairwaypot/settlement/internal/domain/ledger"
	"github.com/fairwaypot/settlement/internal/platform/logging"
	"github.com/fairwaypot/settlement/internal/usecase"
)

// SweepScheduler enqueues a deferred settlement-sweep job on the external
// job queue. Nil means self-scheduling is disabled.
type SweepScheduler interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

const sweepJobPath = "/v1/internal/jobs/settlement-sweep"

type Handler struct {
	settlementService *usecase.SettlementService
	ledgerRepo        ledger.Repository
	scheduler         SweepScheduler
	resweepDelay      time.Duration
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	settlementService *usecase.SettlementService,
	ledgerRepo ledger.Repository,
	scheduler SweepScheduler,
	resweepDelay time.Duration,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		settlementService: settlementService,
		ledgerRepo:        ledgerRepo,
		scheduler:         scheduler,
		resweepDelay:      resweepDelay,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type settlementSweepRequest struct {
	// TournamentID narrows the sweep to one tournament, for manual re-runs.
	TournamentID string `json:"tournament_id" validate:"omitempty,max=64"`
	// ScheduleNext asks the handler to enqueue the next periodic sweep.
	ScheduleNext bool   `json:"schedule_next"`
	DispatchID   string `json:"dispatch_id" validate:"omitempty,max=128"`
}

func (h *Handler) RunSettlementSweep(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSettlementSweep")
	defer span.End()

	req, err := decodeSettlementSweepRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.settlementService.RunSweep(ctx, usecase.SweepInput{
		TournamentID: req.TournamentID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "settlement sweep job failed",
			"tournament_id", req.TournamentID,
			"dispatch_id", req.DispatchID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	if req.ScheduleNext {
		h.scheduleNextSweep(ctx)
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// scheduleNextSweep chains the periodic sweep through the job queue. The
// deduplication id buckets requests by delay window, so retried deliveries of
// one run cannot fan out into parallel schedules.
func (h *Handler) scheduleNextSweep(ctx context.Context) {
	if h.scheduler == nil || h.resweepDelay <= 0 {
		h.logger.WarnContext(ctx, "sweep self-scheduling requested but not configured")
		return
	}

	dedupID := fmt.Sprintf("settlement-sweep-%d", time.Now().UTC().Truncate(h.resweepDelay).Unix())
	payload := settlementSweepRequest{ScheduleNext: true, DispatchID: dedupID}
	if err := h.scheduler.Enqueue(ctx, sweepJobPath, payload, h.resweepDelay, dedupID); err != nil {
		h.logger.ErrorContext(ctx, "enqueue next settlement sweep failed",
			"dedup_id", dedupID,
			"error", err,
		)
		return
	}
}

type transactionDTO struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Value        int64     `json:"value"`
	Type         string    `json:"type"`
	TournamentID string    `json:"tournamentId,omitempty"`
	LeagueID     string    `json:"leagueId"`
	TeamID       string    `json:"teamId,omitempty"`
	Position     int       `json:"position,omitempty"`
	Pot          int64     `json:"pot,omitempty"`
	Percentage   float64   `json:"percentage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (h *Handler) ListUserTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUserTransactions")
	defer span.End()

	userID := r.PathValue("userID")
	if userID == "" {
		writeError(ctx, w, fmt.Errorf("%w: user id is required", usecase.ErrInvalidInput))
		return
	}

	entries, err := h.ledgerRepo.ListByUser(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list user transactions failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]transactionDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, transactionDTO{
			ID:           entry.ID,
			UserID:       entry.UserID,
			Value:        entry.Value,
			Type:         entry.Type,
			TournamentID: entry.TournamentID,
			LeagueID:     entry.LeagueID,
			TeamID:       entry.TeamID,
			Position:     entry.Position,
			Pot:          entry.Pot,
			Percentage:   entry.Percentage,
			CreatedAt:    entry.CreatedAt,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func decodeSettlementSweepRequest(r *http.Request) (settlementSweepRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req settlementSweepRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return settlementSweepRequest{}, nil
		}
		return settlementSweepRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
