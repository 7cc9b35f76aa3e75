package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/fairwaypot/settlement/internal/domain/tournament"
	"github.com/fairwaypot/settlement/internal/infrastructure/repository/memory"
	"github.com/fairwaypot/settlement/internal/usecase"
)

const testJobToken = "job-token-for-tests"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	// FinishesAt sits in the past relative to the wall clock the sweep uses.
	tournaments := memory.NewTournamentRepository([]tournament.Tournament{{
		ID:         memory.TournamentIDOpen2026,
		Name:       "The Open 2026",
		StartsAt:   time.Now().UTC().Add(-96 * time.Hour),
		FinishesAt: time.Now().UTC().Add(-time.Hour),
		Status:     tournament.StatusActive,
	}})
	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	teams := memory.NewTeamRepository(memory.SeedTeams())
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	store := memory.NewWalletStore(memory.SeedAccounts())
	wallets := memory.NewWalletRepository(store)
	ledgerRepo := memory.NewLedgerRepository(store)

	leaderboardService := usecase.NewLeaderboardService(players, usecase.LeaderboardConfig{}, nil)
	payoutService := usecase.NewPayoutService(wallets, ledgerRepo, nil, usecase.PayoutConfig{}, nil)
	settlementService := usecase.NewSettlementService(tournaments, leagues, teams, leaderboardService, payoutService, usecase.SettlementConfig{}, nil)

	handler := NewHandler(settlementService, ledgerRepo, nil, 0, nil)
	return NewRouter(handler, nil, testJobToken)
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
}

func TestRouter_SettlementSweep_RequiresToken(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/settlement-sweep", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", recorder.Code)
	}
}

func TestRouter_SettlementSweep_RunsAndReports(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/settlement-sweep", strings.NewReader(`{}`))
	request.Header.Set("X-Internal-Job-Token", testJobToken)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", recorder.Code, recorder.Body.String())
	}

	var envelope struct {
		APIVersion string              `json:"apiVersion"`
		Data       usecase.SweepResult `json:"data"`
	}
	if err := sonic.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TournamentsFound != 1 || envelope.Data.Succeeded != 1 {
		t.Fatalf("unexpected sweep result: %+v", envelope.Data)
	}
}

func TestRouter_SettlementSweep_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/settlement-sweep", strings.NewReader(`{"tournamet_id":"typo"}`))
	request.Header.Set("X-Internal-Job-Token", testJobToken)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", recorder.Code)
	}
}

func TestRouter_ListUserTransactions(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	// Settle first so the ledger has rows.
	sweep := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/settlement-sweep", strings.NewReader(`{}`))
	sweep.Header.Set("X-Internal-Job-Token", testJobToken)
	router.ServeHTTP(httptest.NewRecorder(), sweep)

	request := httptest.NewRequest(http.MethodGet, "/v1/internal/users/u-alice/transactions", nil)
	request.Header.Set("X-Internal-Job-Token", testJobToken)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", recorder.Code, recorder.Body.String())
	}

	var envelope struct {
		Data []transactionDTO `json:"data"`
	}
	if err := sonic.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) == 0 {
		t.Fatal("expected at least one prize transaction for league winner")
	}
	if envelope.Data[0].Type != "prize" {
		t.Fatalf("unexpected transaction type: %+v", envelope.Data[0])
	}
}
