package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coinquestapp/coinquest-backend/api/middleware"
	"github.com/coinquestapp/coinquest-backend/internal/challenges"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	pkgerrors "github.com/coinquestapp/coinquest-backend/pkg/errors"
	"github.com/coinquestapp/coinquest-backend/pkg/pagination"
)

type fakeChallengeService struct {
	created      *challenges.CreateChallengeRequest
	lastCaller   uuid.UUID
	lastID       uuid.UUID
	lastOp       string
	listFilter   challenges.ListFilter
	listParams   pagination.Params
	challenge    *challenges.ChallengeDTO
	checkResult  *challenges.CheckCompletionResponse
	err          error
}

func (f *fakeChallengeService) Create(_ context.Context, challengerID uuid.UUID, req challenges.CreateChallengeRequest) (*challenges.ChallengeDTO, error) {
	f.lastCaller = challengerID
	f.created = &req
	return f.challenge, f.err
}

func (f *fakeChallengeService) Accept(_ context.Context, callerID, challengeID uuid.UUID) (*challenges.ChallengeDTO, error) {
	f.lastCaller, f.lastID, f.lastOp = callerID, challengeID, "accept"
	return f.challenge, f.err
}

func (f *fakeChallengeService) Reject(_ context.Context, callerID, challengeID uuid.UUID) (*challenges.ChallengeDTO, error) {
	f.lastCaller, f.lastID, f.lastOp = callerID, challengeID, "reject"
	return f.challenge, f.err
}

func (f *fakeChallengeService) Cancel(_ context.Context, callerID, challengeID uuid.UUID) (*challenges.ChallengeDTO, error) {
	f.lastCaller, f.lastID, f.lastOp = callerID, challengeID, "cancel"
	return f.challenge, f.err
}

func (f *fakeChallengeService) CheckCompletion(_ context.Context, callerID, challengeID uuid.UUID) (*challenges.CheckCompletionResponse, error) {
	f.lastCaller, f.lastID, f.lastOp = callerID, challengeID, "check"
	return f.checkResult, f.err
}

func (f *fakeChallengeService) Get(_ context.Context, callerID, challengeID uuid.UUID) (*challenges.ChallengeDTO, error) {
	f.lastCaller, f.lastID, f.lastOp = callerID, challengeID, "get"
	return f.challenge, f.err
}

func (f *fakeChallengeService) List(_ context.Context, userID uuid.UUID, filter challenges.ListFilter, params pagination.Params) ([]challenges.ChallengeDTO, string, error) {
	f.lastCaller = userID
	f.listFilter = filter
	f.listParams = params
	if f.challenge == nil {
		return nil, "", f.err
	}
	return []challenges.ChallengeDTO{*f.challenge}, "cursor-next", f.err
}

func (f *fakeChallengeService) SweepAcceptDeadlines(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (f *fakeChallengeService) SweepCompletionDeadlines(context.Context, time.Time) (int, error) {
	return 0, nil
}

func authedRequest(method, target string, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func withChallengeParam(req *http.Request, id string) *http.Request {
	rc := chi.NewRouteContext()
	rc.URLParams.Add("challengeID", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func sampleChallenge() *challenges.ChallengeDTO {
	return &challenges.ChallengeDTO{
		ID:           uuid.New(),
		ChallengerID: uuid.New(),
		ChallengedID: uuid.New(),
		Title:        "No-Spend Weekend",
		WagerAmount:  25,
		Status:       enums.ChallengeStatusPending,
	}
}

func TestChallengeCreateHandler(t *testing.T) {
	svc := &fakeChallengeService{challenge: sampleChallenge()}
	userID := uuid.New()
	challenged := uuid.New()

	body := `{"challenged_id":"` + challenged.String() + `","template_id":"no-spend-weekend","wager_amount":25}`
	req := authedRequest(http.MethodPost, "/api/v1/challenges", body, userID)
	resp := httptest.NewRecorder()
	ChallengeCreate(svc, nil)(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastCaller != userID {
		t.Fatalf("expected caller %s got %s", userID, svc.lastCaller)
	}
	if svc.created == nil || svc.created.ChallengedID != challenged {
		t.Fatalf("request body not forwarded")
	}
}

func TestChallengeCreateRequiresAuth(t *testing.T) {
	svc := &fakeChallengeService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/challenges", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	ChallengeCreate(svc, nil)(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if svc.created != nil {
		t.Fatalf("service should not be called")
	}
}

func TestChallengeCreateValidatesBody(t *testing.T) {
	svc := &fakeChallengeService{}
	req := authedRequest(http.MethodPost, "/api/v1/challenges", `{"wager_amount":0}`, uuid.New())
	resp := httptest.NewRecorder()
	ChallengeCreate(svc, nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestChallengeTransitionsDispatch(t *testing.T) {
	tests := []struct {
		op      string
		handler func(challenges.Service) http.HandlerFunc
	}{
		{"accept", func(s challenges.Service) http.HandlerFunc { return ChallengeAccept(s, nil) }},
		{"reject", func(s challenges.Service) http.HandlerFunc { return ChallengeReject(s, nil) }},
		{"cancel", func(s challenges.Service) http.HandlerFunc { return ChallengeCancel(s, nil) }},
	}

	for _, tt := range tests {
		svc := &fakeChallengeService{challenge: sampleChallenge()}
		userID := uuid.New()
		challengeID := uuid.New()

		req := authedRequest(http.MethodPost, "/api/v1/challenges/"+challengeID.String()+"/"+tt.op, "", userID)
		req = withChallengeParam(req, challengeID.String())
		resp := httptest.NewRecorder()
		tt.handler(svc)(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", tt.op, resp.Code)
		}
		if svc.lastOp != tt.op {
			t.Fatalf("expected %s dispatched, got %s", tt.op, svc.lastOp)
		}
		if svc.lastCaller != userID || svc.lastID != challengeID {
			t.Fatalf("%s: caller/challenge not forwarded", tt.op)
		}
	}
}

func TestChallengeTransitionRejectsBadID(t *testing.T) {
	svc := &fakeChallengeService{}
	req := authedRequest(http.MethodPost, "/api/v1/challenges/nope/accept", "", uuid.New())
	req = withChallengeParam(req, "nope")
	resp := httptest.NewRecorder()
	ChallengeAccept(svc, nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestChallengeCheckHandler(t *testing.T) {
	svc := &fakeChallengeService{checkResult: &challenges.CheckCompletionResponse{
		Challenge: sampleChallenge(),
		Completed: true,
		Settled:   true,
	}}
	challengeID := uuid.New()

	req := authedRequest(http.MethodPost, "/api/v1/challenges/"+challengeID.String()+"/check", "", uuid.New())
	req = withChallengeParam(req, challengeID.String())
	resp := httptest.NewRecorder()
	ChallengeCheck(svc, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var payload struct {
		Data challenges.CheckCompletionResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Data.Completed || !payload.Data.Settled {
		t.Fatalf("unexpected check payload %+v", payload.Data)
	}
}

func TestChallengeListForwardsFilters(t *testing.T) {
	svc := &fakeChallengeService{challenge: sampleChallenge()}
	userID := uuid.New()

	req := authedRequest(http.MethodGet, "/api/v1/challenges?status=pending&role=challenger&limit=5&cursor=abc", "", userID)
	resp := httptest.NewRecorder()
	ChallengeList(svc, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.listFilter.Status == nil || *svc.listFilter.Status != enums.ChallengeStatusPending {
		t.Fatalf("status filter not forwarded")
	}
	if svc.listFilter.Role != challenges.RoleChallenger {
		t.Fatalf("role filter not forwarded")
	}
	if svc.listParams.Limit != 5 || svc.listParams.Cursor != "abc" {
		t.Fatalf("pagination not forwarded: %+v", svc.listParams)
	}
}

func TestChallengeListRejectsUnknownStatus(t *testing.T) {
	svc := &fakeChallengeService{}
	req := authedRequest(http.MethodGet, "/api/v1/challenges?status=bogus", "", uuid.New())
	resp := httptest.NewRecorder()
	ChallengeList(svc, nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestChallengeGetMapsServiceErrors(t *testing.T) {
	svc := &fakeChallengeService{err: pkgerrors.New(pkgerrors.CodeNotFound, "challenge not found")}
	challengeID := uuid.New()

	req := authedRequest(http.MethodGet, "/api/v1/challenges/"+challengeID.String(), "", uuid.New())
	req = withChallengeParam(req, challengeID.String())
	resp := httptest.NewRecorder()
	ChallengeGet(svc, nil)(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
