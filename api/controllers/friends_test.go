package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coinquestapp/coinquest-backend/internal/users"
	pkgerrors "github.com/coinquestapp/coinquest-backend/pkg/errors"
)

type fakeFriendsService struct {
	added      string
	removed    uuid.UUID
	lastUser   uuid.UUID
	friend     *users.UserDTO
	friendList []users.UserDTO
	err        error
}

func (f *fakeFriendsService) AddFriend(_ context.Context, userID uuid.UUID, friendUsername string) (*users.UserDTO, error) {
	f.lastUser = userID
	f.added = friendUsername
	return f.friend, f.err
}

func (f *fakeFriendsService) RemoveFriend(_ context.Context, userID, friendID uuid.UUID) error {
	f.lastUser = userID
	f.removed = friendID
	return f.err
}

func (f *fakeFriendsService) ListFriends(_ context.Context, userID uuid.UUID) ([]users.UserDTO, error) {
	f.lastUser = userID
	return f.friendList, f.err
}

func (f *fakeFriendsService) AreFriends(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func TestFriendAddHandler(t *testing.T) {
	svc := &fakeFriendsService{friend: &users.UserDTO{ID: uuid.New(), Username: "saver"}}
	userID := uuid.New()

	req := authedRequest(http.MethodPost, "/api/v1/friends", `{"username":"saver"}`, userID)
	resp := httptest.NewRecorder()
	FriendAdd(svc, nil)(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.added != "saver" || svc.lastUser != userID {
		t.Fatalf("request not forwarded")
	}
}

func TestFriendAddValidatesUsername(t *testing.T) {
	svc := &fakeFriendsService{}
	req := authedRequest(http.MethodPost, "/api/v1/friends", `{"username":"ab"}`, uuid.New())
	resp := httptest.NewRecorder()
	FriendAdd(svc, nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.added != "" {
		t.Fatalf("service should not be called")
	}
}

func TestFriendAddMapsConflict(t *testing.T) {
	svc := &fakeFriendsService{err: pkgerrors.New(pkgerrors.CodeConflict, "already friends")}
	req := authedRequest(http.MethodPost, "/api/v1/friends", `{"username":"saver"}`, uuid.New())
	resp := httptest.NewRecorder()
	FriendAdd(svc, nil)(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestFriendRemoveHandler(t *testing.T) {
	svc := &fakeFriendsService{}
	userID := uuid.New()
	friendID := uuid.New()

	req := authedRequest(http.MethodDelete, "/api/v1/friends/"+friendID.String(), "", userID)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("friendID", friendID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	resp := httptest.NewRecorder()
	FriendRemove(svc, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.removed != friendID {
		t.Fatalf("expected friend id forwarded")
	}
}

func TestFriendRemoveRejectsBadID(t *testing.T) {
	svc := &fakeFriendsService{}
	req := authedRequest(http.MethodDelete, "/api/v1/friends/nope", "", uuid.New())
	rc := chi.NewRouteContext()
	rc.URLParams.Add("friendID", "nope")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	resp := httptest.NewRecorder()
	FriendRemove(svc, nil)(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestFriendsListHandler(t *testing.T) {
	svc := &fakeFriendsService{friendList: []users.UserDTO{
		{ID: uuid.New(), Username: "saver"},
		{ID: uuid.New(), Username: "spender"},
	}}
	req := authedRequest(http.MethodGet, "/api/v1/friends", "", uuid.New())
	resp := httptest.NewRecorder()
	FriendsList(svc, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var payload struct {
		Data map[string][]users.UserDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Data["friends"]) != 2 {
		t.Fatalf("expected 2 friends got %d", len(payload.Data["friends"]))
	}
}
