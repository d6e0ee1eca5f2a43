package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coinquestapp/coinquest-backend/api/responses"
	"github.com/coinquestapp/coinquest-backend/api/validators"
	"github.com/coinquestapp/coinquest-backend/internal/friends"
	"github.com/coinquestapp/coinquest-backend/internal/users"
	pkgerrors "github.com/coinquestapp/coinquest-backend/pkg/errors"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
)

type addFriendRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
}

// FriendAdd creates a mutual friendship with the named user.
func FriendAdd(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addFriendRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		friend, err := svc.AddFriend(r.Context(), userID, body.Username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]*users.UserDTO{"friend": friend})
	}
}

// FriendRemove deletes the friendship in both directions.
func FriendRemove(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		friendID, err := uuid.Parse(chi.URLParam(r, "friendID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "friend id must be a uuid"))
			return
		}

		if err := svc.RemoveFriend(r.Context(), userID, friendID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// FriendsList returns the caller's friends.
func FriendsList(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListFriends(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string][]users.UserDTO{"friends": list})
	}
}
