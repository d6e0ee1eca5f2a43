package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coinquestapp/coinquest-backend/api/middleware"
	"github.com/coinquestapp/coinquest-backend/api/responses"
	"github.com/coinquestapp/coinquest-backend/api/validators"
	"github.com/coinquestapp/coinquest-backend/internal/challenges"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	pkgerrors "github.com/coinquestapp/coinquest-backend/pkg/errors"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
	"github.com/coinquestapp/coinquest-backend/pkg/pagination"
)

func callerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

func challengeIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "challengeID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "challenge id must be a uuid")
	}
	return id, nil
}

// ChallengeCreate issues a new wagered challenge to a friend.
func ChallengeCreate(svc challenges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body challenges.CreateChallengeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		challenge, err := svc.Create(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, challenge)
	}
}

// ChallengeGet returns a single challenge visible to the caller.
func ChallengeGet(svc challenges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		challengeID, err := challengeIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		challenge, err := svc.Get(r.Context(), userID, challengeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, challenge)
	}
}

type challengeListResponse struct {
	Challenges []challenges.ChallengeDTO `json:"challenges"`
	NextCursor string                    `json:"next_cursor,omitempty"`
}

// ChallengeList returns the caller's challenges, newest first, with optional
// status and role filters.
func ChallengeList(svc challenges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filter challenges.ListFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, parseErr := enums.ParseChallengeStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown challenge status"))
				return
			}
			filter.Status = &status
		}
		if role := strings.TrimSpace(r.URL.Query().Get("role")); role != "" {
			if role != challenges.RoleChallenger && role != challenges.RoleChallenged {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "role must be challenger or challenged"))
				return
			}
			filter.Role = role
		}

		items, next, err := svc.List(r.Context(), userID, filter, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, challengeListResponse{Challenges: items, NextCursor: next})
	}
}

// ChallengeAccept locks the challenged user into a pending challenge.
func ChallengeAccept(svc challenges.Service, logg *logger.Logger) http.HandlerFunc {
	return challengeTransition(svc.Accept, logg)
}

// ChallengeReject declines a pending challenge on behalf of the challenged user.
func ChallengeReject(svc challenges.Service, logg *logger.Logger) http.HandlerFunc {
	return challengeTransition(svc.Reject, logg)
}

// ChallengeCancel withdraws a pending challenge on behalf of the challenger.
func ChallengeCancel(svc challenges.Service, logg *logger.Logger) http.HandlerFunc {
	return challengeTransition(svc.Cancel, logg)
}

func challengeTransition(op func(ctx context.Context, callerID, challengeID uuid.UUID) (*challenges.ChallengeDTO, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		challengeID, err := challengeIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		challenge, err := op(r.Context(), userID, challengeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, challenge)
	}
}

// ChallengeCheck runs a completion check against the caller's accepted challenge.
func ChallengeCheck(svc challenges.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		challengeID, err := challengeIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CheckCompletion(r.Context(), userID, challengeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
