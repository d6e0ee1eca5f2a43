package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/coinquestapp/coinquest-backend/api/responses"
	"github.com/coinquestapp/coinquest-backend/api/validators"
	"github.com/coinquestapp/coinquest-backend/internal/consumers/feed"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
)

type feedReader interface {
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]feed.Entry, error)
}

type feedResponse struct {
	Entries []feed.Entry `json:"entries"`
}

// ActivityFeed returns the caller's recent challenge activity, newest first.
func ActivityFeed(reader feedReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := reader.ListForUser(r.Context(), userID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if entries == nil {
			entries = []feed.Entry{}
		}
		responses.WriteSuccess(w, feedResponse{Entries: entries})
	}
}
