package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coinquestapp/coinquest-backend/api/responses"
	"github.com/coinquestapp/coinquest-backend/api/validators"
	"github.com/coinquestapp/coinquest-backend/internal/ledger"
	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
	"github.com/coinquestapp/coinquest-backend/pkg/pagination"
)

type transactionDTO struct {
	ID                 uuid.UUID             `json:"id"`
	Amount             int                   `json:"amount"`
	Type               enums.TransactionType `json:"type"`
	BalanceBefore      int                   `json:"balance_before"`
	BalanceAfter       int                   `json:"balance_after"`
	Description        string                `json:"description"`
	RelatedChallengeID *uuid.UUID            `json:"related_challenge_id,omitempty"`
	RelatedUserID      *uuid.UUID            `json:"related_user_id,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

func transactionFromModel(txn models.CurrencyTransaction) transactionDTO {
	return transactionDTO{
		ID:                 txn.ID,
		Amount:             txn.Amount,
		Type:               txn.Type,
		BalanceBefore:      txn.BalanceBefore,
		BalanceAfter:       txn.BalanceAfter,
		Description:        txn.Description,
		RelatedChallengeID: txn.RelatedChallengeID,
		RelatedUserID:      txn.RelatedUserID,
		CreatedAt:          txn.CreatedAt,
	}
}

// CurrencyBalance reports the caller's live virtual currency balance.
func CurrencyBalance(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		balance, err := svc.Balance(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"balance": balance})
	}
}

type currencyHistoryResponse struct {
	Transactions []transactionDTO `json:"transactions"`
	NextCursor   string           `json:"next_cursor,omitempty"`
}

// CurrencyHistory pages through the caller's ledger entries, newest first.
func CurrencyHistory(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
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

		rows, next, err := svc.ListForUser(r.Context(), userID, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]transactionDTO, 0, len(rows))
		for _, row := range rows {
			out = append(out, transactionFromModel(row))
		}
		responses.WriteSuccess(w, currencyHistoryResponse{Transactions: out, NextCursor: next})
	}
}
