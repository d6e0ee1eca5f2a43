package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/coinquestapp/coinquest-backend/api/responses"
	"github.com/coinquestapp/coinquest-backend/internal/catalog"
	"github.com/coinquestapp/coinquest-backend/pkg/enums"
	pkgerrors "github.com/coinquestapp/coinquest-backend/pkg/errors"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
)

type catalogResponse struct {
	Templates []catalog.Template `json:"templates"`
}

// CatalogTemplates lists the built-in challenge templates, optionally
// filtered by category or difficulty.
func CatalogTemplates(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := strings.TrimSpace(r.URL.Query().Get("category"))
		difficulty := strings.TrimSpace(r.URL.Query().Get("difficulty"))

		if category != "" && difficulty != "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "filter by category or difficulty, not both"))
			return
		}

		switch {
		case category != "":
			parsed, err := enums.ParseChallengeType(category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown category"))
				return
			}
			responses.WriteSuccess(w, catalogResponse{Templates: catalog.ByCategory(parsed)})
		case difficulty != "":
			parsed, err := enums.ParseDifficulty(difficulty)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown difficulty"))
				return
			}
			responses.WriteSuccess(w, catalogResponse{Templates: catalog.ByDifficulty(parsed)})
		default:
			responses.WriteSuccess(w, catalogResponse{Templates: catalog.All()})
		}
	}
}

// CatalogTemplate returns one template by id.
func CatalogTemplate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "templateID"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "template id required"))
			return
		}
		tpl, ok := catalog.ByID(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "template not found"))
			return
		}
		responses.WriteSuccess(w, tpl)
	}
}
