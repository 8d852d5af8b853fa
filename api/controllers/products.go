package controllers

import (
	"net/http"
	"strings"

	"github.com/stitchcairo/storefront-backend/api/responses"
	"github.com/stitchcairo/storefront-backend/internal/catalog"
	pkgerrors "github.com/stitchcairo/storefront-backend/pkg/errors"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
)

// ListProducts returns the catalog merged with live stock, narrowed by the
// optional gender/size/color/search query params.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query()
		filter := catalog.Filter{
			Gender: strings.TrimSpace(query.Get("gender")),
			Size:   strings.TrimSpace(query.Get("size")),
			Color:  strings.TrimSpace(query.Get("color")),
			Search: strings.TrimSpace(query.Get("search")),
		}

		views, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"products": views,
			"count":    len(views),
		})
	}
}
