package controllers

import (
	"net/http"
	"strings"

	"github.com/stitchcairo/storefront-backend/api/responses"
	"github.com/stitchcairo/storefront-backend/api/validators"
	checkoutsvc "github.com/stitchcairo/storefront-backend/internal/checkout"
	pkgerrors "github.com/stitchcairo/storefront-backend/pkg/errors"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
)

type submitOrderRequest struct {
	CustomerName    string  `json:"customer_name" validate:"required"`
	CustomerPhone   string  `json:"customer_phone" validate:"required"`
	CustomerAddress string  `json:"customer_address" validate:"required"`
	AdditionalInfo  *string `json:"additional_info,omitempty"`
}

// SubmitOrder runs the checkout pipeline for the caller's cart session.
func SubmitOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		token := strings.TrimSpace(r.Header.Get(cartTokenHeader))
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart token header required"))
			return
		}

		var payload submitOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.SubmitOrder(r.Context(), checkoutsvc.OrderDraft{
			CartToken:       token,
			CustomerName:    payload.CustomerName,
			CustomerPhone:   payload.CustomerPhone,
			CustomerAddress: payload.CustomerAddress,
			AdditionalInfo:  payload.AdditionalInfo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"order_id":     order.ID,
			"status":       order.Status,
			"total_amount": order.TotalAmount,
			"items":        order.Items,
			"created_at":   order.CreatedAt,
		})
	}
}
