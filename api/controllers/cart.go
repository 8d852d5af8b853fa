package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchcairo/storefront-backend/api/responses"
	"github.com/stitchcairo/storefront-backend/api/validators"
	"github.com/stitchcairo/storefront-backend/internal/cart"
	"github.com/stitchcairo/storefront-backend/pkg/config"
	"github.com/stitchcairo/storefront-backend/pkg/enums"
	pkgerrors "github.com/stitchcairo/storefront-backend/pkg/errors"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

// CartSessions is the slice of the session registry the cart endpoints use.
type CartSessions interface {
	Create(ctx context.Context) *cart.Session
	Get(token string) (*cart.Session, error)
}

type cartLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Size      string `json:"size" validate:"required"`
}

type setQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// CreateCart opens a new empty cart session and hands the token back.
func CreateCart(sessions CartSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := sessions.Create(r.Context())
		w.Header().Set(cartTokenHeader, session.Token())
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{
			"cart_token": session.Token(),
		})
	}
}

// GetCart returns the checkout summary: lines, item subtotal, the flat
// shipping fee, and the payable total. The order ceiling elsewhere looks at
// the subtotal only.
func GetCart(sessions CartSessions, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := resolveSession(sessions, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session.Summarize(decimal.NewFromInt(int64(cfg.ShippingFeeEGP))))
	}
}

// AddCartItem adds one unit of a (product, size) line, stock permitting.
func AddCartItem(sessions CartSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := resolveSession(sessions, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, size, err := parseLineKey(payload.ProductID, payload.Size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := session.AddItem(r.Context(), productID, size); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session.State())
	}
}

// UpdateCartItem replaces a line's quantity. Zero or below removes the line.
func UpdateCartItem(sessions CartSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := resolveSession(sessions, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, size, err := parseLineKey(payload.ProductID, payload.Size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := session.SetQuantity(r.Context(), productID, size, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session.State())
	}
}

// RemoveCartItem drops a (product, size) line. Unknown lines are a no-op.
func RemoveCartItem(sessions CartSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := resolveSession(sessions, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, size, err := parseLineKey(payload.ProductID, payload.Size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session.RemoveItem(productID, size)
		responses.WriteSuccess(w, session.State())
	}
}

// ClearCart empties the session cart.
func ClearCart(sessions CartSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := resolveSession(sessions, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session.Clear()
		responses.WriteSuccess(w, session.State())
	}
}

func resolveSession(sessions CartSessions, r *http.Request) (*cart.Session, error) {
	token := strings.TrimSpace(r.Header.Get(cartTokenHeader))
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token header required")
	}
	return sessions.Get(token)
}

func parseLineKey(rawProductID, rawSize string) (uuid.UUID, enums.Size, error) {
	productID, err := uuid.Parse(rawProductID)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	size, err := enums.ParseSize(rawSize)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid size")
	}
	return productID, size, nil
}
