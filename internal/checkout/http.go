package checkout

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wemint/internal/catalog"
	"wemint/pkg/kit"
)

type Server struct {
	Service *Service
	Log     *zap.Logger
}

type purchaseReq struct {
	ProductID     any    `json:"product_id"`
	Email         string `json:"email"`
	PaymentMethod string `json:"payment_method"`
}

func (s *Server) PurchaseHandler() http.HandlerFunc { return s.purchase }

func (s *Server) purchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	id, ok := catalog.ParseID(req.ProductID)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"product_id": req.ProductID})
		return
	}

	rc, err := s.Service.Purchase(r.Context(), Request{
		ProductID:     id,
		Email:         req.Email,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		s.writePurchaseError(w, r, id, err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, rc)
}

func (s *Server) writePurchaseError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"product_id": id})
	case errors.Is(err, ErrBadPaymentMethod):
		kit.WriteError(w, r, http.StatusBadRequest, "unsupported payment method",
			map[string]any{"allowed": []string{MethodCard, MethodPromptPay}})
	case isTimeoutErr(err):
		kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
	default:
		if s.Log != nil {
			s.Log.Error("checkout failed", zap.Error(err), zap.Int64("product_id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func isTimeoutErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
