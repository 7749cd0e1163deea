package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"trade_bridge/internal/adaptor"
	"trade_bridge/internal/exchange"
	"trade_bridge/internal/model"
	"trade_bridge/internal/usecase"
)

type ExchangeHandler struct {
	exchangeUseCase adaptor.ExchangeUseCase
	validate        *validator.Validate
}

func NewExchangeHandler(exchangeUseCase adaptor.ExchangeUseCase) *ExchangeHandler {
	return &ExchangeHandler{
		exchangeUseCase: exchangeUseCase,
		validate:        newValidator(),
	}
}

// Connect verifies the submitted credential pair against the exchange and,
// on success, stores it for the balance and trading-pair calls.
func (h *ExchangeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req model.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, FailureResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if errs := h.validateConnect(req); len(errs) > 0 {
		WriteValidationErrors(w, errs)
		return
	}

	info, err := h.exchangeUseCase.Connect(r.Context(), req)
	if err != nil {
		writeExchangeFailure(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Binance wallet connected successfully",
		Data:    info,
	})
}

// Balance returns the stored account's balances. ?nonzero=true drops
// entries with no funds on either side.
func (h *ExchangeHandler) Balance(w http.ResponseWriter, r *http.Request) {
	nonZero := r.URL.Query().Get("nonzero") == "true"

	balances, err := h.exchangeUseCase.Balance(r.Context(), nonZero)
	if err != nil {
		if errors.Is(err, usecase.ErrNotConnected) {
			WriteJSON(w, http.StatusUnauthorized, FailureResponse{
				Success: false,
				Message: "Binance wallet not connected",
			})
			return
		}
		writeExchangeFailure(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Data:    map[string]any{"balances": balances},
	})
}

func (h *ExchangeHandler) TradingPairs(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.exchangeUseCase.TradingPairs(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrNotConnected) {
			WriteJSON(w, http.StatusUnauthorized, FailureResponse{
				Success: false,
				Message: "Binance wallet not connected",
			})
			return
		}
		writeExchangeFailure(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Data:    map[string]any{"symbols": symbols},
	})
}

func (h *ExchangeHandler) validateConnect(req model.ConnectRequest) []FieldError {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "request", Message: err.Error()}}
	}

	messages := map[string]string{
		"apiKey":    "API Key is required",
		"apiSecret": "API Secret is required",
	}
	errs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		errs = append(errs, FieldError{Field: fe.Field(), Message: msg})
	}
	return errs
}

// writeExchangeFailure renders an exchange-side failure with normalized
// guidance plus the raw vendor error for debugging.
func writeExchangeFailure(w http.ResponseWriter, err error) {
	normalized := exchange.NormalizeError(err)

	var raw any
	var apiErr *exchange.APIError
	if errors.As(err, &apiErr) {
		raw = apiErr
	} else if err != nil {
		raw = err.Error()
	}

	WriteJSON(w, http.StatusInternalServerError, FailureResponse{
		Success: false,
		Message: normalized.Message,
		Details: normalized.Details,
		Error:   raw,
	})
}
