package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"trade_bridge/internal/adaptor"
	"trade_bridge/internal/model"
	"trade_bridge/internal/threecommas"
	"trade_bridge/internal/usecase"
)

type BotHandler struct {
	botUseCase adaptor.BotUseCase
	validate   *validator.Validate
}

func NewBotHandler(botUseCase adaptor.BotUseCase) *BotHandler {
	return &BotHandler{
		botUseCase: botUseCase,
		validate:   newValidator(),
	}
}

func (h *BotHandler) CreateBot(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, FailureResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if errs := h.validateCreate(req); len(errs) > 0 {
		WriteValidationErrors(w, errs)
		return
	}

	data, err := h.botUseCase.CreateBot(r.Context(), req)
	if err != nil {
		writeBotFailure(w, "Failed to create bot", err)
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Bot created successfully",
		Data:    data,
	})
}

func (h *BotHandler) ListBots(w http.ResponseWriter, r *http.Request) {
	bots, err := h.botUseCase.ListBots(r.Context())
	if err != nil {
		writeBotFailure(w, "Failed to fetch bots", err)
		return
	}
	if bots == nil {
		bots = []model.BotSummary{}
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Data:    map[string]any{"bots": bots},
	})
}

func (h *BotHandler) GetBot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data, err := h.botUseCase.GetBot(r.Context(), id)
	if err != nil {
		writeBotFailure(w, "Failed to fetch bot details", err)
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Data: data})
}

func (h *BotHandler) SetBotState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	action := model.BotAction(chi.URLParam(r, "action"))

	data, err := h.botUseCase.SetBotState(r.Context(), id, action)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidAction) {
			WriteJSON(w, http.StatusBadRequest, FailureResponse{
				Success: false,
				Message: "Invalid action. Use start or stop",
			})
			return
		}
		writeBotFailure(w, fmt.Sprintf("Failed to %s bot", action), err)
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{
		Success: true,
		Message: fmt.Sprintf("Bot %sed successfully", action),
		Data:    data,
	})
}

func (h *BotHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	data, err := h.botUseCase.ListAccounts(r.Context())
	if err != nil {
		writeBotFailure(w, "Failed to fetch accounts", err)
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Data: data})
}

func (h *BotHandler) validateCreate(req model.CreateBotRequest) []FieldError {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "request", Message: err.Error()}}
	}

	errs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, FieldError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s is required", fe.Field()),
		})
	}
	return errs
}

// writeBotFailure renders a bot-management failure. The error key carries
// the vendor's raw body when one came back, otherwise the local error text.
func writeBotFailure(w http.ResponseWriter, message string, err error) {
	var raw any
	var vendorErr *threecommas.VendorError
	if errors.As(err, &vendorErr) {
		raw = vendorErr.Raw()
	} else if err != nil {
		raw = err.Error()
	}

	WriteJSON(w, http.StatusInternalServerError, FailureResponse{
		Success: false,
		Message: message,
		Error:   raw,
	})
}
