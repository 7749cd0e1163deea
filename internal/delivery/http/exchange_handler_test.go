package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"trade_bridge/internal/exchange"
	"trade_bridge/internal/model"
	"trade_bridge/internal/usecase"
)

type mockExchangeUseCase struct {
	connectFn      func(ctx context.Context, req model.ConnectRequest) (*model.AccountInfo, error)
	balanceFn      func(ctx context.Context, nonZeroOnly bool) ([]model.Balance, error)
	tradingPairsFn func(ctx context.Context) ([]model.Symbol, error)
}

func (m *mockExchangeUseCase) Connect(ctx context.Context, req model.ConnectRequest) (*model.AccountInfo, error) {
	return m.connectFn(ctx, req)
}

func (m *mockExchangeUseCase) Balance(ctx context.Context, nonZeroOnly bool) ([]model.Balance, error) {
	return m.balanceFn(ctx, nonZeroOnly)
}

func (m *mockExchangeUseCase) TradingPairs(ctx context.Context) ([]model.Symbol, error) {
	return m.tradingPairsFn(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestExchangeHandlerConnect(t *testing.T) {
	t.Run("missing fields are itemized", func(t *testing.T) {
		h := NewExchangeHandler(&mockExchangeUseCase{
			connectFn: func(ctx context.Context, req model.ConnectRequest) (*model.AccountInfo, error) {
				t.Error("no connect expected for invalid input")
				return nil, nil
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/exchange/connect", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.Connect(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["message"] != "Validation failed" {
			t.Errorf("message = %v", body["message"])
		}
		errs, _ := body["errors"].([]any)
		if len(errs) != 2 {
			t.Fatalf("got %d field errors, want 2: %v", len(errs), body)
		}
		first, _ := errs[0].(map[string]any)
		if first["field"] != "apiKey" || first["message"] != "API Key is required" {
			t.Errorf("unexpected first field error: %v", first)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewExchangeHandler(&mockExchangeUseCase{})
		req := httptest.NewRequest(http.MethodPost, "/api/exchange/connect", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		h.Connect(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("success envelope", func(t *testing.T) {
		h := NewExchangeHandler(&mockExchangeUseCase{
			connectFn: func(ctx context.Context, req model.ConnectRequest) (*model.AccountInfo, error) {
				return &model.AccountInfo{AccountType: "SPOT", CanTrade: true}, nil
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/exchange/connect",
			strings.NewReader(`{"apiKey":"k","apiSecret":"s"}`))
		rec := httptest.NewRecorder()
		h.Connect(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["success"] != true || body["message"] != "Binance wallet connected successfully" {
			t.Errorf("unexpected envelope: %v", body)
		}
		data, _ := body["data"].(map[string]any)
		if data["accountType"] != "SPOT" {
			t.Errorf("unexpected data: %v", data)
		}
	})

	t.Run("exchange rejection is normalized", func(t *testing.T) {
		h := NewExchangeHandler(&mockExchangeUseCase{
			connectFn: func(ctx context.Context, req model.ConnectRequest) (*model.AccountInfo, error) {
				return nil, &exchange.APIError{Code: -2015, Msg: "Invalid API-key, IP, or permissions for action."}
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/exchange/connect",
			strings.NewReader(`{"apiKey":"bad","apiSecret":"bad"}`))
		rec := httptest.NewRecorder()
		h.Connect(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["success"] != false {
			t.Errorf("success = %v, want false", body["success"])
		}
		msg, _ := body["message"].(string)
		if !strings.HasPrefix(msg, "Invalid API credentials.") {
			t.Errorf("message not normalized: %q", msg)
		}
		if body["error"] == nil {
			t.Error("expected the raw vendor error alongside the guidance")
		}
	})
}

func TestExchangeHandlerBalance(t *testing.T) {
	t.Run("not connected", func(t *testing.T) {
		h := NewExchangeHandler(&mockExchangeUseCase{
			balanceFn: func(ctx context.Context, nonZeroOnly bool) ([]model.Balance, error) {
				return nil, usecase.ErrNotConnected
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/api/exchange/balance", nil)
		rec := httptest.NewRecorder()
		h.Balance(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["message"] != "Binance wallet not connected" {
			t.Errorf("message = %v", body["message"])
		}
	})

	t.Run("nonzero query flag is forwarded", func(t *testing.T) {
		var gotFlag bool
		h := NewExchangeHandler(&mockExchangeUseCase{
			balanceFn: func(ctx context.Context, nonZeroOnly bool) ([]model.Balance, error) {
				gotFlag = nonZeroOnly
				return []model.Balance{{Asset: "ETH", Free: "0.5", Locked: "0"}}, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/api/exchange/balance?nonzero=true", nil)
		rec := httptest.NewRecorder()
		h.Balance(rec, req)

		if !gotFlag {
			t.Error("nonzero flag not forwarded")
		}
		body := decodeBody(t, rec)
		data, _ := body["data"].(map[string]any)
		balances, _ := data["balances"].([]any)
		if len(balances) != 1 {
			t.Errorf("unexpected balances: %v", data)
		}
	})
}

func TestExchangeHandlerTradingPairs(t *testing.T) {
	h := NewExchangeHandler(&mockExchangeUseCase{
		tradingPairsFn: func(ctx context.Context) ([]model.Symbol, error) {
			return []model.Symbol{{Symbol: "ETHUSDT", Status: "TRADING"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/exchange/trading-pairs", nil)
	rec := httptest.NewRecorder()
	h.TradingPairs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	data, _ := body["data"].(map[string]any)
	symbols, _ := data["symbols"].([]any)
	if len(symbols) != 1 {
		t.Errorf("unexpected symbols: %v", data)
	}
}
