package usecase

import (
	"context"
	"errors"
	"testing"

	"trade_bridge/internal/exchange"
	"trade_bridge/internal/model"
	"trade_bridge/internal/repository"
)

type mockExchangeClient struct {
	accountFn      func(ctx context.Context, apiKey, apiSecret string) (*model.AccountInfo, error)
	exchangeInfoFn func(ctx context.Context) (*model.ExchangeInfo, error)
	accountCalls   int
}

func (m *mockExchangeClient) Account(ctx context.Context, apiKey, apiSecret string) (*model.AccountInfo, error) {
	m.accountCalls++
	return m.accountFn(ctx, apiKey, apiSecret)
}

func (m *mockExchangeClient) ExchangeInfo(ctx context.Context) (*model.ExchangeInfo, error) {
	if m.exchangeInfoFn == nil {
		return &model.ExchangeInfo{}, nil
	}
	return m.exchangeInfoFn(ctx)
}

func TestExchangeConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("successful connect stores the pair", func(t *testing.T) {
		client := &mockExchangeClient{
			accountFn: func(ctx context.Context, apiKey, apiSecret string) (*model.AccountInfo, error) {
				if apiKey != "k" || apiSecret != "s" {
					t.Errorf("credentials not forwarded: %q / %q", apiKey, apiSecret)
				}
				return &model.AccountInfo{AccountType: "SPOT"}, nil
			},
		}
		repo := repository.NewCredentialMemoryRepository()
		uc := NewExchangeUseCase(client, repo)

		info, err := uc.Connect(ctx, model.ConnectRequest{APIKey: "k", APISecret: "s"})
		if err != nil {
			t.Fatalf("Connect() error = %v", err)
		}
		if info.AccountType != "SPOT" {
			t.Errorf("unexpected account info: %+v", info)
		}

		stored, err := repo.Get(ctx)
		if err != nil || stored == nil {
			t.Fatalf("expected a stored pair, got %v, %v", stored, err)
		}
		if stored.APIKey != "k" || stored.APISecret != "s" {
			t.Errorf("unexpected stored pair: %+v", stored)
		}
	})

	t.Run("rejected connect stores nothing", func(t *testing.T) {
		client := &mockExchangeClient{
			accountFn: func(ctx context.Context, apiKey, apiSecret string) (*model.AccountInfo, error) {
				return nil, &exchange.APIError{Code: -2015}
			},
		}
		repo := repository.NewCredentialMemoryRepository()
		uc := NewExchangeUseCase(client, repo)

		if _, err := uc.Connect(ctx, model.ConnectRequest{APIKey: "bad", APISecret: "bad"}); err == nil {
			t.Fatal("expected an error")
		}
		if stored, _ := repo.Get(ctx); stored != nil {
			t.Errorf("rejected pair was stored: %+v", stored)
		}
	})

	t.Run("rejected connect keeps the previous pair", func(t *testing.T) {
		repo := repository.NewCredentialMemoryRepository()
		repo.Seed(model.Credential{APIKey: "good", APISecret: "good"})

		client := &mockExchangeClient{
			accountFn: func(ctx context.Context, apiKey, apiSecret string) (*model.AccountInfo, error) {
				return nil, &exchange.APIError{Code: -2015}
			},
		}
		uc := NewExchangeUseCase(client, repo)

		if _, err := uc.Connect(ctx, model.ConnectRequest{APIKey: "bad", APISecret: "bad"}); err == nil {
			t.Fatal("expected an error")
		}
		stored, _ := repo.Get(ctx)
		if stored == nil || stored.APIKey != "good" {
			t.Errorf("previous pair lost: %+v", stored)
		}
	})
}

func TestExchangeBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("not connected", func(t *testing.T) {
		client := &mockExchangeClient{
			accountFn: func(ctx context.Context, apiKey, apiSecret string) (*model.AccountInfo, error) {
				t.Error("no exchange call expected without a stored pair")
				return nil, nil
			},
		}
		uc := NewExchangeUseCase(client, repository.NewCredentialMemoryRepository())

		if _, err := uc.Balance(ctx, false); !errors.Is(err, ErrNotConnected) {
			t.Fatalf("expected ErrNotConnected, got %v", err)
		}
	})

	t.Run("uses the stored pair", func(t *testing.T) {
		repo := repository.NewCredentialMemoryRepository()
		repo.Seed(model.Credential{APIKey: "k", APISecret: "s"})

		client := &mockExchangeClient{
			accountFn: func(ctx context.Context, apiKey, apiSecret string) (*model.AccountInfo, error) {
				if apiKey != "k" || apiSecret != "s" {
					t.Errorf("stored pair not used: %q / %q", apiKey, apiSecret)
				}
				return &model.AccountInfo{Balances: []model.Balance{
					{Asset: "ETH", Free: "0.5", Locked: "0"},
					{Asset: "BTC", Free: "0", Locked: "0"},
				}}, nil
			},
		}
		uc := NewExchangeUseCase(client, repo)

		all, err := uc.Balance(ctx, false)
		if err != nil {
			t.Fatalf("Balance() error = %v", err)
		}
		if len(all) != 2 {
			t.Errorf("got %d balances, want 2", len(all))
		}

		nonZero, err := uc.Balance(ctx, true)
		if err != nil {
			t.Fatalf("Balance(nonzero) error = %v", err)
		}
		if len(nonZero) != 1 || nonZero[0].Asset != "ETH" {
			t.Errorf("unexpected filtered balances: %+v", nonZero)
		}
	})

	t.Run("nil balances become empty slice", func(t *testing.T) {
		repo := repository.NewCredentialMemoryRepository()
		repo.Seed(model.Credential{APIKey: "k", APISecret: "s"})

		client := &mockExchangeClient{
			accountFn: func(ctx context.Context, apiKey, apiSecret string) (*model.AccountInfo, error) {
				return &model.AccountInfo{}, nil
			},
		}
		uc := NewExchangeUseCase(client, repo)

		balances, err := uc.Balance(ctx, false)
		if err != nil {
			t.Fatalf("Balance() error = %v", err)
		}
		if balances == nil {
			t.Error("expected an empty slice, got nil")
		}
	})
}

func TestExchangeTradingPairs(t *testing.T) {
	ctx := context.Background()

	t.Run("not connected", func(t *testing.T) {
		uc := NewExchangeUseCase(&mockExchangeClient{}, repository.NewCredentialMemoryRepository())
		if _, err := uc.TradingPairs(ctx); !errors.Is(err, ErrNotConnected) {
			t.Fatalf("expected ErrNotConnected, got %v", err)
		}
	})

	t.Run("returns the symbol list", func(t *testing.T) {
		repo := repository.NewCredentialMemoryRepository()
		repo.Seed(model.Credential{APIKey: "k", APISecret: "s"})

		client := &mockExchangeClient{
			exchangeInfoFn: func(ctx context.Context) (*model.ExchangeInfo, error) {
				return &model.ExchangeInfo{Symbols: []model.Symbol{{Symbol: "ETHUSDT"}}}, nil
			},
		}
		uc := NewExchangeUseCase(client, repo)

		symbols, err := uc.TradingPairs(ctx)
		if err != nil {
			t.Fatalf("TradingPairs() error = %v", err)
		}
		if len(symbols) != 1 || symbols[0].Symbol != "ETHUSDT" {
			t.Errorf("unexpected symbols: %+v", symbols)
		}
	})
}
