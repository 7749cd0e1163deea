package usecase

import (
	"context"
	"errors"

	"trade_bridge/internal/adaptor"
	"trade_bridge/internal/model"
)

var (
	// ErrNotConnected means no credential pair has been stored yet; callers
	// render it as 401 "Binance wallet not connected".
	ErrNotConnected = errors.New("binance wallet not connected")
)

var _ adaptor.ExchangeUseCase = (*ExchangeUseCase)(nil)

type ExchangeUseCase struct {
	client      adaptor.ExchangeClient
	credentials adaptor.CredentialRepository
}

func NewExchangeUseCase(client adaptor.ExchangeClient, credentials adaptor.CredentialRepository) *ExchangeUseCase {
	return &ExchangeUseCase{
		client:      client,
		credentials: credentials,
	}
}

// Connect verifies the supplied pair by fetching account info with it. Only
// a successful fetch stores the pair; a rejected pair never overwrites a
// previously working one.
func (uc *ExchangeUseCase) Connect(ctx context.Context, req model.ConnectRequest) (*model.AccountInfo, error) {
	info, err := uc.client.Account(ctx, req.APIKey, req.APISecret)
	if err != nil {
		return nil, err
	}

	cred := model.Credential{APIKey: req.APIKey, APISecret: req.APISecret}
	if err := uc.credentials.Set(ctx, cred); err != nil {
		return nil, err
	}

	return info, nil
}

// Balance fetches account info with the stored pair and returns the balance
// list. With nonZeroOnly set, entries whose free and locked amounts both
// parse to zero or less are dropped.
func (uc *ExchangeUseCase) Balance(ctx context.Context, nonZeroOnly bool) ([]model.Balance, error) {
	cred, err := uc.connectedCredential(ctx)
	if err != nil {
		return nil, err
	}

	info, err := uc.client.Account(ctx, cred.APIKey, cred.APISecret)
	if err != nil {
		return nil, err
	}

	balances := info.Balances
	if balances == nil {
		balances = []model.Balance{}
	}
	if nonZeroOnly {
		balances = model.FilterPositive(balances)
	}
	return balances, nil
}

// TradingPairs returns the exchange symbol list. The stored-pair
// precondition is kept even though the symbol list itself is public; an
// unconnected page has nothing to do with it.
func (uc *ExchangeUseCase) TradingPairs(ctx context.Context) ([]model.Symbol, error) {
	if _, err := uc.connectedCredential(ctx); err != nil {
		return nil, err
	}

	info, err := uc.client.ExchangeInfo(ctx)
	if err != nil {
		return nil, err
	}

	symbols := info.Symbols
	if symbols == nil {
		symbols = []model.Symbol{}
	}
	return symbols, nil
}

func (uc *ExchangeUseCase) connectedCredential(ctx context.Context) (*model.Credential, error) {
	cred, err := uc.credentials.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cred == nil || !cred.IsComplete() {
		return nil, ErrNotConnected
	}
	return cred, nil
}
