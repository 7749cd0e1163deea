package adaptor

import (
	"context"

	json "github.com/goccy/go-json"

	"trade_bridge/internal/model"
)

// ExchangeUseCase defines the exchange-side gateway operations.
type ExchangeUseCase interface {
	Connect(ctx context.Context, req model.ConnectRequest) (*model.AccountInfo, error)
	Balance(ctx context.Context, nonZeroOnly bool) ([]model.Balance, error)
	TradingPairs(ctx context.Context) ([]model.Symbol, error)
}

// BotUseCase defines the bot-management gateway operations.
type BotUseCase interface {
	CreateBot(ctx context.Context, req model.CreateBotRequest) (json.RawMessage, error)
	ListBots(ctx context.Context) ([]model.BotSummary, error)
	GetBot(ctx context.Context, id string) (json.RawMessage, error)
	SetBotState(ctx context.Context, id string, action model.BotAction) (json.RawMessage, error)
	ListAccounts(ctx context.Context) (json.RawMessage, error)
}

// StatusUseCase produces the liveness snapshot served over /api/health and
// pushed on the /ws stream.
type StatusUseCase interface {
	Snapshot(ctx context.Context) model.StatusSnapshot
}
