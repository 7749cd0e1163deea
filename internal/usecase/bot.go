package usecase

import (
	"context"
	"errors"

	json "github.com/goccy/go-json"

	"trade_bridge/internal/adaptor"
	"trade_bridge/internal/model"
	"trade_bridge/internal/threecommas"
)

// ErrInvalidAction is a 400 for anything other than start/stop; no vendor
// call is issued.
var ErrInvalidAction = errors.New("invalid action, use start or stop")

var _ adaptor.BotUseCase = (*BotUseCase)(nil)

type BotUseCase struct {
	client adaptor.BotClient
}

func NewBotUseCase(client adaptor.BotClient) *BotUseCase {
	return &BotUseCase{client: client}
}

// CreateBot rewrites the pair into vendor form, merges the user fields into
// the fixed DCA superset and forwards the result.
func (uc *BotUseCase) CreateBot(ctx context.Context, req model.CreateBotRequest) (json.RawMessage, error) {
	pair := threecommas.ConvertPair(req.Pair)
	return uc.client.CreateBot(ctx, threecommas.NewBotPayload(req, pair))
}

func (uc *BotUseCase) ListBots(ctx context.Context) ([]model.BotSummary, error) {
	return uc.client.ListBots(ctx)
}

func (uc *BotUseCase) GetBot(ctx context.Context, id string) (json.RawMessage, error) {
	return uc.client.GetBot(ctx, id)
}

func (uc *BotUseCase) SetBotState(ctx context.Context, id string, action model.BotAction) (json.RawMessage, error) {
	if !action.IsValid() {
		return nil, ErrInvalidAction
	}
	return uc.client.SetBotState(ctx, id, action)
}

func (uc *BotUseCase) ListAccounts(ctx context.Context) (json.RawMessage, error) {
	return uc.client.ListAccounts(ctx)
}
