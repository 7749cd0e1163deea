package adaptor

import (
	"context"

	json "github.com/goccy/go-json"

	"trade_bridge/internal/model"
	"trade_bridge/internal/threecommas"
)

// CredentialRepository stores the single connected exchange credential pair.
// Get returns nil when no pair has been stored. Set overwrites any prior
// pair; there is no merge.
type CredentialRepository interface {
	Get(ctx context.Context) (*model.Credential, error)
	Set(ctx context.Context, cred model.Credential) error
}

// Datastore is whatever backs the credential store, reduced to the liveness
// probe the status snapshot reports on.
type Datastore interface {
	Ping(ctx context.Context) error
}

// ExchangeClient is the outbound exchange API surface the bridge forwards
// to. Credentials travel with each call.
type ExchangeClient interface {
	Account(ctx context.Context, apiKey, apiSecret string) (*model.AccountInfo, error)
	ExchangeInfo(ctx context.Context) (*model.ExchangeInfo, error)
}

// BotClient is the outbound bot-management API surface.
type BotClient interface {
	CreateBot(ctx context.Context, payload threecommas.BotPayload) (json.RawMessage, error)
	ListBots(ctx context.Context) ([]model.BotSummary, error)
	GetBot(ctx context.Context, id string) (json.RawMessage, error)
	SetBotState(ctx context.Context, id string, action model.BotAction) (json.RawMessage, error)
	ListAccounts(ctx context.Context) (json.RawMessage, error)
}
