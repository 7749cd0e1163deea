package model

import (
	json "github.com/goccy/go-json"
)

// BotAction is the state change requested for a bot.
type BotAction string

const (
	BotActionStart BotAction = "start"
	BotActionStop  BotAction = "stop"
)

func (a BotAction) IsValid() bool {
	return a == BotActionStart || a == BotActionStop
}

// CreateBotRequest is the body of POST /api/bots/create-bot. Pair arrives in
// the front-end "BASE/QUOTE" form.
type CreateBotRequest struct {
	Name                      string  `json:"name" validate:"required"`
	AccountID                 string  `json:"account_id" validate:"required"`
	Pair                      string  `json:"pair" validate:"required"`
	BaseOrderVolume           float64 `json:"base_order_volume" validate:"required"`
	SafetyOrderVolume         float64 `json:"safety_order_volume" validate:"required"`
	SafetyOrderStepPercentage float64 `json:"safety_order_step_percentage" validate:"required"`
	MaxSafetyOrders           int     `json:"max_safety_orders" validate:"required"`
}

// BotSummary is the canonical row the bot list resolves to, whichever shape
// the vendor answered with. Active drives the start/stop toggle label.
type BotSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Pair   string `json:"pair"`
	Active bool   `json:"active"`
}

// vendorBot is the vendor's own bot row. The vendor has answered with both
// a bare array of these and a {bots: [...]} wrapper; DecodeBotList accepts
// either and nothing past the gateway ever sees the difference.
type vendorBot struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Pairs     []string `json:"pairs"`
	IsEnabled bool     `json:"is_enabled"`
}

func (b vendorBot) summary() BotSummary {
	pair := ""
	if len(b.Pairs) > 0 {
		pair = b.Pairs[0]
	}
	return BotSummary{
		ID:     b.ID,
		Name:   b.Name,
		Pair:   pair,
		Active: b.IsEnabled,
	}
}

// DecodeBotList resolves the vendor's bot list into canonical summaries.
func DecodeBotList(body []byte) ([]BotSummary, error) {
	var bots []vendorBot

	if err := json.Unmarshal(body, &bots); err != nil {
		var wrapper struct {
			Bots []vendorBot `json:"bots"`
		}
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, err
		}
		bots = wrapper.Bots
	}

	summaries := make([]BotSummary, len(bots))
	for i, b := range bots {
		summaries[i] = b.summary()
	}
	return summaries, nil
}
