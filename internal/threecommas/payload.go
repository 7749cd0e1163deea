package threecommas

import (
	"strings"

	"trade_bridge/internal/model"
)

// ConvertPair rewrites a front-end "BASE/QUOTE" pair into the vendor's
// "QUOTE_BASE" token form. Pairs without a slash pass through unchanged.
func ConvertPair(pair string) string {
	base, quote, found := strings.Cut(pair, "/")
	if !found {
		return pair
	}
	return quote + "_" + base
}

// BotPayload is the full DCA bot creation body. The user supplies only the
// handful of fields on CreateBotRequest; everything else is a fixed default
// the vendor requires on every create call.
type BotPayload struct {
	Name                      string   `json:"name"`
	AccountID                 string   `json:"account_id"`
	Pairs                     []string `json:"pairs"`
	BaseOrderVolume           float64  `json:"base_order_volume"`
	BaseOrderVolumeType       string   `json:"base_order_volume_type"`
	SafetyOrderVolume         float64  `json:"safety_order_volume"`
	SafetyOrderVolumeType     string   `json:"safety_order_volume_type"`
	TakeProfit                float64  `json:"take_profit"`
	TakeProfitType            string   `json:"take_profit_type"`
	Strategy                  string   `json:"strategy"`
	MartingaleVolumeCoeff     float64  `json:"martingale_volume_coefficient"`
	MartingaleStepCoeff       float64  `json:"martingale_step_coefficient"`
	MaxSafetyOrders           int      `json:"max_safety_orders"`
	SafetyOrderStepPercentage float64  `json:"safety_order_step_percentage"`
	MaxActiveDeals            int      `json:"max_active_deals"`
	SafetyOrdersCount         int      `json:"safety_orders_count"`
	StartOrderType            string   `json:"start_order_type"`
	LeverageType              string   `json:"leverage_type"`
	LeverageCustomValue       *float64 `json:"leverage_custom_value"`
	StopLossPercentage        *float64 `json:"stop_loss_percentage"`
	Cooldown                  int      `json:"cooldown"`
	MinVolumeBTC24h           *float64 `json:"min_volume_btc_24h"`
	DealStartDelaySeconds     int      `json:"deal_start_delay_seconds"`
	DisableAfterDealsCount    *int     `json:"disable_after_deals_count"`
	AllowedDealsOnSamePair    int      `json:"allowed_deals_on_same_pair"`
	TrailingEnabled           bool     `json:"trailing_enabled"`
	TrailingDeviation         *float64 `json:"trailing_deviation"`
	StopLossTimeoutEnabled    bool     `json:"stop_loss_timeout_enabled"`
	StopLossTimeoutInSeconds  *int     `json:"stop_loss_timeout_in_seconds"`
	MinPrice                  *float64 `json:"min_price"`
	MaxPrice                  *float64 `json:"max_price"`
	CloseDealsTimeout         *int     `json:"close_deals_timeout"`
	StepVolumePercentage      *float64 `json:"step_volume_percentage"`
	Active                    bool     `json:"active"`
}

// NewBotPayload merges the user's fields into the fixed superset. The pair
// must already be in vendor form.
func NewBotPayload(req model.CreateBotRequest, pair string) BotPayload {
	return BotPayload{
		Name:                      req.Name,
		AccountID:                 req.AccountID,
		Pairs:                     []string{pair},
		BaseOrderVolume:           req.BaseOrderVolume,
		BaseOrderVolumeType:       "quote_currency",
		SafetyOrderVolume:         req.SafetyOrderVolume,
		SafetyOrderVolumeType:     "quote_currency",
		TakeProfit:                1.5,
		TakeProfitType:            "total",
		Strategy:                  "long",
		MartingaleVolumeCoeff:     1,
		MartingaleStepCoeff:       1,
		MaxSafetyOrders:           req.MaxSafetyOrders,
		SafetyOrderStepPercentage: req.SafetyOrderStepPercentage,
		MaxActiveDeals:            1,
		SafetyOrdersCount:         req.MaxSafetyOrders,
		StartOrderType:            "market",
		LeverageType:              "not_specified",
		AllowedDealsOnSamePair:    1,
		Active:                    true,
	}
}
