package threecommas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"trade_bridge/internal/model"
)

// Vendor paths. The create and list endpoints predate the vendor's
// "/public/api" prefix and still answer on the short form; the signature is
// computed over whichever exact path is called, so these strings must not be
// normalized.
const (
	pathCreateBot = "/ver1/bots/create"
	pathListBots  = "/ver1/bots"
	pathBots      = "/public/api/ver1/bots"
	pathAccounts  = "/public/api/ver1/accounts"
)

var ErrNotConfigured = errors.New("3Commas API key and secret are not configured")

// Client talks to the bot-management API. Every request carries the APIKEY
// header and a Signature computed over the request path.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL, apiKey, apiSecret string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: httpClient,
		log:        log.With().Str("vendor", "3commas").Logger(),
	}
}

// CreateBot posts a full DCA payload and returns the vendor's created-bot
// body untouched.
func (c *Client) CreateBot(ctx context.Context, payload BotPayload) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, pathCreateBot, payload)
}

// ListBots fetches all bots and resolves the vendor's two observed list
// shapes into canonical summaries.
func (c *Client) ListBots(ctx context.Context) ([]model.BotSummary, error) {
	body, err := c.do(ctx, http.MethodGet, pathListBots, nil)
	if err != nil {
		return nil, err
	}
	bots, err := model.DecodeBotList(body)
	if err != nil {
		return nil, &VendorError{Err: fmt.Errorf("decode bot list: %w", err)}
	}
	return bots, nil
}

func (c *Client) GetBot(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, pathBots+"/"+id, nil)
}

// SetBotState starts or stops a bot. The action must be validated before
// this call; it is interpolated into the signed path.
func (c *Client) SetBotState(ctx context.Context, id string, action model.BotAction) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("%s/%s/%s", pathBots, id, action), struct{}{})
}

func (c *Client) ListAccounts(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, pathAccounts, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return nil, &VendorError{Err: ErrNotConfigured}
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &VendorError{Err: fmt.Errorf("encode payload: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &VendorError{Err: err}
	}
	req.Header.Set("APIKEY", c.apiKey)
	req.Header.Set("Signature", Sign(path, c.apiSecret))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("request failed")
		return nil, &VendorError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &VendorError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("vendor rejected request")
		return nil, &VendorError{Status: resp.StatusCode, Body: respBody}
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("vendor call ok")
	return respBody, nil
}
