// Package exchange holds the Binance REST client the bridge connects user
// wallets through, plus the normalizer that turns Binance failures into
// display-ready messages.
package exchange

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"trade_bridge/internal/model"
)

// recvWindow matches what the original integration always sent; Binance
// rejects signed requests whose timestamp drifts beyond it.
const recvWindow = "60000"

// Client is a minimal Binance REST client covering the two calls the bridge
// forwards: signed account info and the public symbol list. Credentials are
// passed per call, never stored on the client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log.With().Str("vendor", "binance").Logger(),
	}
}

// Account fetches account metadata and balances with the supplied
// credentials. The query string is signed with HMAC-SHA256 per Binance's
// signed-endpoint scheme.
func (c *Client) Account(ctx context.Context, apiKey, apiSecret string) (*model.AccountInfo, error) {
	query := url.Values{}
	query.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
	query.Set("recvWindow", recvWindow)

	encoded := query.Encode()
	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write([]byte(encoded))
	encoded += "&signature=" + hex.EncodeToString(mac.Sum(nil))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v3/account?"+encoded, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-MBX-APIKEY", apiKey)

	body, err := c.send(req)
	if err != nil {
		return nil, err
	}

	var info model.AccountInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode account info: %w", err)
	}
	return &info, nil
}

// ExchangeInfo fetches the exchange symbol list.
func (c *Client) ExchangeInfo(ctx context.Context) (*model.ExchangeInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v3/exchangeInfo", nil)
	if err != nil {
		return nil, err
	}

	body, err := c.send(req)
	if err != nil {
		return nil, err
	}

	var info model.ExchangeInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode exchange info: %w", err)
	}
	return &info, nil
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("path", req.URL.Path).Msg("request failed")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != 0 {
			c.log.Warn().Int64("code", apiErr.Code).Str("path", req.URL.Path).Msg("exchange rejected request")
			return nil, &apiErr
		}
		return nil, fmt.Errorf("binance: unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
