package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
)

// ErrConversionFailed means the rate provider answered with a non-success
// status. Callers must abort the write they were about to perform.
var ErrConversionFailed = errors.New("failed to exchange")

// Client calls the exchangerate-api pair endpoint. The provider converts the
// amount itself and returns the result pre-multiplied, so there is no local
// rate arithmetic here. Rates are volatile; nothing is cached or retried.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTP:    &http.Client{},
	}
}

type pairResponse struct {
	ConversionResult decimal.Decimal `json:"conversion_result"`
}

func (c *Client) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/pair/%s/%s/%s", c.BaseURL, c.APIKey, from, to, amount.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Decimal{}, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return decimal.Decimal{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return decimal.Decimal{}, fmt.Errorf("%w: provider returned %d", ErrConversionFailed, res.StatusCode)
	}

	var out pairResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return decimal.Decimal{}, err
	}
	return out.ConversionResult, nil
}
