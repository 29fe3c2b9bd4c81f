package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// A Coin is an upcoming crypto project the backend tracks.
type Coin struct {
	ID                 int       `json:"id"`
	ProjectName        string    `json:"project_name"`
	ProjectSymbol      string    `json:"project_symbol"`
	ProjectURL         string    `json:"project_url"`
	ProjectType        string    `json:"project_type"`
	InitialCap         string    `json:"initial_cap"`
	IDORaise           string    `json:"ido_raise"`
	LaunchDate         string    `json:"launch_date"`
	LaunchDateOriginal string    `json:"launch_date_original"`
	MoniScore          string    `json:"moni_score"`
	Investors          []any     `json:"investors"`
	Launchpad          []any     `json:"launchpad"`
	IsActive           bool      `json:"is_active"`
	UpdatedAt          time.Time `json:"updated_at"`
	ParsedAt           time.Time `json:"parsed_at"`
}

// A ParsingStatus acknowledges a request to run the backend's parsers.
type ParsingStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// A CoinPage is one page of the backend's paginated coin listing.
// Next and Previous are nil on the last and first pages.
type CoinPage struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Coin  `json:"results"`
}

// CoinsPage retrieves a single page of coins, numbered from 1.
func (c *Client) CoinsPage(ctx context.Context, page int) (CoinPage, error) {
	p := "coins/"
	if page > 1 {
		p += "?page=" + strconv.Itoa(page)
	}

	var cp CoinPage
	if err := c.get(ctx, p, &cp); err != nil {
		return CoinPage{}, err
	}

	return cp, nil
}

// Coins lists every tracked coin, walking pages until the backend reports no next page.
func (c *Client) Coins(ctx context.Context) ([]Coin, error) {
	var coins []Coin
	for page := 1; ; page++ {
		cp, err := c.CoinsPage(ctx, page)
		if err != nil {
			return nil, err
		}

		if coins == nil {
			coins = make([]Coin, 0, cp.Count)
		}
		coins = append(coins, cp.Results...)

		if cp.Next == nil || len(cp.Results) == 0 {
			return coins, nil
		}
	}
}

// Coin retrieves the coin with id.
func (c *Client) Coin(ctx context.Context, id int) (Coin, error) {
	var coin Coin
	if err := c.get(ctx, fmt.Sprintf("coins/%d/", id), &coin); err != nil {
		return Coin{}, err
	}

	return coin, nil
}

// TokenomicsDetailed retrieves the detailed tokenomics of every coin, undecoded.
func (c *Client) TokenomicsDetailed(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "tokenomics-detailed/", &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// OHLC retrieves open-high-low-close candles for symbol, undecoded.
func (c *Client) OHLC(ctx context.Context, symbol string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "ohlc/"+symbol+"/", &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// TriggerParsing starts the backend's parsers in the background.
func (c *Client) TriggerParsing(ctx context.Context) (ParsingStatus, error) {
	req, err := c.NewRequest(ctx, http.MethodPost, "trigger-parsing/", nil)
	if err != nil {
		return ParsingStatus{}, err
	}

	var status ParsingStatus
	if err := c.Do(req, &status); err != nil {
		return ParsingStatus{}, err
	}

	return status, nil
}
