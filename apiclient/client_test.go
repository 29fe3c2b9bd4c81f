package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cryptodash/apiclient"
)

func TestURL(t *testing.T) {
	c := apiclient.New(&url.URL{Scheme: "https", Host: "dash.example.com", Path: "/ignored/"})

	for _, tc := range []struct {
		path     string
		expected string
	}{
		{"coins/", "https://dash.example.com/api/coins/"},
		{"/coins/", "https://dash.example.com/api/coins/"},
		{"coins/7/", "https://dash.example.com/api/coins/7/"},
		{"ohlc/BTC/?interval=1d", "https://dash.example.com/api/ohlc/BTC/?interval=1d"},
		{"", "https://dash.example.com/api/"},
		{"../../admin/", "https://dash.example.com/api/admin/"},
	} {
		t.Run(tc.path, func(t *testing.T) {
			require.Equal(t, tc.expected, c.URL(tc.path).String())
		})
	}
}

func TestParse(t *testing.T) {
	c, err := apiclient.Parse("http://localhost:8000")
	require.Nil(t, err)
	require.Equal(t, "http://localhost:8000/api/", c.BaseURL().String())

	_, err = apiclient.Parse("/relative")
	require.ErrorIs(t, err, apiclient.ErrEmptyOrigin)
}

func TestRequestsTargetAPIOnEveryOrigin(t *testing.T) {
	// Arrange
	seen := make(chan string, 2)
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":0,"next":null,"previous":null,"results":[]}`))
	})

	first := httptest.NewServer(h)
	defer first.Close()

	second := httptest.NewServer(h)
	defer second.Close()

	for _, srv := range []*httptest.Server{first, second} {
		c, err := apiclient.Parse(srv.URL + "/some/page", apiclient.WithHTTPClient(srv.Client()))
		require.Nil(t, err)

		// Act
		_, err = c.Coins(context.Background())

		// Assert
		require.Nil(t, err)
		require.Equal(t, "/api/coins/", <-seen)
	}
}

func TestTypedCalls(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("/api/coins/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(map[string]any{
			"count":    1,
			"next":     nil,
			"previous": nil,
			"results":  []map[string]any{{"id": 1, "project_symbol": "BTC", "investors": []string{"a16z"}}},
		})
	})
	mux.HandleFunc("/api/coins/42/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 42, "project_name": "Answer", "is_active": true, "launch_date": nil})
	})
	mux.HandleFunc("/api/tokenomics-detailed/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"BTC":{"supply":21000000}}`))
	})
	mux.HandleFunc("/api/ohlc/ETH/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[1,2,3,4]]`))
	})
	mux.HandleFunc("/api/trigger-parsing/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{"status":"success","message":"Parsing started"}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := apiclient.Parse(srv.URL, apiclient.WithHTTPClient(srv.Client()))
	require.Nil(t, err)
	ctx := context.Background()

	// Act + Assert
	coins, err := c.Coins(ctx)
	require.Nil(t, err)
	require.Len(t, coins, 1)
	require.Equal(t, "BTC", coins[0].ProjectSymbol)
	require.Equal(t, []any{"a16z"}, coins[0].Investors)

	coin, err := c.Coin(ctx, 42)
	require.Nil(t, err)
	require.Equal(t, "Answer", coin.ProjectName)
	require.True(t, coin.IsActive)
	require.Empty(t, coin.LaunchDate)

	raw, err := c.TokenomicsDetailed(ctx)
	require.Nil(t, err)
	require.JSONEq(t, `{"BTC":{"supply":21000000}}`, string(raw))

	raw, err = c.OHLC(ctx, "ETH")
	require.Nil(t, err)
	require.JSONEq(t, `[[1,2,3,4]]`, string(raw))

	status, err := c.TriggerParsing(ctx)
	require.Nil(t, err)
	require.Equal(t, apiclient.ParsingStatus{Status: "success", Message: "Parsing started"}, status)
}

func TestCoinsFollowsPages(t *testing.T) {
	// Arrange
	pages := map[string]string{
		"":  `{"count":3,"next":"http://backend.internal/api/coins/?page=2","previous":null,"results":[{"id":1},{"id":2}]}`,
		"2": `{"count":3,"next":null,"previous":"http://backend.internal/api/coins/","results":[{"id":3}]}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("page")]
		if !ok || r.URL.Path != "/api/coins/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c, err := apiclient.Parse(srv.URL, apiclient.WithHTTPClient(srv.Client()))
	require.Nil(t, err)

	// Act
	coins, err := c.Coins(context.Background())

	// Assert
	require.Nil(t, err)
	require.Len(t, coins, 3)
	for i, coin := range coins {
		require.Equal(t, i+1, coin.ID)
	}

	// Act
	page, err := c.CoinsPage(context.Background(), 2)

	// Assert
	require.Nil(t, err)
	require.Equal(t, 3, page.Count)
	require.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
	require.Len(t, page.Results, 1)

	// Act
	_, err = c.CoinsPage(context.Background(), 9)

	// Assert
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestDoError(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := apiclient.Parse(srv.URL, apiclient.WithHTTPClient(srv.Client()))
	require.Nil(t, err)

	// Act
	_, err = c.Coin(context.Background(), 404)

	// Assert
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, http.MethodGet, apiErr.Method)
	require.Contains(t, apiErr.Body, "nope")
	require.Contains(t, apiErr.URL, "/api/coins/404/")
}
