package monobank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_ClientInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/personal/client-info" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Token"); got != "secret" {
			t.Errorf("Expected X-Token header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"clientId": "3MSaMMtczs",
			"name": "Test User",
			"accounts": [
				{"id": "acc1", "sendId": "s1", "balance": 123456, "creditLimit": 0, "type": "black", "currencyCode": 980, "maskedPan": ["537541******1234"], "iban": "UA1"},
				{"id": "acc2", "balance": 100, "type": "fop", "currencyCode": 978, "maskedPan": [], "iban": "UA2"}
			],
			"jars": [
				{"id": "jar1", "sendId": "jar/s", "title": "Trip", "currencyCode": 980, "balance": 5000, "goal": 100000}
			]
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "secret", time.Second, nil)
	info, err := c.ClientInfo(context.Background())
	if err != nil {
		t.Fatalf("ClientInfo failed: %v", err)
	}

	if info.Name != "Test User" {
		t.Errorf("Unexpected name %q", info.Name)
	}
	if len(info.Accounts) != 2 || len(info.Jars) != 1 {
		t.Fatalf("Unexpected counts: %d accounts, %d jars", len(info.Accounts), len(info.Jars))
	}
	if info.Accounts[0].Balance != 123456 || info.Accounts[0].CurrencyCode != 980 {
		t.Errorf("Unexpected account %+v", info.Accounts[0])
	}
	if info.Jars[0].Goal == nil || *info.Jars[0].Goal != 100000 {
		t.Errorf("Unexpected jar goal %v", info.Jars[0].Goal)
	}
}

func TestClient_MissingToken(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", time.Second, nil)
	if _, err := c.ClientInfo(context.Background()); !errors.Is(err, ErrMissingToken) {
		t.Errorf("Expected ErrMissingToken, got %v", err)
	}
}

func TestClient_Rates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bank/currency" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Token") != "" {
			t.Error("Public endpoint must not receive the token")
		}
		_, _ = w.Write([]byte(`[
			{"currencyCodeA": 840, "currencyCodeB": 980, "date": 1700000000, "rateBuy": 36.65, "rateSell": 37.4406},
			{"currencyCodeA": 985, "currencyCodeB": 980, "date": 1700000000, "rateCross": 9.2}
		]`))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", "secret", time.Second, nil)
	rates, err := c.Rates(context.Background())
	if err != nil {
		t.Fatalf("Rates failed: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("Expected 2 rates, got %d", len(rates))
	}
	if rates[0].RateSell.String() != "37.4406" {
		t.Errorf("Unexpected sell rate %s", rates[0].RateSell)
	}
	if !rates[1].RateCross.Valid {
		t.Error("Expected cross rate")
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"errorDescription": "Too many requests"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "secret", time.Second, nil)
	_, err := c.Rates(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Unexpected status %d", apiErr.StatusCode)
	}
	if !errors.Is(err, ErrRateLimited) {
		t.Error("Expected error to match ErrRateLimited")
	}
}

func TestClient_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "secret", time.Second, nil)
	if _, err := c.ClientInfo(context.Background()); err == nil {
		t.Error("Expected decode error")
	}
}
