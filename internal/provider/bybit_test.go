package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"coinone-mcp/internal/domain"
)

func TestBybitGetKlines(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/market/kline" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"category":"linear","symbol":"BTCUSDT","list":[
			["1700000120000","101","103","100","102","5","510"],
			["1700000060000","100","102","99","101","4","404"]
		]},"retExtInfo":{},"time":1700000130000}`))
	}))
	defer srv.Close()

	p := NewBybitProvider(nil, ClientConfig{BaseURL: srv.URL})
	end := int64(1700000200000)
	series, err := p.GetKlines(context.Background(), KlineQuery{
		Category: "linear", Symbol: "BTCUSDT", Interval: "1", Limit: 2, End: &end,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "category=linear&end=1700000200000&interval=1&limit=2&symbol=BTCUSDT" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if series.Symbol != "BTCUSDT" || series.Category != "linear" {
		t.Fatalf("unexpected series header: %+v", series)
	}
	if len(series.Klines) != 2 {
		t.Fatalf("expected 2 klines, got %d", len(series.Klines))
	}
	newest := series.Klines[0]
	if newest.StartTime != 1700000120000 || newest.Close != "102" || newest.Turnover != "510" {
		t.Fatalf("unexpected newest kline: %+v", newest)
	}
}

func TestBybitGetKlinesFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "ret code", body: `{"retCode":10001,"retMsg":"params error","result":{}}`},
		{name: "short row", body: `{"retCode":0,"result":{"category":"linear","symbol":"X","list":[["1","2","3"]]}}`},
		{name: "bad timestamp", body: `{"retCode":0,"result":{"category":"linear","symbol":"X","list":[["t","1","1","1","1","1","1"]]}}`},
		{name: "null", body: `null`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			p := NewBybitProvider(nil, ClientConfig{BaseURL: srv.URL})
			_, err := p.GetKlines(context.Background(), KlineQuery{Category: "linear", Symbol: "X", Interval: "1", Limit: 1})
			if !errors.Is(err, domain.ErrFetchFailed) {
				t.Fatalf("expected fetch failure, got %v", err)
			}
		})
	}
}

func TestBybitUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewBybitProvider(nil, ClientConfig{BaseURL: url})
	_, err := p.GetKlines(context.Background(), KlineQuery{Category: "linear", Symbol: "BTCUSDT", Interval: "1", Limit: 1})
	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
}
