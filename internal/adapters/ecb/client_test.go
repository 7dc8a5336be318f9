package ecb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "KEY,FREQ,CURRENCY,CURRENCY_DENOM,EXR_TYPE,EXR_SUFFIX,TIME_PERIOD,OBS_VALUE,OBS_STATUS\n"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL}, srv.Client(), nil), &calls
}

func TestFetchRate_BuildsSeriesURL(t *testing.T) {
	var gotPath, gotStart, gotEnd, gotFormat string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotStart = r.URL.Query().Get("startPeriod")
		gotEnd = r.URL.Query().Get("endPeriod")
		gotFormat = r.URL.Query().Get("format")
		_, _ = w.Write([]byte(csvHeader + "EXR.D.USD.EUR.SP00.A,D,USD,EUR,SP00,A,2024-01-15,1.0945,A\n"))
	})

	rate, err := client.FetchRate(context.Background(), "usd", date(2024, 1, 15))

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.0945").Equal(rate))
	assert.Equal(t, "/D.USD.EUR.SP00.A", gotPath)
	assert.Equal(t, "2024-01-15", gotStart)
	assert.Equal(t, "2024-01-15", gotEnd)
	assert.Equal(t, "csvdata", gotFormat)
}

func TestFetchRate_FindsColumnsByName(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OBS_VALUE,TIME_PERIOD\n162.5,2024-01-15\n"))
	})

	rate, err := client.FetchRate(context.Background(), "JPY", date(2024, 1, 15))

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("162.5").Equal(rate))
}

func TestFetchRate_Unavailable(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "header only", body: csvHeader},
		{name: "missing value column", body: "KEY,TIME_PERIOD\nEXR,2024-01-15\n"},
		{name: "non numeric value", body: csvHeader + "EXR.D.USD.EUR.SP00.A,D,USD,EUR,SP00,A,2024-01-15,NaN-ish,A\n"},
		{name: "zero value", body: csvHeader + "EXR.D.USD.EUR.SP00.A,D,USD,EUR,SP00,A,2024-01-15,0,A\n"},
		{name: "negative value", body: csvHeader + "EXR.D.USD.EUR.SP00.A,D,USD,EUR,SP00,A,2024-01-15,-1.2,A\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			rate, err := client.FetchRate(context.Background(), "USD", date(2024, 1, 15))

			require.Error(t, err)
			assert.ErrorIs(t, err, providers.ErrRateUnavailable)
			assert.True(t, rate.IsZero())
		})
	}
}

func TestFetchRate_NonSuccessStatus(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FetchRate(context.Background(), "USD", date(2024, 1, 15))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestFetchRate_NotFoundIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("No results found."))
	})

	_, err := client.FetchRate(context.Background(), "USD", date(2024, 1, 14))

	require.Error(t, err)
	assert.ErrorIs(t, err, providers.ErrRateUnavailable)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchRate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	client := NewClient(Config{BaseURL: srv.URL, SingleTimeout: 50 * time.Millisecond}, srv.Client(), nil)

	_, err := client.FetchRate(context.Background(), "USD", date(2024, 1, 15))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchRange_CollectsValidRows(t *testing.T) {
	body := csvHeader +
		"EXR.D.USD.EUR.SP00.A,D,USD,EUR,SP00,A,2024-01-08,1.0950,A\n" +
		"EXR.D.USD.EUR.SP00.A,D,USD,EUR,SP00,A,2024-01-09,,A\n" +
		"EXR.D.USD.EUR.SP00.A,D,USD,EUR,SP00,A,2024-01-10,1.0970,A\n" +
		"EXR.D.USD.EUR.SP00.A,D,USD,EUR,SP00,A,2024-01-11,-3,A\n" +
		"EXR.D.USD.EUR.SP00.A,D,USD,EUR,SP00,A,2024-01-12,1.0900,A\n" +
		"EXR.D.USD.EUR.SP00.A,D,USD,EUR,SP00,A,2024-01-12,1.0901,A\n"
	var gotStart, gotEnd string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotStart = r.URL.Query().Get("startPeriod")
		gotEnd = r.URL.Query().Get("endPeriod")
		_, _ = w.Write([]byte(body))
	})

	rates, err := client.FetchRange(context.Background(), "USD", date(2024, 1, 7), date(2024, 1, 14))

	require.NoError(t, err)
	assert.Equal(t, "2024-01-07", gotStart)
	assert.Equal(t, "2024-01-14", gotEnd)
	require.Len(t, rates, 3)
	assert.True(t, decimal.RequireFromString("1.0950").Equal(rates[date(2024, 1, 8)]))
	assert.True(t, decimal.RequireFromString("1.0970").Equal(rates[date(2024, 1, 10)]))
	assert.True(t, decimal.RequireFromString("1.0901").Equal(rates[date(2024, 1, 12)]), "last row wins for a repeated date")
}

func TestFetchRange_EmptyResponses(t *testing.T) {
	for _, body := range []string{"", csvHeader} {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})

		rates, err := client.FetchRange(context.Background(), "USD", date(2024, 1, 7), date(2024, 1, 14))

		require.NoError(t, err)
		assert.Empty(t, rates)
	}
}

func TestFetchRange_NotFoundIsEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rates, err := client.FetchRange(context.Background(), "USD", date(2024, 1, 13), date(2024, 1, 14))

	require.NoError(t, err)
	assert.Empty(t, rates)
}

func TestFetchRange_NonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rates, err := client.FetchRange(context.Background(), "XXX", date(2024, 1, 7), date(2024, 1, 14))

	require.Error(t, err)
	assert.Nil(t, rates)
}
