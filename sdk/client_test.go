package sdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderdata/wanderdata/core/domain"
	ctxutil "github.com/wanderdata/wanderdata/core/shared/context"
)

func newTestClient(t *testing.T, srv *httptest.Server, backoff bool) *Client {
	t.Helper()
	cfg := DefaultConfig(srv.URL)
	cfg.Backoff = backoff
	cfg.BackoffMaxTime = 10 * time.Second
	cfg.BulkBaseURL = srv.URL + "/bulk/"
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(ctxutil.RequestIDHeader))
		w.Write([]byte(`{"message":"API health check successful"}`))
	}))
	defer srv.Close()

	msg, err := newTestClient(t, srv, false).HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "API health check successful", msg)
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"hotel_count":3,"flight_count":4,"customer_count":4,"payment_count":3,"events_count":3}`))
	}))
	defer srv.Close()

	counts, err := newTestClient(t, srv, true).GetCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.Counts{HotelCount: 3, FlightCount: 4, CustomerCount: 4, PaymentCount: 3, EventsCount: 3}, counts)
	assert.Equal(t, int32(2), hits.Load())
}

func TestRetry_ClientErrorIsPermanent(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"code":"NOT_FOUND","error":"no resource"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, true).ListEvents(context.Background(), ListOptions{})
	require.Error(t, err)
	var rerr *RemoteCallError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusNotFound, rerr.StatusCode)
	assert.Contains(t, rerr.Body, "NOT_FOUND")
	assert.Equal(t, int32(1), hits.Load())
}

func TestNoBackoff_ServerErrorFailsOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, false).GetCounts(context.Background())
	var rerr *RemoteCallError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusBadGateway, rerr.StatusCode)
	assert.True(t, rerr.Temporary())
	assert.Equal(t, int32(1), hits.Load())
}

func TestListOptions(t *testing.T) {
	tests := []struct {
		name     string
		opts     ListOptions
		expected string
	}{
		{name: "empty options send nothing", opts: ListOptions{}, expected: ""},
		{name: "status", opts: ListOptions{Status: domain.StatusCancelled}, expected: "status=CANCELLED"},
		{name: "status and limit", opts: ListOptions{Status: domain.StatusTicketed, Limit: 5}, expected: "limit=5&status=TICKETED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rawQuery, path string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				rawQuery = r.URL.RawQuery
				path = r.URL.Path
				w.Write([]byte(`[{"hotel_id":"H1","name":"Sea View","city":"Lisbon","country":"Portugal","total_bookings":2,"unique_customers":2,"total_revenue":800,"average_revenue":400}]`))
			}))
			defer srv.Close()

			items, err := newTestClient(t, srv, false).ListBookingItems(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, "/v0/booking_item/", path)
			assert.Equal(t, tt.expected, rawQuery)
			require.Len(t, items, 1)
			assert.Equal(t, "H1", items[0].HotelID)
			assert.Equal(t, 800.0, items[0].TotalRevenue)
		})
	}
}

func TestList_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	events, err := newTestClient(t, srv, false).ListEvents(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestGetBulkFile(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		if r.URL.Path == "/bulk/missing_data.csv" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("event_name,city\nWine Tour,Porto\n"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, false)
	data, err := c.GetBulkEventsFile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/bulk/events_data.csv", requested)
	assert.Contains(t, string(data), "Wine Tour")
}

func TestGetBulkFile_ParquetSuffix(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte("PAR1"))
	}))
	defer srv.Close()

	cfg := DefaultConfig(srv.URL)
	cfg.BulkFileFormat = "PARQUET"
	cfg.BulkBaseURL = srv.URL + "/bulk"
	c, err := New(cfg)
	require.NoError(t, err)

	_, err = c.GetBulkFile(context.Background(), "flight_prices")
	require.NoError(t, err)
	assert.Equal(t, "/bulk/flight_prices_data.parquet", requested)
}

func TestGetBulkFile_UnknownResource(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, true)
	for _, name := range []string{"bogus", "hotel_count"} {
		_, err := c.GetBulkFile(context.Background(), name)
		assert.ErrorIs(t, err, ErrUnknownResource)
	}
	assert.Equal(t, int32(0), hits.Load())
}

func TestGetBulkFile_NonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, false).GetBulkFile(context.Background(), "events")
	var rerr *RemoteCallError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusForbidden, rerr.StatusCode)
}

func TestBulkFileName(t *testing.T) {
	assert.Equal(t, "events_data.csv", BulkFileName("events", FormatCSV))
	assert.Equal(t, "events_data.parquet", BulkFileName("events", "Parquet"))
	assert.Equal(t, "events_data.csv", BulkFileName("events", ""))
}

func TestBulkResources(t *testing.T) {
	c, err := New(DefaultConfig("http://localhost:8080"))
	require.NoError(t, err)
	names := c.BulkResources()
	assert.Len(t, names, 15)
	assert.Contains(t, names, "booking_item")
	assert.NotContains(t, names, "hotel_count")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("WANDERDATA_API_BASE_URL", "http://api.local:8000")
	t.Setenv("WANDERDATA_BACKOFF", "false")
	t.Setenv("WANDERDATA_BACKOFF_MAX_TIME", "45")
	t.Setenv("WANDERDATA_BULK_FILE_FORMAT", "Parquet")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://api.local:8000", cfg.BaseURL)
	assert.False(t, cfg.Backoff)
	assert.Equal(t, 45*time.Second, cfg.BackoffMaxTime)
	assert.Equal(t, FormatParquet, cfg.BulkFileFormat)
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing base url", env: map[string]string{"WANDERDATA_API_BASE_URL": ""}},
		{name: "bad backoff flag", env: map[string]string{"WANDERDATA_API_BASE_URL": "http://x", "WANDERDATA_BACKOFF": "sometimes"}},
		{name: "bad format", env: map[string]string{"WANDERDATA_API_BASE_URL": "http://x", "WANDERDATA_BULK_FILE_FORMAT": "xlsx"}},
		{name: "bad max time", env: map[string]string{"WANDERDATA_API_BASE_URL": "http://x", "WANDERDATA_BACKOFF_MAX_TIME": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := ConfigFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestOverlayEnv_KeepsUnsetFields(t *testing.T) {
	t.Setenv("WANDERDATA_API_BASE_URL", "")
	t.Setenv("WANDERDATA_BULK_FILE_FORMAT", "parquet")

	cfg, err := OverlayEnv(DefaultConfig("http://localhost:8080"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, FormatParquet, cfg.BulkFileFormat)
	assert.True(t, cfg.Backoff)
}
