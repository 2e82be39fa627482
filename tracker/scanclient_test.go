package tracker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/monbridgedex/bridge-lib/common/errors"
	"github.com/monbridgedex/bridge-lib/common/types"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func scanServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/messages/tx/0xabc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestMessageStatusShapePrecedence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want types.MessageStatus
	}{
		{
			name: "data status name wins",
			body: `{"data":[{"status":{"name":"DELIVERED"},"destination":{"status":"INFLIGHT"}}],"status":"FAILED"}`,
			want: types.StatusDelivered,
		},
		{
			name: "destination status when name missing",
			body: `{"data":[{"destination":{"status":"PAYLOAD_STORED"}}]}`,
			want: types.StatusPayloadStored,
		},
		{
			name: "top level status",
			body: `{"status":"inflight"}`,
			want: types.StatusInflight,
		},
		{
			name: "messages array",
			body: `{"messages":[{"status":"delivered"}]}`,
			want: types.StatusDelivered,
		},
		{
			name: "empty response defaults to inflight",
			body: `{}`,
			want: types.StatusInflight,
		},
		{
			name: "empty data array defaults to inflight",
			body: `{"data":[]}`,
			want: types.StatusInflight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := scanServer(t, tt.body)
			client := NewScanClient(server.URL, testLogger())

			status, err := client.MessageStatus(context.Background(), "0xabc")
			require.NoError(t, err)
			require.Equal(t, tt.want, status)
		})
	}
}

func TestMessageStatusHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := NewScanClient(server.URL, testLogger())

	_, err := client.MessageStatus(context.Background(), "0xabc")
	var transport *commonerrors.TransportError
	require.ErrorAs(t, err, &transport)
}

func TestMessageStatusMalformedBody(t *testing.T) {
	server := scanServer(t, `{not json`)
	client := NewScanClient(server.URL, testLogger())

	_, err := client.MessageStatus(context.Background(), "0xabc")
	var transport *commonerrors.TransportError
	require.ErrorAs(t, err, &transport)
}

func TestNewScanClientDefaultBase(t *testing.T) {
	client := NewScanClient("", testLogger())
	require.Equal(t, DefaultScanAPIBase, client.baseURL)
}
