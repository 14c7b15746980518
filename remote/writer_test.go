package remote

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/stretchr/testify/require"
	"go.buf.build/protocolbuffers/go/prometheus/prometheus"
)

func TestNewWriterJoinsPath(t *testing.T) {
	w, err := NewWriter("http://localhost:9090/prom")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9090/prom/api/v1/write", w.URL())

	_, err = NewWriter("localhost")
	require.Error(t, err)
}

func TestWriteSendsSnappyProtobuf(t *testing.T) {
	var received prometheus.WriteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, WritePath, r.URL.Path)
		require.Equal(t, "snappy", r.Header.Get("Content-Encoding"))
		require.Equal(t, "application/x-protobuf", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		decoded, err := snappy.Decode(nil, body)
		require.NoError(t, err)
		require.NoError(t, proto.Unmarshal(decoded, &received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	series, err := ParseSelector(`calc_result{case="precedence"}`)
	require.NoError(t, err)

	w, err := NewWriter(server.URL)
	require.NoError(t, err)
	err = w.Write(context.Background(), []Result{{Series: series, Value: 14, Timestamp: 1000}})
	require.NoError(t, err)

	require.Len(t, received.Timeseries, 1)
	require.Len(t, received.Timeseries[0].Samples, 1)
	require.Equal(t, 14.0, received.Timeseries[0].Samples[0].Value)
	require.Equal(t, int64(1000), received.Timeseries[0].Samples[0].Timestamp)
	require.Len(t, received.Timeseries[0].Labels, 2)
	require.Len(t, received.Metadata, 1)
	require.Equal(t, "calc_result", received.Metadata[0].MetricFamilyName)
	require.Equal(t, prometheus.MetricMetadata_GAUGE, received.Metadata[0].Type)
}

func TestWriteStatusCodes(t *testing.T) {
	status := http.StatusInternalServerError
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	series, err := ParseSelector("calc_result")
	require.NoError(t, err)
	w, err := NewWriter(server.URL)
	require.NoError(t, err)
	results := []Result{{Series: series, Value: 1}}

	err = w.Write(context.Background(), results)
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")

	status = http.StatusBadRequest
	require.NoError(t, w.Write(context.Background(), results))
}

func TestWriteCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	series, err := ParseSelector("calc_result")
	require.NoError(t, err)
	w, err := NewWriter(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, w.Write(ctx, []Result{{Series: series, Value: 1}}))
}
