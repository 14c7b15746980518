package remote

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"go.buf.build/protocolbuffers/go/prometheus/prometheus"
)

const (
	WritePath      = "/api/v1/write"
	DefaultTimeout = 30 * time.Second
)

// Result is one evaluated expression destined for a series.
type Result struct {
	Series    *prometheus.TimeSeries
	Value     float64
	Timestamp int64
}

// Writer sends results to a Prometheus remote-write endpoint.
type Writer struct {
	url    *url.URL
	client *http.Client
}

func NewWriter(baseUrl string) (*Writer, error) {
	parsedUrl, err := url.Parse(baseUrl)
	if err != nil {
		return nil, errors.Wrap(err, "invalid prometheus url")
	}
	if parsedUrl.Scheme == "" || parsedUrl.Host == "" {
		return nil, errors.Errorf("invalid prometheus url %q", baseUrl)
	}
	parsedUrl.Path = path.Join(parsedUrl.Path, WritePath)

	return &Writer{
		url: parsedUrl,
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}, nil
}

func (w *Writer) URL() string {
	return w.url.String()
}

// NewWriteRequest builds a request with one gauge sample per result.
func NewWriteRequest(results []Result) *prometheus.WriteRequest {
	wr := &prometheus.WriteRequest{}
	for _, result := range results {
		ts := &prometheus.TimeSeries{
			Labels: result.Series.Labels,
			Samples: []*prometheus.Sample{{
				Value:     result.Value,
				Timestamp: result.Timestamp,
			}},
		}
		wr.Timeseries = append(wr.Timeseries, ts)
		wr.Metadata = append(wr.Metadata, &prometheus.MetricMetadata{
			Type:             prometheus.MetricMetadata_GAUGE,
			MetricFamilyName: metricName(result.Series),
		})
	}
	return wr
}

func (w *Writer) Write(ctx context.Context, results []Result) error {
	data, err := proto.Marshal(NewWriteRequest(results))
	if err != nil {
		return errors.Wrap(err, "marshal write request")
	}
	encoded := snappy.Encode(nil, data)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url.String(), bytes.NewReader(encoded))
	if err != nil {
		return errors.Wrap(err, "build write request")
	}

	req.Header.Set("Content-Type", "application/x-protobuf")
	req.Header.Set("Content-Encoding", "snappy")
	req.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")

	resp, err := w.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send write request")
	}

	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusBadRequest {
			// possibly duplicate data? ignore it.
			log.Println("invalid data detected, ignoring it")
			return nil
		}

		return errors.Errorf("unexpected remote write status code: %v", resp.StatusCode)
	}

	return nil
}

func metricName(series *prometheus.TimeSeries) string {
	for _, label := range series.Labels {
		if label.Name == MetricNameLabel {
			return label.Value
		}
	}
	return ""
}
