package main

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"go.buf.build/protocolbuffers/go/prometheus/prometheus"

	"calc/remote"
)

const DefaultSeries = "calc_result"

type ConfigExpression struct {
	Series     string `json:"series"`
	Expression string `json:"expression"`
}

type ConfigRoot struct {
	Permissive  bool               `json:"permissive"`
	Verify      bool               `json:"verify"`
	Expressions []ConfigExpression `json:"expressions"`
}

func loadConfig(file string) (*ConfigRoot, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	root := &ConfigRoot{}
	if err := yaml.Unmarshal(raw, root); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", file)
	}
	if len(root.Expressions) == 0 {
		return nil, errors.Errorf("config %s has no expressions", file)
	}
	return root, nil
}

// series returns the time series an entry is written to. Entries without a
// selector are labelled with their own expression text.
func (e ConfigExpression) series() (*prometheus.TimeSeries, error) {
	if e.Series != "" {
		return remote.ParseSelector(e.Series)
	}
	return &prometheus.TimeSeries{
		Labels: []*prometheus.Label{
			{Name: remote.MetricNameLabel, Value: DefaultSeries},
			{Name: "expression", Value: e.Expression},
		},
	}, nil
}
