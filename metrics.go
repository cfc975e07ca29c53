// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"sort"
	"strings"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/cybrota/bantree/banindex"
)

// runMetrics holds the counters of a single run in a private registry so
// repeated runs (and tests) never collide on the global one.
type runMetrics struct {
	registry *prom.Registry

	RecordsIngested prom.Counter
	LinesSkipped    prom.Counter
	Rotations       prom.Gauge
	Rebuilds        prom.Gauge
	RebuiltNodes    prom.Gauge
	TreeHeight      prom.Gauge
	TreeSize        prom.Gauge
	Queries         *prom.CounterVec
	PhaseSeconds    *prom.GaugeVec
}

func newRunMetrics(strategy banindex.Strategy) *runMetrics {
	labels := prom.Labels{"strategy": string(strategy)}
	m := &runMetrics{
		registry: prom.NewRegistry(),
		RecordsIngested: prom.NewCounter(prom.CounterOpts{
			Name:        "bantree_records_ingested_total",
			Help:        "Ban records inserted into the index",
			ConstLabels: labels,
		}),
		LinesSkipped: prom.NewCounter(prom.CounterOpts{
			Name:        "bantree_lines_skipped_total",
			Help:        "Malformed ban lines dropped during ingestion",
			ConstLabels: labels,
		}),
		Rotations: prom.NewGauge(prom.GaugeOpts{
			Name:        "bantree_rotations",
			Help:        "AVL rotations performed while building",
			ConstLabels: labels,
		}),
		Rebuilds: prom.NewGauge(prom.GaugeOpts{
			Name:        "bantree_rebuilds",
			Help:        "Scapegoat subtree rebuilds performed while building",
			ConstLabels: labels,
		}),
		RebuiltNodes: prom.NewGauge(prom.GaugeOpts{
			Name:        "bantree_rebuilt_nodes",
			Help:        "Nodes reallocated by scapegoat rebuilds",
			ConstLabels: labels,
		}),
		TreeHeight: prom.NewGauge(prom.GaugeOpts{
			Name:        "bantree_tree_height",
			Help:        "Nodes on the longest root-to-leaf path",
			ConstLabels: labels,
		}),
		TreeSize: prom.NewGauge(prom.GaugeOpts{
			Name:        "bantree_tree_size",
			Help:        "Nodes in the index",
			ConstLabels: labels,
		}),
		Queries: prom.NewCounterVec(prom.CounterOpts{
			Name:        "bantree_queries_total",
			Help:        "Queries answered, by lookup path and outcome",
			ConstLabels: labels,
		}, []string{"path", "outcome"}),
		PhaseSeconds: prom.NewGaugeVec(prom.GaugeOpts{
			Name:        "bantree_phase_seconds",
			Help:        "Wall-clock duration of each run phase",
			ConstLabels: labels,
		}, []string{"phase"}),
	}
	m.registry.MustRegister(
		m.RecordsIngested, m.LinesSkipped,
		m.Rotations, m.Rebuilds, m.RebuiltNodes,
		m.TreeHeight, m.TreeSize,
		m.Queries, m.PhaseSeconds,
	)
	return m
}

// observeIndex copies the tree's shape and balancing work into gauges.
func (m *runMetrics) observeIndex(ix banindex.Index) {
	stats := ix.Stats()
	m.Rotations.Set(float64(stats.Rotations))
	m.Rebuilds.Set(float64(stats.Rebuilds))
	m.RebuiltNodes.Set(float64(stats.RebuiltNodes))
	m.TreeHeight.Set(float64(ix.Height()))
	m.TreeSize.Set(float64(ix.Len()))
}

func (m *runMetrics) observeQuery(path string, result banindex.QueryResult) {
	outcome := "not_found"
	if result.Found {
		outcome = "found"
	}
	m.Queries.WithLabelValues(path, outcome).Inc()
}

func (m *runMetrics) observeLaps(laps []Lap) {
	for _, lap := range laps {
		m.PhaseSeconds.WithLabelValues(lap.Name).Set(lap.Elapsed.Seconds())
	}
}

type metricSample struct {
	Name   string
	Labels string
	Value  float64
}

// samples flattens the registry into name/labels/value rows sorted by name.
// The constant strategy label is left out.
func (m *runMetrics) samples() ([]metricSample, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []metricSample
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			out = append(out, metricSample{
				Name:   family.GetName(),
				Labels: formatLabels(metric.GetLabel()),
				Value:  metricValue(family.GetType(), metric),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	var parts []string
	for _, pair := range pairs {
		if pair.GetName() == "strategy" {
			continue
		}
		parts = append(parts, pair.GetName()+"="+pair.GetValue())
	}
	return strings.Join(parts, ",")
}

func metricValue(kind dto.MetricType, metric *dto.Metric) float64 {
	switch kind {
	case dto.MetricType_COUNTER:
		return metric.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return metric.GetGauge().GetValue()
	default:
		return 0
	}
}
