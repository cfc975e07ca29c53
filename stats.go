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
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStats draws the run summary and every collected metric in a box.
func renderStats(report *RunReport, samples []metricSample) string {
	styles := newStatsStyles()

	var rows []string
	rows = append(rows, styles.Title.Render(fmt.Sprintf("bantree %s run", report.Strategy)))
	row := func(key, value string) {
		rows = append(rows, styles.Key.Render(key)+styles.Value.Render(value))
	}

	row("records", fmt.Sprintf("%d", report.Records))
	if report.Skipped > 0 {
		rows = append(rows, styles.Key.Render("skipped lines")+styles.Warning.Render(fmt.Sprintf("%d", report.Skipped)))
	}
	row("queries (found)", fmt.Sprintf("%d (%d)", report.Queries, report.Found))
	row("height", fmt.Sprintf("%d", report.Height))
	for _, lap := range report.Laps {
		row(lap.Name, lap.Elapsed.String())
	}

	if len(samples) > 0 {
		rows = append(rows, "", styles.Muted.Render("metrics"))
		for _, s := range samples {
			name := strings.TrimPrefix(s.Name, "bantree_")
			if s.Labels != "" {
				name += "{" + s.Labels + "}"
			}
			row(name, formatSampleValue(s.Value))
		}
	}

	return styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSampleValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.6f", v)
}
