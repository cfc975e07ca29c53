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

import "github.com/charmbracelet/lipgloss"

// ANSI codes for the plain fmt output of the CLI banner.
const (
	Green = "\033[92m"
	Reset = "\033[0m"
)

// Light terminals get darker shades for contrast, dark terminals brighter ones.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	colorWarning = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "244", Dark: "240"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "250", Dark: "62"}
)

type statsStyles struct {
	Title   lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Box     lipgloss.Style
}

func newStatsStyles() statsStyles {
	return statsStyles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Key:     lipgloss.NewStyle().Width(36),
		Value:   lipgloss.NewStyle().Foreground(colorSuccess),
		Warning: lipgloss.NewStyle().Foreground(colorWarning),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
	}
}
