// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Point is a floor-plan coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// VectorPath is one path extracted from a floor-plan drawing (wall outline,
// zone boundary, door).
type VectorPath struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
	Closed bool    `json:"closed,omitempty"`
	Stroke string  `json:"stroke,omitempty"`
	Fill   string  `json:"fill,omitempty"`
}

// VectorData is the full set of paths extracted for one floor plan.
type VectorData struct {
	Paths       []VectorPath `json:"paths"`
	Width       float64      `json:"width,omitempty"`
	Height      float64      `json:"height,omitempty"`
	ExtractedAt time.Time    `json:"extracted_at"`
}
