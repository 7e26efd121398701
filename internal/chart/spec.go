package chart

import "time"

// Side places a y axis on the left or right of the plot.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// TickInteger formats ticks as comma-grouped integers.
const TickInteger = ",d"

// Axis is one y axis. The first axis of a Spec is the primary (left) one.
type Axis struct {
	Title      string `json:"title"`
	Side       Side   `json:"side"`
	TickFormat string `json:"tick_format,omitempty"`
}

// Trace is one named line. Axis indexes Spec.Axes.
type Trace struct {
	Name string      `json:"name"`
	Axis int         `json:"axis"`
	X    []time.Time `json:"x"`
	Y    []float64   `json:"y"`
}

// Spec describes a chart independently of the rendering library.
type Spec struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	XTitle           string  `json:"x_title"`
	Axes             []Axis  `json:"axes"`
	Traces           []Trace `json:"traces"`
	HorizontalLegend bool    `json:"horizontal_legend"`
}
