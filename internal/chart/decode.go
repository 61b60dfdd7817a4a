package chart

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"strings"
)

// ErrNoGraph is returned when a generation response carries no image.
var ErrNoGraph = errors.New("chart: response has no graph")

// Response is the generate_graph JSON payload.
type Response struct {
	Graph     string   `json:"graph"`
	ChartData []Series `json:"chart_data"`
}

// DecodeResponse parses a generate_graph body into a Chart.
func DecodeResponse(body []byte) (*Chart, error) {
	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("chart: decode response: %w", err)
	}
	return r.Chart()
}

// Chart decodes the base64 image. A data URL prefix is accepted.
func (r Response) Chart() (*Chart, error) {
	raw := strings.TrimSpace(r.Graph)
	if raw == "" {
		return nil, ErrNoGraph
	}
	if strings.HasPrefix(raw, "data:") {
		if i := strings.Index(raw, ","); i >= 0 {
			raw = raw[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("chart: decode graph base64: %w", err)
	}
	return FromPNG(data, r.ChartData)
}

// FromPNG builds a Chart from raw image bytes and point metadata.
func FromPNG(data []byte, series []Series) (*Chart, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("chart: decode image: %w", err)
	}
	return &Chart{PNG: data, Image: img, Series: series}, nil
}
