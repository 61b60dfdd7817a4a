package api

import "strings"

type validationError string

func (e validationError) Error() string { return string(e) }

var (
	ErrNoXColumn   error = validationError("Please select a valid X-axis column")
	ErrNoYColumns  error = validationError("Please select at least one Y-axis column")
	ErrNoChartType error = validationError("Please select a valid chart type")
)

// GraphRequest is the generate_graph payload.
type GraphRequest struct {
	GraphType string   `json:"graph_type"`
	XColumn   string   `json:"x_column"`
	YColumns  []string `json:"y_columns"`
	Colors    []string `json:"colors"`
	ColorAll  bool     `json:"color_all"`
	Download  bool     `json:"download"`
}

// Validate checks the request before it is sent.
func (r GraphRequest) Validate() error {
	if strings.TrimSpace(r.XColumn) == "" {
		return ErrNoXColumn
	}
	if len(r.YColumns) == 0 {
		return ErrNoYColumns
	}
	if strings.TrimSpace(r.GraphType) == "" {
		return ErrNoChartType
	}
	return nil
}

// Filename is the name a downloaded chart is saved under.
func (r GraphRequest) Filename() string {
	return r.GraphType + "_chart.png"
}
