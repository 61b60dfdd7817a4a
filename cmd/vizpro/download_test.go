package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"vizpro/internal/config"
)

func TestRunDownloadSavesChart(t *testing.T) {
	var got struct {
		GraphType string   `json:"graph_type"`
		XColumn   string   `json:"x_column"`
		YColumns  []string `json:"y_columns"`
		Download  bool     `json:"download"`
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload_file", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"categories":["month","sales","cost"]}`))
	})
	mux.HandleFunc("/api/generate_graph", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("\x89PNG fake"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	dataset := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(dataset, []byte("month,sales,cost\njan,1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.APIURL = srv.URL + "/api"
	cfg.DownloadDir = filepath.Join(dir, "out")

	opts := downloadOptions{graphType: "bar", y: []string{"cost"}}
	path, err := runDownload(context.Background(), cfg, dataset, opts)
	if err != nil {
		t.Fatalf("runDownload() = %v", err)
	}
	if filepath.Base(path) != "bar_chart.png" {
		t.Fatalf("path = %q; want bar_chart.png", path)
	}
	if got.GraphType != "bar" || got.XColumn != "month" || !slices.Equal(got.YColumns, []string{"cost"}) || !got.Download {
		t.Fatalf("request = %+v", got)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "\x89PNG fake" {
		t.Fatalf("saved file = %q, %v", data, err)
	}
}

func TestRunDownloadRejectsUnknownColumn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"categories":["a","b"]}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dataset := filepath.Join(dir, "d.csv")
	if err := os.WriteFile(dataset, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.APIURL = srv.URL + "/api"
	cfg.DownloadDir = dir

	if _, err := runDownload(context.Background(), cfg, dataset, downloadOptions{graphType: "line", x: "nope"}); err == nil {
		t.Fatal("runDownload() = nil; want error for unknown x column")
	}
}
