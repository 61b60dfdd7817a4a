package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vizpro/internal/api"
	"vizpro/internal/catalog"
	"vizpro/internal/chart"
	"vizpro/internal/export"
)

type (
	openMsg     struct{ path string }
	uploadedMsg struct {
		name       string
		categories []string
	}
	chartMsg struct {
		chart     *chart.Chart
		graphType string
	}
	recsMsg struct {
		recs []catalog.Recommendation
		err  error
	}
	downloadedMsg struct{ path string }
	errMsg        struct {
		op  string
		err error
	}
)

func openCmd(path string) tea.Cmd {
	return func() tea.Msg { return openMsg{path: path} }
}

// startRequest counts an in-flight request and starts the spinner when idle.
func (m *Model) startRequest(n int) tea.Cmd {
	idle := !m.busy()
	m.pending += n
	if idle {
		return m.spin.Tick
	}
	return nil
}

func (m *Model) finishRequest() {
	if m.pending > 0 {
		m.pending--
	}
}

// beginUpload clears the current chart and uploads the dataset at path.
func (m *Model) beginUpload(path string) tea.Cmd {
	name := filepath.Base(path)
	return m.upload(name, func() (io.ReadCloser, error) { return os.Open(path) })
}

// uploadPasted uploads CSV text typed into the paste box.
func (m *Model) uploadPasted(text string) tea.Cmd {
	data := []byte(text)
	return m.upload("pasted.csv", func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

func (m *Model) upload(name string, open func() (io.ReadCloser, error)) tea.Cmd {
	m.surf.Clear()
	m.sess.BeginUpload(name)
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
	m.refreshGallery()
	m.status = "uploading " + name
	client, timeout := m.client, m.cfg.HTTPTimeout()
	return tea.Batch(m.startRequest(1), func() tea.Msg {
		rc, err := open()
		if err != nil {
			return errMsg{op: "upload", err: err}
		}
		defer rc.Close()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		cats, err := client.Upload(ctx, name, rc)
		if err != nil {
			return errMsg{op: "upload", err: err}
		}
		return uploadedMsg{name: name, categories: cats}
	})
}

// generate validates the current selection and requests a chart.
func (m *Model) generate() tea.Cmd {
	req := m.sess.Request(false)
	if err := req.Validate(); err != nil {
		m.status = "x " + api.Message(err, "invalid selection")
		return nil
	}
	m.status = "generating " + req.GraphType + " chart"
	client, timeout := m.client, m.cfg.HTTPTimeout()
	return tea.Batch(m.startRequest(1), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		c, err := client.Generate(ctx, req)
		if err != nil {
			return errMsg{op: "generate", err: err}
		}
		slog.Debug("chart generated", "type", req.GraphType, "points", c.PointCount(), "elapsed", time.Since(start))
		return chartMsg{chart: c, graphType: req.GraphType}
	})
}

func (m *Model) recommend() tea.Cmd {
	cols := append([]string(nil), m.sess.Categories...)
	client, timeout := m.client, m.cfg.HTTPTimeout()
	return tea.Batch(m.startRequest(1), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		recs, err := client.Recommendations(ctx, cols)
		return recsMsg{recs: recs, err: err}
	})
}

func (m *Model) download() tea.Cmd {
	req := m.sess.Request(true)
	if err := req.Validate(); err != nil {
		m.status = "x " + api.Message(err, "invalid selection")
		return nil
	}
	m.status = "downloading " + req.Filename()
	return tea.Batch(m.startRequest(1), downloadCmd(m.client, m.store, req, m.cfg.HTTPTimeout()))
}

func downloadCmd(client *api.Client, store *export.Store, req api.GraphRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		data, err := client.Download(ctx, req)
		if err != nil {
			return errMsg{op: "download", err: err}
		}
		path, err := store.Save(req.Filename(), data)
		if err != nil {
			return errMsg{op: "download", err: err}
		}
		return downloadedMsg{path: path}
	}
}

// handleResult applies a finished request to the model.
func (m *Model) handleResult(msg tea.Msg) tea.Cmd {
	m.finishRequest()
	switch msg := msg.(type) {
	case uploadedMsg:
		m.sess.SetCategories(msg.categories)
		m.cursor = 0
		m.status = fmt.Sprintf("loaded %s  columns: %d", msg.name, len(msg.categories))
		slog.Info("dataset uploaded", "name", msg.name, "columns", len(msg.categories))
		return tea.Sequence(m.generate(), m.recommend())
	case chartMsg:
		m.surf.Load(msg.chart)
		m.hovering = false
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
		m.status = fmt.Sprintf("%s chart  series: %d  points: %d", msg.graphType, len(msg.chart.Series), msg.chart.PointCount())
	case recsMsg:
		if msg.err != nil {
			slog.Warn("recommendations unavailable", "error", msg.err)
			m.sess.SetRecommendations(nil)
		} else {
			m.sess.SetRecommendations(msg.recs)
		}
		m.refreshGallery()
	case downloadedMsg:
		m.status = "saved " + msg.path
	case errMsg:
		m.status = "x " + api.Message(msg.err, fmt.Sprintf("%s failed: %v", msg.op, msg.err))
		slog.Error(msg.op+" failed", "error", msg.err)
	}
	return nil
}
