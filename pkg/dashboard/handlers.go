package dashboard

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/soulfoods/sales-dashboard/pkg/chart"
	"github.com/soulfoods/sales-dashboard/pkg/view"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexOption struct {
	Value   string
	Label   string
	Checked bool
}

type indexData struct {
	Header    string
	ViewTitle string
	ChartURL  string
	Options   []indexOption
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data := indexData{
		Header:    s.opts.Title,
		ViewTitle: view.TitlePrefix + sel.Label(),
		ChartURL:  chartURL(sel),
	}
	for _, option := range s.selections.Options() {
		data.Options = append(data.Options, indexOption{
			Value:   string(option),
			Label:   option.Label(),
			Checked: option == sel,
		})
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.log.Error("Failed to render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status": "ok",
		"rows":   s.ds.Len(),
	})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	payload := RegionsPayload{Default: string(view.All)}
	for _, option := range s.selections.Options() {
		payload.Options = append(payload.Options, OptionPayload{
			Value: string(option),
			Label: option.Label(),
		})
	}
	render.JSON(w, r, payload)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selection(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorPayload{Error: err.Error()})
		return
	}
	render.JSON(w, r, newViewPayload(s.project(sel)))
}

func (s *Server) handleChart(format chart.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sel, err := s.selection(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		v := s.project(sel)
		if len(v.Rows) == 0 {
			http.Error(w, "no data for "+v.Title, http.StatusNotFound)
			return
		}

		var buf bytes.Buffer
		if err := s.renderer.Render(&buf, v, format); err != nil {
			s.log.Error("Failed to render chart",
				zap.String("selection", string(sel)),
				zap.String("format", string(format)),
				zap.Error(err),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(buf.Bytes())
	}
}
