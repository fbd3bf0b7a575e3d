package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/treeviz/pkg/buildinfo"
	"github.com/matzehuels/treeviz/pkg/graph"
	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// visualizeResponse is the body returned by POST /v1/visualize.
type visualizeResponse struct {
	Summary   graph.Summary       `json:"summary"`
	GraphHash string              `json:"graph_hash"`
	Artifacts map[string]artifact `json:"artifacts"`
	Cache     cacheInfo           `json:"cache"`
}

// artifact carries one rendered output. Text formats are inlined; PNG and
// PDF are base64 encoded.
type artifact struct {
	ContentType string `json:"content_type"`
	Encoding    string `json:"encoding"`
	Data        any    `json:"data"`
}

type cacheInfo struct {
	Layout bool `json:"layout"`
	Render bool `json:"render"`
}

type nodeResponse struct {
	graph.NodeInfo
	Text string `json:"text"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Current())
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := visualizeResponse{
		Summary:   res.Layout.Summary,
		GraphHash: res.GraphHash,
		Artifacts: make(map[string]artifact, len(res.Artifacts)),
		Cache:     cacheInfo{Layout: res.CacheInfo.LayoutHit, Render: res.CacheInfo.RenderHit},
	}
	for format, data := range res.Artifacts {
		a := artifact{ContentType: pipeline.ContentType(format), Encoding: "utf-8", Data: string(data)}
		if pipeline.IsBinary(format) {
			a.Encoding, a.Data = "base64", data
		}
		out.Artifacts[format] = a
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	l, err := s.layout(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	opts, err := s.decodeOptions(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeError(w, r, badRequest(nil, "node index must be a non-negative integer"))
		return
	}

	l, err := s.layout(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	info, ok := l.NodeInfo(index)
	if !ok {
		writeError(w, r, notFound("no visible node at index %d", index))
		return
	}
	writeJSON(w, http.StatusOK, nodeResponse{NodeInfo: info, Text: info.String()})
}

// layout builds and positions the structure described by the request body.
func (s *Server) layout(w http.ResponseWriter, r *http.Request) (graph.Layout, error) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		return graph.Layout{}, err
	}
	t, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		return graph.Layout{}, err
	}
	return s.runner.GenerateLayout(r.Context(), t, opts)
}

// decodeOptions reads a pipeline.Options body on top of the server defaults.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = append([]string(nil), s.defaults.Formats...)

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return opts, badRequest(nil, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return opts, badRequest(err, "decode request")
	}
	opts.Logger = s.logger
	return opts, nil
}
