package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/permnet/pkg/benes"
	"github.com/matzehuels/permnet/pkg/buildinfo"
	"github.com/matzehuels/permnet/pkg/errors"
	"github.com/matzehuels/permnet/pkg/io"
	"github.com/matzehuels/permnet/pkg/pipeline"
	"github.com/matzehuels/permnet/pkg/store"
)

// source names the permutation to synthesize. Exactly one field is set.
type source struct {
	Permutation []int  `json:"permutation,omitempty"`
	Input       string `json:"input,omitempty"`
	Random      int    `json:"random,omitempty"`
	Seed        string `json:"seed,omitempty"`
	Refresh     bool   `json:"refresh,omitempty"`
}

func (src source) empty() bool {
	return src.Permutation == nil && src.Input == "" && src.Random == 0
}

func (s *Server) options(r *http.Request, src source) pipeline.Options {
	return pipeline.Options{
		Permutation: src.Permutation,
		Input:       src.Input,
		Random:      src.Random,
		Seed:        src.Seed,
		Refresh:     src.Refresh,
		MaxSize:     s.maxSize,
		Logger:      loggerFrom(r.Context(), s.logger),
	}
}

type stats struct {
	N        int `json:"n"`
	Levels   int `json:"levels"`
	Columns  int `json:"columns"`
	Switches int `json:"switches"`
}

type synthesizeResponse struct {
	Network io.NetworkDoc `json:"network"`
	Hash    string        `json:"hash"`
	Cached  bool          `json:"cached"`
	Stats   stats         `json:"stats"`
}

func newSynthesizeResponse(net *benes.Network, dest []int, cached bool) synthesizeResponse {
	return synthesizeResponse{
		Network: io.NewNetworkDoc(net, dest),
		Hash:    pipeline.NetworkHash(net),
		Cached:  cached,
		Stats:   stats{N: net.N, Levels: net.Levels(), Columns: net.Columns(), Switches: net.Switches()},
	}
}

// synthesize parses src and runs it through the cached runner.
func (s *Server) synthesize(r *http.Request, src source) (*benes.Network, []int, bool, error) {
	opts := s.options(r, src)
	dest, err := pipeline.Parse(opts)
	if err != nil {
		return nil, nil, false, err
	}
	net, hit, err := s.runner.SynthesizeWithCacheInfo(r.Context(), dest, opts)
	if err != nil {
		return nil, nil, false, err
	}
	return net, dest, hit, nil
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var src source
	if err := decode(w, r, &src); err != nil {
		s.writeError(w, r, err)
		return
	}
	net, dest, hit, err := s.synthesize(r, src)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSynthesizeResponse(net, dest, hit))
}

type batchRequest struct {
	Permutations [][]int `json:"permutations"`
	Refresh      bool    `json:"refresh,omitempty"`
}

type batchResponse struct {
	Networks []synthesizeResponse `json:"networks"`
}

func (s *Server) handleSynthesizeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Permutations) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "permutations is required"))
		return
	}
	if len(req.Permutations) > s.maxBatch {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
			"batch of %d exceeds limit %d", len(req.Permutations), s.maxBatch))
		return
	}

	out := make([]synthesizeResponse, len(req.Permutations))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(s.batchWorkers)
	for i, p := range req.Permutations {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src := source{Permutation: p, Refresh: req.Refresh}
			if p == nil {
				src.Permutation = []int{}
			}
			net, dest, hit, err := s.synthesize(r.WithContext(ctx), src)
			if err != nil {
				return wrapIndex(err, i)
			}
			out[i] = newSynthesizeResponse(net, dest, hit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Networks: out})
}

func wrapIndex(err error, i int) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "permutation %d", i)
}

type routeRequest struct {
	ID      string            `json:"id,omitempty"`
	Network *io.NetworkDoc    `json:"network,omitempty"`
	Values  []json.RawMessage `json:"values,omitempty"`
}

type routeResponse struct {
	Values any `json:"values"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var doc io.NetworkDoc
	switch {
	case req.ID != "" && req.Network != nil:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "id and network are mutually exclusive"))
		return
	case req.ID != "":
		rec, err := s.store.Get(r.Context(), req.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		doc = rec.Network
	case req.Network != nil:
		doc = *req.Network
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "id or network is required"))
		return
	}

	net, err := doc.Network()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Without values, report the permutation the network realizes.
	if req.Values == nil {
		p, err := net.Permutation()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, routeResponse{Values: p})
		return
	}
	out, err := benes.Apply(net, req.Values)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, routeResponse{Values: out})
}

type createNetworkRequest struct {
	Name    string         `json:"name,omitempty"`
	Network *io.NetworkDoc `json:"network,omitempty"`
	source
}

func (s *Server) handleCreateNetwork(w http.ResponseWriter, r *http.Request) {
	var req createNetworkRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var rec *store.Record
	switch {
	case req.Network != nil && !req.source.empty():
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "network and a permutation source are mutually exclusive"))
		return
	case req.Network != nil:
		if err := errors.ValidateName(req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}
		rec = &store.Record{Name: req.Name, Network: *req.Network}
	default:
		net, dest, _, err := s.synthesize(r, req.source)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if rec, err = store.NewRecord(req.Name, net, dest); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	loggerFrom(r.Context(), s.logger).Info("stored network", "id", rec.ID, "n", rec.Network.N)
	w.Header().Set("Location", "/v1/networks/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetNetwork(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
}

func (s *Server) handleRenderNetwork(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	net, err := rec.Network.Network()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Formats:   []string{format},
		Sentinels: q.Get("sentinels") == "true",
		Logger:    loggerFrom(r.Context(), s.logger),
	}
	if labels := q.Get("labels"); labels != "" {
		opts.Labels = strings.Split(labels, ",")
	}
	artifacts, _, err := s.runner.RenderWithCacheInfo(r.Context(), net, rec.Network.Permutation, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleDeleteNetwork(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}
