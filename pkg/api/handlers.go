package api

import (
	"encoding/json"
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/morphgraph/pkg/buildinfo"
	mgerrors "github.com/matzehuels/morphgraph/pkg/errors"
	graphio "github.com/matzehuels/morphgraph/pkg/io"
	"github.com/matzehuels/morphgraph/pkg/morph"
	"github.com/matzehuels/morphgraph/pkg/morph/transform"
	"github.com/matzehuels/morphgraph/pkg/pipeline"
)

// PipelineRequest is the body of POST /v1/pipeline.
type PipelineRequest struct {
	Graph   *graphio.Graph   `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// PipelineResponse is the result of POST /v1/pipeline. Artifacts are
// base64-encoded by encoding/json.
type PipelineResponse struct {
	RunID      string                `json:"run_id"`
	GraphHash  string                `json:"graph_hash"`
	ResultHash string                `json:"result_hash"`
	Graph      graphio.Graph         `json:"graph"`
	Repair     *transform.Report     `json:"repair,omitempty"`
	Reduce     *transform.Report     `json:"reduce,omitempty"`
	Processes  *transform.ProcessSet `json:"processes,omitempty"`
	Artifacts  map[string][]byte     `json:"artifacts"`
	Stats      pipeline.Stats        `json:"stats"`
	Cache      pipeline.CacheInfo    `json:"cache"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      mgerrors.Code `json:"code"`
	Message   string        `json:"message"`
	RequestID string        `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	var req PipelineRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Graph == nil {
		writeError(w, r, mgerrors.New(mgerrors.ErrCodeInvalidInput, "graph is required"))
		return
	}
	g, err := graphio.ToMorph(*req.Graph)
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := req.Options
	opts.Logger = loggerFrom(r.Context())
	res, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PipelineResponse{
		RunID:      res.RunID,
		GraphHash:  res.GraphHash,
		ResultHash: res.ResultHash,
		Graph:      graphio.FromMorph(res.Graph),
		Repair:     res.Repair,
		Reduce:     res.Reduce,
		Processes:  res.Processes,
		Artifacts:  res.Artifacts,
		Stats:      res.Stats,
		Cache:      res.CacheInfo,
	})
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var req graphio.Graph
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := graphio.ToMorph(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, morph.Summarize(g))
}

// decode reads one JSON value from the request body, rejecting unknown
// fields and oversized bodies.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return mgerrors.Wrap(mgerrors.ErrCodeTooLarge, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return mgerrors.Wrap(mgerrors.ErrCodeInvalidInput, err, "malformed request body")
	}
	return nil
}

func notFound(r *http.Request) error {
	return mgerrors.New(mgerrors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError classifies err and writes it as an ErrorResponse. Internal
// errors are logged and their details withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = mgerrors.Classify(err)
	code := mgerrors.GetCode(err)
	status := mgerrors.HTTPStatus(code)

	msg := mgerrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context()).Error("request failed", "err", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, ErrorResponse{
		Code:      code,
		Message:   msg,
		RequestID: chimiddleware.GetReqID(r.Context()),
	})
}
