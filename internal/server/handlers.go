package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/flowgrid/pkg/buildinfo"
	"github.com/matzehuels/flowgrid/pkg/errors"
	"github.com/matzehuels/flowgrid/pkg/layout"
	"github.com/matzehuels/flowgrid/pkg/pipeline"
)

// cacheHeader reports whether the layout came from the cache.
const cacheHeader = "X-Flowgrid-Cache"

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// =============================================================================
// Request and Response Bodies
// =============================================================================

// batchRequest is the body of POST /v1/batch. Format, Pinned and Layout
// apply to documents that do not set their own.
type batchRequest struct {
	Documents []pipeline.Options `json:"documents"`
	Format    string             `json:"format,omitempty"`
	Pinned    bool               `json:"pinned,omitempty"`
	Layout    layout.Config      `json:"layout,omitzero"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
}

// batchItem carries a record (JSON format), DOT text, or an error.
type batchItem struct {
	Name   string          `json:"name"`
	Format string          `json:"format,omitempty"`
	Record json.RawMessage `json:"record,omitempty"`
	DOT    string          `json:"dot,omitempty"`
	Cached bool            `json:"cached"`
	Error  *errorBody      `json:"error,omitempty"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

// handleLayout lays out one document. The body is the diagram text, or a
// JSON options object when Content-Type is application/json. The query
// parameters format and pinned override the body.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var opts pipeline.Options
	if isJSON(r) {
		if err := decodeStrict(body, &opts); err != nil {
			s.writeError(w, err)
			return
		}
	} else {
		opts.Source = string(body)
	}

	q := r.URL.Query()
	if f := q.Get("format"); f != "" {
		opts.Format = f
	}
	if p := q.Get("pinned"); p != "" {
		pinned, err := strconv.ParseBool(p)
		if err != nil {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid pinned value %q", p))
			return
		}
		opts.Pinned = pinned
	}

	if err := validateDocument(&opts); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[result.Format])
	w.Header().Set(cacheHeader, cacheStatus(result.CacheInfo.LayoutHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Output)
}

// handleBatch lays out every document of the request in parallel and
// answers with one item per document, in request order.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req batchRequest
	if err := decodeStrict(body, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if len(req.Documents) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "no documents"))
		return
	}
	if len(req.Documents) > s.cfg.MaxBatchDocuments {
		s.writeError(w, errors.New(errors.ErrCodeTooLarge, "too many documents (max %d)", s.cfg.MaxBatchDocuments))
		return
	}

	for i := range req.Documents {
		doc := &req.Documents[i]
		if doc.Format == "" {
			doc.Format = req.Format
		}
		if req.Pinned {
			doc.Pinned = true
		}
		if doc.Layout == (layout.Config{}) {
			doc.Layout = req.Layout
		}
		if doc.Name == "" {
			doc.Name = strconv.Itoa(i)
		}
		if err := validateDocument(doc); err != nil {
			s.writeError(w, errors.New(errors.GetCode(err), "documents[%d]: %s", i, errors.UserMessage(err)))
			return
		}
	}

	results, err := s.runner.RunBatch(r.Context(), req.Documents, s.cfg.BatchLimit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := batchResponse{Results: make([]batchItem, len(results))}
	for i, br := range results {
		item := batchItem{Name: br.Name}
		if br.Err != nil {
			item.Error = toErrorBody(br.Err)
		} else {
			item.Format = br.Result.Format
			item.Cached = br.Result.CacheInfo.LayoutHit
			switch br.Result.Format {
			case pipeline.FormatDOT:
				item.DOT = string(br.Result.Output)
			default:
				item.Record = json.RawMessage(br.Result.Output)
			}
		}
		resp.Results[i] = item
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

// readBody reads the request body up to the configured limit.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeTooLarge, "request body too large (max %d bytes)", tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return body, nil
}

// validateDocument rejects documents the pipeline would fail on, with
// client-facing error codes.
func validateDocument(opts *pipeline.Options) error {
	if err := errors.ValidateDocumentName(opts.Name); err != nil {
		return err
	}
	if err := errors.ValidateSource(opts.Source, errors.MaxSourceBytes); err != nil {
		return err
	}
	if opts.Format != "" {
		if err := pipeline.ValidateFormat(opts.Format); err != nil {
			return errors.New(errors.ErrCodeInvalidFormat, "%v", err)
		}
	}
	if opts.Layout != (layout.Config{}) {
		if err := opts.Layout.Validate(); err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "%v", err)
		}
	}
	return nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// decodeStrict decodes a single JSON value and rejects unknown fields.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid JSON body: %v", err)
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid JSON body: trailing data")
	}
	return nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func toErrorBody(err error) *errorBody {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return &errorBody{Code: code, Message: errors.UserMessage(err)}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, toErrorBody(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
