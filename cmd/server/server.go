package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	smsnormalizer "github.com/baditaflorin/go_sms_normalizer"
	"github.com/baditaflorin/go_sms_normalizer/internal/adapters/logger"
	"github.com/baditaflorin/go_sms_normalizer/internal/config"
	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_sms_normalizer/internal/warmup"
	"github.com/baditaflorin/l"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const requestIDHeader = "X-Request-ID"

// NormalizeRequest is the body of POST /normalize
type NormalizeRequest struct {
	Text  string `json:"text"`
	Trace bool   `json:"trace,omitempty"`
}

// NormalizeResponse is the reply to POST /normalize
type NormalizeResponse struct {
	Text  string      `json:"text"`
	Steps []TraceStep `json:"steps,omitempty"`
}

// TraceStep is one rule that changed the text
type TraceStep struct {
	Order  int    `json:"order"`
	Rule   string `json:"rule"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// BatchRecord is one labeled message of a batch
type BatchRecord struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// BatchRequest is the body of POST /normalize/batch
type BatchRequest struct {
	Records []BatchRecord `json:"records"`
}

// BatchResponse is the reply to POST /normalize/batch
type BatchResponse struct {
	Records        []BatchRecord `json:"records"`
	Count          int           `json:"count"`
	ProcessingTime string        `json:"processing_time"`
}

// TryRequest is the body of POST /try
type TryRequest struct {
	Rule    string   `json:"rule,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Words   []string `json:"words,omitempty"`
}

// TryResponse is the reply to POST /try
type TryResponse struct {
	Results []TryResult `json:"results"`
}

// TryResult reports a single word of a try request
type TryResult struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	Matched bool   `json:"matched"`
}

// RuleInfo describes one rule of the sequence
type RuleInfo struct {
	Order       int    `json:"order"`
	Name        string `json:"name"`
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// server routes requests to a shared normalizer
type server struct {
	cfg        *config.Config
	logger     l.Logger
	normalizer *smsnormalizer.SMSNormalizer
	started    time.Time
}

func newServer(cfg *config.Config, log l.Logger) (*server, error) {
	normalizerType, ok := smsnormalizer.ParseNormalizerType(cfg.Processing.Normalizer)
	if !ok {
		return nil, fmt.Errorf("unknown normalizer %q", cfg.Processing.Normalizer)
	}

	n, err := smsnormalizer.New(
		smsnormalizer.WithLogger(log),
		smsnormalizer.WithNormalizerType(normalizerType),
		smsnormalizer.WithWorkers(cfg.Processing.Workers),
		smsnormalizer.WithBatchSize(cfg.Processing.BatchSize),
	)
	if err != nil {
		return nil, err
	}

	return &server{
		cfg:        cfg,
		logger:     log,
		normalizer: n,
		started:    time.Now(),
	}, nil
}

// streamAdapter exposes the facade's Process as a stream processor
type streamAdapter struct {
	n *smsnormalizer.SMSNormalizer
}

func (a streamAdapter) ProcessStream(ctx context.Context, r io.Reader, w io.Writer) (domain.Stats, error) {
	return a.n.Process(ctx, r, w)
}

// warmUp runs sample traffic through the normalizer before the listener opens
func (s *server) warmUp(ctx context.Context) {
	wm := warmup.NewManager(logger.FromExisting(s.logger), warmup.DefaultWarmupConfig())
	wm.RegisterNormalizer(s.normalizer)
	wm.RegisterStreamProcessor(streamAdapter{n: s.normalizer})
	wm.WarmUp(ctx)
}

// handle is the main fasthttp request handler
func (s *server) handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	requestID := string(ctx.Request.Header.Peek(requestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Response.Header.Set(requestIDHeader, requestID)
	ctx.Response.Header.Set("Content-Type", "application/json")

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealth(ctx)
	case "/rules":
		s.handleRules(ctx)
	case "/normalize":
		s.handleNormalize(ctx)
	case "/normalize/batch":
		s.handleBatch(ctx)
	case "/normalize/tsv":
		s.handleTSV(ctx)
	case "/try":
		s.handleTry(ctx)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}

	s.logger.Info("Request processed",
		"request_id", requestID,
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (s *server) handleHealth(ctx *fasthttp.RequestCtx) {
	if !s.allow(ctx, fasthttp.MethodGet) {
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
		"uptime": time.Since(s.started).Round(time.Second).String(),
		"rules":  s.normalizer.Rules().Len(),
	})
}

func (s *server) handleRules(ctx *fasthttp.RequestCtx) {
	if !s.allow(ctx, fasthttp.MethodGet) {
		return
	}
	list := s.normalizer.Rules().Rules()
	infos := make([]RuleInfo, 0, len(list))
	for _, r := range list {
		infos = append(infos, RuleInfo{
			Order:       r.Order,
			Name:        r.Name,
			Pattern:     r.Pattern.String(),
			Replacement: r.Replacement,
		})
	}
	s.writeJSON(ctx, fasthttp.StatusOK, infos)
}

func (s *server) handleNormalize(ctx *fasthttp.RequestCtx) {
	if !s.allow(ctx, fasthttp.MethodPost) {
		return
	}
	var req NormalizeRequest
	if !s.decode(ctx, &req) {
		return
	}

	resp := NormalizeResponse{Text: s.normalizer.Normalize(req.Text)}
	if req.Trace {
		for _, step := range s.normalizer.Trace(req.Text) {
			resp.Steps = append(resp.Steps, TraceStep{
				Order:  step.Order,
				Rule:   step.Rule,
				Before: step.Before,
				After:  step.After,
			})
		}
	}
	s.writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *server) handleBatch(ctx *fasthttp.RequestCtx) {
	if !s.allow(ctx, fasthttp.MethodPost) {
		return
	}
	var req BatchRequest
	if !s.decode(ctx, &req) {
		return
	}
	if len(req.Records) > s.cfg.Processing.MaxBatchRecords {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Too many records in batch")
		return
	}

	start := time.Now()
	records := make([]smsnormalizer.Record, len(req.Records))
	for i, r := range req.Records {
		records[i] = smsnormalizer.Record{Label: r.Label, Text: r.Text, Line: i + 1}
	}

	out := make([]BatchRecord, 0, len(records))
	for _, r := range s.normalizer.NormalizeRecords(records) {
		out = append(out, BatchRecord{Label: r.Label, Text: r.Text})
	}

	s.writeJSON(ctx, fasthttp.StatusOK, BatchResponse{
		Records:        out,
		Count:          len(out),
		ProcessingTime: time.Since(start).String(),
	})
}

// handleTSV normalizes a whole TSV document and answers with the CSV output
func (s *server) handleTSV(ctx *fasthttp.RequestCtx) {
	if !s.allow(ctx, fasthttp.MethodPost) {
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var out bytes.Buffer
	stats, err := s.normalizer.Process(c, bytes.NewReader(ctx.PostBody()), &out)
	if err != nil {
		s.writeError(ctx, statusFor(err), err.Error())
		return
	}

	ctx.Response.Header.Set("Content-Type", "text/csv; charset=utf-8")
	ctx.Response.Header.Set("X-Records", strconv.Itoa(stats.Records))
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(out.Bytes())
}

func (s *server) handleTry(ctx *fasthttp.RequestCtx) {
	if !s.allow(ctx, fasthttp.MethodPost) {
		return
	}
	var req TryRequest
	if !s.decode(ctx, &req) {
		return
	}
	if (req.Rule == "") == (req.Pattern == "") {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Exactly one of rule and pattern is required")
		return
	}

	words := req.Words
	var (
		results []smsnormalizer.TryResult
		err     error
	)
	if req.Rule != "" {
		if len(words) == 0 {
			words = smsnormalizer.Samples(req.Rule)
		}
		results, err = s.normalizer.TryRule(req.Rule, words)
	} else {
		results, err = smsnormalizer.Try(req.Pattern, words)
	}
	if err != nil {
		s.writeError(ctx, statusFor(err), err.Error())
		return
	}

	resp := TryResponse{Results: make([]TryResult, 0, len(results))}
	for _, r := range results {
		resp.Results = append(resp.Results, TryResult{Input: r.Input, Output: r.Output, Matched: r.Matched})
	}
	s.writeJSON(ctx, fasthttp.StatusOK, resp)
}

// allow rejects requests whose method is not method
func (s *server) allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func (s *server) decode(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// statusFor maps normalizer errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, smsnormalizer.ErrUnknownRule):
		return fasthttp.StatusNotFound
	case errors.Is(err, smsnormalizer.ErrInvalidPattern), errors.Is(err, smsnormalizer.ErrMalformedRow):
		return fasthttp.StatusBadRequest
	default:
		return fasthttp.StatusInternalServerError
	}
}

// writeJSON writes a JSON response to the context
func (s *server) writeJSON(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeError(ctx, fasthttp.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.SetStatusCode(status)
	ctx.SetBody(response)
}

// writeError writes a JSON error response to the context
func (s *server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		s.logger.Error("Error marshaling JSON error response", "error", err)
		response = []byte(`{"error":"Internal server error"}`)
		status = fasthttp.StatusInternalServerError
	}

	ctx.SetStatusCode(status)
	ctx.SetBody(response)
}
