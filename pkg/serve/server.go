// Package serve runs a long-lived NDJSON server that checks content sent on
// stdin, for editor and IDE integrations.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"runtime"

	"github.com/praetorian-inc/spellcheck/pkg/check"
	"github.com/praetorian-inc/spellcheck/pkg/report"
	"github.com/praetorian-inc/spellcheck/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server manages the streaming checker
type Server struct {
	checker *check.Checker
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(checker *check.Checker, in io.Reader, out io.Writer) *Server {
	return &Server{
		checker: checker,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop. It returns nil when the input ends or a
// "close" request arrives, and ctx.Err() when ctx is cancelled.
//
// Requests are read on a separate goroutine. When Run returns before the
// input ends, that goroutine stays blocked in a read until the input reaches
// EOF or fails, so callers that keep the input open (such as one end of a
// pipe) should close it after Run returns.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(ctx, req) {
						return nil
					}
				default:
					// No more pending requests
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(ctx, req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(ctx context.Context, req Request) bool {
	switch req.Type {
	case "check":
		s.handleCheck(ctx, req.Payload)
	case "check_batch":
		s.handleCheckBatch(ctx, req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{Version: Version})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) handleCheck(ctx context.Context, payload json.RawMessage) {
	var p CheckPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("check", err.Error())
		return
	}

	res := s.checker.CheckBytes(ctx, p.Path, []byte(p.Content))

	data, _ := json.Marshal(newCheckData(res))
	s.encoder.Encode(Response{
		Success: true,
		Type:    "check",
		Data:    data,
	})
}

func (s *Server) handleCheckBatch(ctx context.Context, payload json.RawMessage) {
	var p CheckBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("check_batch", err.Error())
		return
	}

	results := make([]types.FileResult, len(p.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, item := range p.Items {
		g.Go(func() error {
			results[i] = s.checker.CheckBytes(gctx, item.Path, []byte(item.Content))
			return nil
		})
	}
	g.Wait()

	batch := CheckBatchData{
		Results: make([]CheckData, 0, len(results)),
		Outcome: report.Aggregate(results),
	}
	for _, r := range results {
		batch.Results = append(batch.Results, newCheckData(r))
	}

	data, _ := json.Marshal(batch)
	s.encoder.Encode(Response{
		Success: true,
		Type:    "check_batch",
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
