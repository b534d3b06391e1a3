package env

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/lander"
)

// Protocol operations.
const (
	OpReset   = "reset"
	OpStep    = "step"
	OpObserve = "observe"
	OpClose   = "close"
)

// Request is one line sent by a controller.
// A step carries either an Action or a Mask; Action wins if both are set.
type Request struct {
	Op     string  `json:"op"`
	Action *Action `json:"action,omitempty"`
	Mask   *uint8  `json:"mask,omitempty"`
}

// Response is one line written back after a successful request.
type Response struct {
	Observation lander.Observation `json:"observation"`
	Status      string             `json:"status"`
	Done        bool               `json:"done"`
	Truncated   bool               `json:"truncated"`
	Score       int                `json:"score"`
	Steps       int                `json:"steps"`
}

// ErrorResponse is written instead of a Response when a request fails.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewResponse converts a step result to its wire form.
func NewResponse(r Result) Response {
	return Response{
		Observation: r.Observation,
		Status:      r.Status.String(),
		Done:        r.Done,
		Truncated:   r.Truncated,
		Score:       r.Score,
		Steps:       r.Steps,
	}
}

// Server answers JSON-lines requests for one environment.
type Server struct {
	env    *Env
	logger *log.Logger
}

// NewServer creates a protocol server. A nil logger discards log output.
func NewServer(e *Env, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{env: e, logger: logger}
}

// MaxRequestBytes bounds one request line. Longer lines get an error
// response and are skipped.
const MaxRequestBytes = 1 << 20

// requestLine is one line read from the controller.
type requestLine struct {
	data    []byte
	tooLong bool
}

// Serve reads requests from r and writes one response line per request to w
// until close, EOF or context cancellation. Malformed lines get an error
// response and the session continues.
//
// Reading happens on its own goroutine so cancellation is honoured while
// the controller is idle. That goroutine stays blocked in r.Read until r
// yields data or an error.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)
	enc := json.NewEncoder(out)

	// Stops the reader once the session ends early (close or a write error).
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan requestLine)
	readErr := make(chan error, 1)
	go readRequests(ctx, r, lines, readErr)

	s.logger.Info("env session started", "max_steps", s.env.maxSteps)

	for {
		var line requestLine
		select {
		case <-ctx.Done():
			s.logger.Info("env session ended", "reason", "cancelled")
			return ctx.Err()
		case err := <-readErr:
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("env: read request: %w", err)
			}
			s.logger.Info("env session ended", "reason", "eof")
			return nil
		case line = <-lines:
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		var (
			resp    any
			closing bool
		)
		if line.tooLong {
			s.logger.Warn("request too long", "limit", MaxRequestBytes)
			resp = ErrorResponse{Error: fmt.Sprintf("request longer than %d bytes", MaxRequestBytes)}
		} else {
			resp, closing = s.handle(line.data)
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("env: write response: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("env: write response: %w", err)
		}
		if closing {
			s.logger.Info("env session closed by controller")
			return nil
		}
	}
}

// readRequests splits r into lines and sends the non-empty ones. Lines over
// MaxRequestBytes are drained and reported as tooLong. The terminating read
// error, io.EOF included, goes to errc.
func readRequests(ctx context.Context, r io.Reader, lines chan<- requestLine, errc chan<- error) {
	br := bufio.NewReader(r)
	for {
		var line requestLine
		var err error
		for {
			var chunk []byte
			chunk, err = br.ReadSlice('\n')
			if !line.tooLong {
				line.data = append(line.data, chunk...)
				if len(line.data) > MaxRequestBytes+2 { // room for "\r\n"
					line = requestLine{tooLong: true}
				}
			}
			if !errors.Is(err, bufio.ErrBufferFull) {
				break
			}
		}

		line.data = bytes.TrimRight(line.data, "\r\n")
		if len(line.data) > MaxRequestBytes {
			line = requestLine{tooLong: true}
		}
		if line.tooLong || len(line.data) > 0 {
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			errc <- err
			return
		}
	}
}

func (s *Server) handle(line []byte) (resp any, closing bool) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.Warn("malformed request", "error", err)
		return ErrorResponse{Error: fmt.Sprintf("malformed request: %v", err)}, false
	}

	switch req.Op {
	case OpReset:
		res := s.env.Reset()
		s.logger.Debug("reset")
		return NewResponse(res), false

	case OpStep:
		var a Action
		switch {
		case req.Action != nil:
			a = *req.Action
		case req.Mask != nil:
			if *req.Mask >= NumMasks {
				return ErrorResponse{Error: fmt.Sprintf("mask %d out of range [0, %d)", *req.Mask, NumMasks)}, false
			}
			a = ActionFromMask(*req.Mask)
		default:
			return ErrorResponse{Error: "step needs an action or a mask"}, false
		}

		res, err := s.env.Step(a)
		if errors.Is(err, ErrEpisodeOver) {
			return ErrorResponse{Error: err.Error()}, false
		}
		s.logger.Debug("step", "steps", res.Steps, "status", res.Status, "mask", a.Mask())
		if res.Done || res.Truncated {
			s.logger.Info("episode finished",
				"status", res.Status,
				"truncated", res.Truncated,
				"score", res.Score,
				"steps", res.Steps,
			)
		}
		return NewResponse(res), false

	case OpObserve:
		return NewResponse(s.env.Observe()), false

	case OpClose:
		return NewResponse(s.env.Observe()), true

	default:
		s.logger.Warn("unknown op", "op", req.Op)
		return ErrorResponse{Error: fmt.Sprintf("unknown op %q", req.Op)}, false
	}
}
