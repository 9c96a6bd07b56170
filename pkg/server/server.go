package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordcheck/internal/logger"
	"github.com/bastiangx/wordcheck/pkg/advisor"
	"github.com/bastiangx/wordcheck/pkg/customdict"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// StoreTimeout bounds custom dictionary updates.
const StoreTimeout = 2 * time.Second

// Server handles msgpack IPC for spelling checks
type Server struct {
	advisor advisor.Advisor
	store   customdict.WordStore
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	log     *log.Logger
}

// NewServer creates a server reading requests from in and writing responses to out.
// store may be nil, in which case add and remove are rejected.
func NewServer(a advisor.Advisor, store customdict.WordStore, in io.Reader, out io.Writer) *Server {
	return &Server{
		advisor: a,
		store:   store,
		decoder: msgpack.NewDecoder(bufio.NewReader(in)),
		encoder: msgpack.NewEncoder(out),
		log:     logger.New("ipc"),
	}
}

// Start begins listening for IPC requests. It returns nil on EOF.
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")

	if err := s.encoder.Encode(StatusResponse{Status: "ready"}); err != nil {
		return fmt.Errorf("failed to send ready message: %w", err)
	}

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed, stopping server")
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return err
		}

		var req CheckRequest
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Debugf("Malformed request: %v", err)
			s.sendError("", "malformed request", 400)
			continue
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the action. Only write failures are returned.
func (s *Server) handleRequest(req CheckRequest) error {
	switch req.Action {
	case "", ActionCheck:
		return s.handleCheck(req)
	case ActionAdd, ActionRemove:
		return s.handleCustomWord(req)
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleCheck(req CheckRequest) error {
	start := time.Now()
	verdict, err := s.advisor.Evaluate(req.Word)
	elapsed := time.Since(start)
	if err != nil {
		s.log.Debugf("Check %q failed: %v", req.Word, err)
		return s.sendError(req.ID, err.Error(), StatusCode(err))
	}

	s.log.Debugf("Checked %q in %v: %s", verdict.Original, elapsed, verdict.Kind)
	return s.send(CheckResponse{
		ID:          req.ID,
		Verdict:     verdict.Kind.String(),
		Original:    verdict.Original,
		Corrected:   verdict.Corrected,
		Suggestions: verdict.Suggestions,
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleCustomWord(req CheckRequest) error {
	if s.store == nil {
		return s.sendError(req.ID, "custom dictionary not configured", 404)
	}
	word := strings.TrimSpace(req.Word)
	if word == "" {
		return s.sendError(req.ID, advisor.ErrEmpty.Error(), 400)
	}

	ctx, cancel := context.WithTimeout(context.Background(), StoreTimeout)
	defer cancel()

	var err error
	if req.Action == ActionAdd {
		err = s.store.Add(ctx, word)
	} else {
		err = s.store.Remove(ctx, word)
	}
	if err != nil {
		s.log.Errorf("Custom dictionary %s %q: %v", req.Action, word, err)
		return s.sendError(req.ID, err.Error(), 500)
	}
	return s.send(StatusResponse{ID: req.ID, Status: "ok"})
}

// StatusCode maps advisor errors to the codes used in error responses.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, advisor.ErrEmpty):
		return 400
	case errors.Is(err, advisor.ErrCorrectorUnavailable):
		return 503
	default:
		return 500
	}
}

func (s *Server) send(v any) error {
	if err := s.encoder.Encode(v); err != nil {
		s.log.Errorf("Writing response: %v", err)
		return err
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
