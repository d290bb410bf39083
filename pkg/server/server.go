package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/bastiangx/wordfix/pkg/fix"
	"github.com/bastiangx/wordfix/pkg/rules"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Loader reads the current rule table.
type Loader func() (*rules.Set, error)

// Options configure a Server.
type Options struct {
	Mode         fix.Mode
	MaxTextBytes int
	// Normalize must match the normalization the Loader applies to rules.
	Normalize func(string) string
}

// engine is one immutable generation of rules.
type engine struct {
	fixer    fix.Fixer
	set      *rules.Set
	unstable int
}

// Server handles the IPC for text correction.
type Server struct {
	opts     Options
	load     Loader
	engine   atomic.Pointer[engine]
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	requests int
}

// NewServer loads the rules once and prepares a server on r and w.
// A rule table that fails to load here is fatal.
func NewServer(load Loader, opts Options, r io.Reader, w io.Writer) (*Server, error) {
	if opts.MaxTextBytes <= 0 {
		opts.MaxTextBytes = 1 << 20
	}
	s := &Server{
		opts:    opts,
		load:    load,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload builds a new engine from the loader and swaps it in.
// On failure the current engine is kept.
func (s *Server) Reload() error {
	set, err := s.load()
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	fixer, err := fix.New(s.opts.Mode, set)
	if err != nil {
		return err
	}
	fixer = fix.Normalized(fixer, s.opts.Normalize)
	unstable := len(rules.NewIndex(set).Unstable())
	if unstable > 0 {
		log.Warnf("%d rules rewrite into text other rules match; output is not idempotent", unstable)
	}
	s.engine.Store(&engine{fixer: fixer, set: set, unstable: unstable})
	log.Debugf("Rules active: %d rules, window %d, mode %v", set.Len(), set.MaxWrongLen, s.opts.Mode)
	return nil
}

// Fix corrects text with the active rules and reports whether a rule
// changed it.
func (s *Server) Fix(text string) (string, bool) {
	return fix.Correct(s.engine.Load().fixer, text)
}

// Start sends the ready message and serves requests until the input ends,
// the stream breaks or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("Starting Server.")
	if err := s.send(s.status("", "ready")); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Client closed input")
				return nil
			}
			return fmt.Errorf("read request: %w", err)
		}

		s.requests++
		if err := s.handleRequest(raw); err != nil {
			return err
		}
	}
}

// handleRequest answers one raw message. Only write errors are returned.
func (s *Server) handleRequest(raw msgpack.RawMessage) error {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Errorf("Unmarshaling request: %v", err)
		return s.sendError("", "invalid request", 400)
	}

	switch req.Action {
	case "", ActionFix:
		return s.handleFix(req)
	case ActionReload:
		if err := s.Reload(); err != nil {
			log.Errorf("Reload failed, keeping previous rules: %v", err)
			resp := s.status(req.ID, "error")
			resp.Error = err.Error()
			return s.send(resp)
		}
		return s.send(s.status(req.ID, "ok"))
	case ActionStats:
		return s.send(s.status(req.ID, "ok"))
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	}
	return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
}

func (s *Server) handleFix(req Request) error {
	if len(req.Text) > s.opts.MaxTextBytes {
		log.Debugf("Request %s text too long: %d bytes", req.ID, len(req.Text))
		return s.sendError(req.ID, fmt.Sprintf("text exceeds %d bytes", s.opts.MaxTextBytes), 413)
	}

	start := time.Now()
	fixed, changed := s.Fix(req.Text)
	elapsed := time.Since(start)

	return s.send(FixResponse{
		ID:        req.ID,
		Text:      fixed,
		Changed:   changed,
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) status(id, status string) StatusResponse {
	e := s.engine.Load()
	return StatusResponse{
		ID:       id,
		Status:   status,
		Mode:     s.opts.Mode.String(),
		Rules:    e.set.Len(),
		Window:   e.set.MaxWrongLen,
		Unstable: e.unstable,
		Requests: s.requests,
	}
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
