// Package stream orchestrates one end-to-end generation session: it opens
// the provider request, drives the chunk decoder over the response stream,
// feeds each extracted delta to the thought classifier, and emits the resulting
// nodes to the caller's sink as they are produced.
package stream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/thoughtstream/pkg/llm"
	"github.com/papercomputeco/thoughtstream/pkg/llm/provider"
	"github.com/papercomputeco/thoughtstream/pkg/sse"
	"github.com/papercomputeco/thoughtstream/pkg/thought"
)

// readBufferSize is the transport read chunk size. Fragments are fed to the
// decoder as they arrive, with no alignment to event boundaries.
const readBufferSize = 4096

// Handlers is the sink contract for one session. OnThought is invoked once
// per produced node, in emission order, synchronously from the read loop —
// expensive sinks stall the stream. OnFinish and OnError are terminal and
// mutually exclusive; each session invokes exactly one of them, once.
type Handlers struct {
	OnThought func(node thought.Node)
	OnFinish  func()
	OnError   func(message string)
}

// Config configures a Session.
type Config struct {
	// Adapter is the provider backend for this session.
	Adapter provider.Adapter

	// ModelID is the internal model id; the adapter resolves it to a wire
	// model id.
	ModelID string

	// APIKey is the provider credential. An empty key fails the session
	// before any network I/O.
	APIKey string

	// Client is the HTTP client used for the single outbound request.
	// Defaults to http.DefaultClient; timeouts are whatever it provides.
	Client *http.Client

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Clock supplies node timestamps. Defaults to time.Now.
	Clock func() time.Time
}

// Session runs one generation attempt. Failure is terminal: there are no
// retries, and a new Session must be created to try again. Sessions own
// their classifier state exclusively, so concurrent sessions are safe.
type Session struct {
	id         string
	config     Config
	state      State
	classifier *thought.Classifier
	logger     *slog.Logger
}

// NewSession creates an idle Session from the given config.
func NewSession(config Config) *Session {
	if config.Client == nil {
		config.Client = http.DefaultClient
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	classifier := thought.NewClassifier()
	if config.Clock != nil {
		classifier.Clock = config.Clock
	}

	id := uuid.NewString()

	return &Session{
		id:         id,
		config:     config,
		state:      StateIdle,
		classifier: classifier,
		logger:     config.Logger.With("session", id),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Run performs the whole session synchronously: request, stream, classify,
// emit, finalize. It invokes exactly one of h.OnFinish or h.OnError before
// returning. Nodes already emitted before a mid-stream failure remain valid
// and are not retracted.
func (s *Session) Run(ctx context.Context, prompt string, h Handlers) {
	h = h.normalized()

	if s.config.APIKey == "" {
		s.fail(h, &llm.Error{
			Kind: llm.ErrMissingCredential,
			Message: fmt.Sprintf("%s API key not found. Please add your API key with 'thoughtstream auth %s'.",
				s.config.Adapter.Name(), s.config.Adapter.Name()),
		})
		return
	}

	s.state = StateRequesting

	wireModel := s.config.Adapter.ResolveModel(s.config.ModelID)
	s.logger.Debug("starting session",
		"provider", s.config.Adapter.Name(),
		"model", s.config.ModelID,
		"wire_model", wireModel,
	)

	req, err := s.config.Adapter.BuildRequest(ctx, prompt, wireModel, s.config.APIKey)
	if err != nil {
		s.fail(h, &llm.Error{
			Kind:    llm.ErrTransport,
			Message: fmt.Sprintf("Failed to build the %s API request.", s.config.Adapter.Name()),
		})
		return
	}

	resp, err := s.config.Client.Do(req)
	if err != nil {
		s.logger.Warn("request failed", "error", err)
		s.fail(h, &llm.Error{
			Kind: llm.ErrTransport,
			Message: fmt.Sprintf("Failed to connect to the %s API. Please check your connection and try again.",
				s.config.Adapter.Name()),
		})
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		s.fail(h, s.config.Adapter.TranslateError(resp.StatusCode, body))
		return
	}

	s.state = StateStreaming

	// The synthetic input node is only emitted once the response headers
	// are accepted — a rejected request produces zero nodes.
	h.OnThought(s.classifier.Bootstrap())

	decoder := sse.NewDecoder()
	buf := make([]byte, readBufferSize)

	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			for _, line := range decoder.Feed(string(buf[:n])) {
				s.handleLine(line, h)
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Warn("stream read failed", "error", err)
			s.fail(h, &llm.Error{
				Kind:    llm.ErrTransport,
				Message: "Error reading response stream. Please try again.",
			})
			return
		}
	}

	decoder.Flush()

	if node, ok := s.classifier.Finalize(); ok {
		h.OnThought(node)
	}

	s.state = StateFinished
	s.logger.Debug("session finished")
	h.OnFinish()
}

// handleLine processes one complete decoded line: non-data lines and the
// done sentinel are skipped, malformed event payloads are logged and
// dropped, and text deltas are classified and emitted.
func (s *Session) handleLine(line string, h Handlers) {
	ev, ok := sse.ParseLine(line)
	if !ok || ev.Done() {
		return
	}

	delta, err := s.config.Adapter.ExtractDelta(ev.Data)
	if err != nil {
		s.logger.Debug("skipping malformed event", "error", err)
		return
	}

	if node, ok := s.classifier.Classify(delta); ok {
		h.OnThought(node)
	}
}

func (s *Session) fail(h Handlers, err error) {
	s.state = StateFailed
	s.logger.Warn("session failed", "error", err)
	h.OnError(err.Error())
}

// normalized returns a copy with nil callbacks replaced by no-ops so the
// session never has to nil-check mid-loop.
func (h Handlers) normalized() Handlers {
	if h.OnThought == nil {
		h.OnThought = func(thought.Node) {}
	}
	if h.OnFinish == nil {
		h.OnFinish = func() {}
	}
	if h.OnError == nil {
		h.OnError = func(string) {}
	}
	return h
}
