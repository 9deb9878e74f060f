package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordfind/internal/logger"
	"github.com/bastiangx/wordfind/pkg/config"
	"github.com/bastiangx/wordfind/pkg/dictionary"
	"github.com/bastiangx/wordfind/pkg/finder"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for word finding
type Server struct {
	finder       finder.IFinder
	config       *config.Config
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a new server using stdin/stdout for IPC
func NewServer(f finder.IFinder, cfg *config.Config) *Server {
	return NewServerWithIO(f, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w
func NewServerWithIO(f finder.IFinder, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		finder:  f,
		config:  cfg,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		logger:  logger.New("ipc"),
	}
}

// Start signals readiness and serves requests until the input ends
func (s *Server) Start() error {
	s.logger.Debug("Starting server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		// read whole values first so a badly typed request cannot desync the stream
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Client closed input", "requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return err
		}
		s.requestCount++

		var request FindRequest
		if err := msgpack.Unmarshal(raw, &request); err != nil {
			s.logger.Errorf("Unmarshaling request: %v", err)
			if err := s.sendError("", "Invalid msgpack request", 400); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(request); err != nil {
			return err
		}
	}
}

// handleRequest dispatches a request by action.
// Only write failures are returned.
func (s *Server) handleRequest(request FindRequest) error {
	switch request.Action {
	case "", ActionFind:
		return s.handleFind(request)
	case ActionStats:
		return s.send(StatsResponse{ID: request.ID, Stats: s.finder.Stats()})
	case ActionHealth:
		return s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		return s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), 400)
	}
}

func (s *Server) handleFind(request FindRequest) error {
	query := request.Query
	if maxLen := s.config.Server.MaxQueryLen; maxLen > 0 && utf8.RuneCountInString(query) > maxLen {
		s.logger.Debug("Query too long", "id", request.ID, "len", utf8.RuneCountInString(query))
		return s.sendError(request.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", maxLen), 400)
	}

	start := time.Now()
	result, err := s.finder.FindAllWords(query)
	elapsed := time.Since(start)
	if err != nil {
		code := 500
		switch {
		case errors.Is(err, dictionary.ErrSourceUnavailable):
			code = 503
		case errors.Is(err, finder.ErrInputTooLong):
			code = 400
		}
		s.logger.Errorf("Find failed for %q: %v", query, err)
		return s.sendError(request.ID, err.Error(), code)
	}

	response := FindResponse{
		ID:        request.ID,
		Groups:    toGroups(result),
		Count:     result.Count(),
		TimeTaken: elapsed.Microseconds(),
	}
	return s.send(response)
}

// toGroups orders a result longest words first
func toGroups(result finder.Result) []WordGroup {
	groups := make([]WordGroup, 0, len(result))
	for _, n := range result.Lengths() {
		groups = append(groups, WordGroup{Length: n, Words: result[n]})
	}
	return groups
}

// send encodes a response onto the output stream.
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) error {
	return s.send(FindError{ID: id, Error: message, Code: code})
}
