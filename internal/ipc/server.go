package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kbaines/pounce/internal/perr"
)

// socketPerms keeps the control socket private to the owning user.
const socketPerms = 0o600

// Handler processes one decoded command.
type Handler func(ctx context.Context, cmd Command) Response

// Server accepts control connections and routes commands to the handler.
type Server struct {
	listener net.Listener
	handler  Handler
	logger   *zap.Logger
	path     string

	wg      sync.WaitGroup
	stopped sync.Once
}

// NewServer binds the unix socket at path, replacing a stale socket file
// from a previous run.
func NewServer(path string, handler Handler, logger *zap.Logger) (*Server, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, perr.Wrap(perr.CodeIPCFailed, "remove stale socket", err)
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, perr.Wrap(perr.CodeIPCFailed, "bind control socket", err)
	}
	if err := os.Chmod(path, socketPerms); err != nil {
		listener.Close()
		return nil, perr.Wrap(perr.CodeIPCFailed, "restrict socket permissions", err)
	}
	logger.Info("control socket listening", zap.String("path", path))
	return &Server{listener: listener, handler: handler, logger: logger, path: path}, nil
}

// Start launches the accept loop.
func (s *Server) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				if errors.Is(err, net.ErrClosed) {
					return
				}
				s.logger.Warn("accept failed", zap.Error(err))
				continue
			}
			s.wg.Add(1)
			go s.serve(ctx, conn)
		}
	}()
}

func (s *Server) serve(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(ReadTimeout))

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	var cmd Command
	if err := dec.Decode(&cmd); err != nil {
		s.logger.Warn("undecodable command", zap.Error(err))
		_ = enc.Encode(Fail(CodeInvalidInput, "malformed command"))
		return
	}
	logger := s.logger.With(zap.String("action", cmd.Action), zap.String("id", cmd.ID))

	if cmd.Version != "" && cmd.Version != ProtocolVersion {
		logger.Warn("protocol version mismatch", zap.String("got", cmd.Version))
		resp := Fail(CodeVersionMismatch, "client and daemon versions differ")
		resp.ID = cmd.ID
		_ = enc.Encode(resp)
		return
	}

	resp := s.handler(ctx, cmd)
	resp.Version = ProtocolVersion
	resp.ID = cmd.ID
	if err := enc.Encode(resp); err != nil {
		logger.Warn("response write failed", zap.Error(err))
		return
	}
	logger.Debug("command handled", zap.String("code", resp.Code))
}

// Stop closes the listener, waits briefly for in-flight connections, and
// removes the socket file. Idempotent.
func (s *Server) Stop() {
	s.stopped.Do(func() {
		_ = s.listener.Close()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()
		timer := time.NewTimer(time.Second)
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			s.logger.Warn("timeout waiting for control connections")
		}
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("socket cleanup failed", zap.Error(err))
		}
	})
}
