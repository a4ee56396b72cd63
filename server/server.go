// Package server exposes a formbind.Store over JSON-RPC so remote
// binding layers can read, update, and subscribe to a shared form.
//
// Methods:
//
//	form/get          -> current snapshot
//	form/set          {path, value, notify} -> snapshot after the write
//	form/patch        {patch, notify} -> snapshot after the RFC 6902 patch
//	form/subscribe    {paths} -> {id}; pushes form/invalidate notifications
//	form/unsubscribe  {id}
//	form/trigger      notify all subscribers
package server

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/formbind/go-formbind"
	"github.com/formbind/go-formbind/debug"
)

// Spec configures a Server.
type Spec struct {
	Store *formbind.Store
	Log   *zap.Logger
}

// Server serves one Store to any number of JSON-RPC connections.
type Server struct {
	spec Spec

	ln     net.Listener
	cancel context.CancelFunc
	group  *errgroup.Group
}

func New(spec *Spec) *Server {
	s := &Server{spec: *spec}
	if s.spec.Log == nil {
		s.spec.Log = zap.NewNop()
	}
	if s.spec.Store == nil {
		s.spec.Store = formbind.NewStore(map[string]any{})
	}
	return s
}

// StartTCP starts listening on addr. Connections are served until
// StopTCP.
func (s *Server) StartTCP(addr string) error {
	if s.ln != nil {
		return fmt.Errorf("TCP listener already running")
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	s.ln = ln
	s.cancel = cancel
	s.group = group

	group.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
					return err
				}
			}
			if debug.Server() {
				debug.Logf("server: connection from %s\n", conn.RemoteAddr())
			}
			s.spec.Log.Debug("connection", zap.Stringer("remote", conn.RemoteAddr()))
			group.Go(func() error {
				s.serveConn(ctx, conn)
				return nil
			})
		}
	})
	return nil
}

// StopTCP closes the listener and waits for in-flight connections.
func (s *Server) StopTCP() error {
	if s.ln == nil {
		return nil
	}
	s.cancel()
	err := s.ln.Close()
	s.group.Wait()
	s.ln = nil
	return err
}

// TCPAddr returns the listen address, or empty when not running.
func (s *Server) TCPAddr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}
