package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"

	"github.com/formbind/go-formbind"
	"github.com/formbind/go-formbind/fieldpath"
	"github.com/formbind/go-formbind/tree"
)

type setParams struct {
	Path   string `json:"path"`
	Value  any    `json:"value"`
	Notify bool   `json:"notify"`
}

type patchParams struct {
	Patch  json.RawMessage `json:"patch"`
	Notify bool            `json:"notify"`
}

type subscribeParams struct {
	Paths []string `json:"paths"`
}

type subscribeResult struct {
	ID string `json:"id"`
}

type unsubscribeParams struct {
	ID string `json:"id"`
}

type invalidateNotification struct {
	ID   string `json:"id"`
	Form any    `json:"form"`
}

// connState is the per-connection handler: it tracks this connection's
// subscriptions so they die with it.
type connState struct {
	server *Server
	rpc    jsonrpc2.Conn

	mu   sync.Mutex
	subs map[string]func()
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	stream := jsonrpc2.NewStream(conn)
	rpc := jsonrpc2.NewConn(stream)
	cs := &connState{
		server: s,
		rpc:    rpc,
		subs:   map[string]func(){},
	}
	rpc.Go(ctx, cs.handle)
	select {
	case <-rpc.Done():
	case <-ctx.Done():
		rpc.Close()
		<-rpc.Done()
	}
	cs.unsubscribeAll()
}

func (cs *connState) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	store := cs.server.spec.Store
	switch req.Method() {
	case "form/get":
		return reply(ctx, store.Form(), nil)

	case "form/set":
		var params setParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrParse, err))
		}
		path, err := fieldpath.Parse(params.Path)
		if err != nil {
			return reply(ctx, nil, err)
		}
		var setErr error
		err = store.Update(func(draft any) any {
			setErr = tree.Set(draft, path, params.Value, tree.MakeMap)
			return nil
		}, formbind.UpdateOptions{Notify: params.Notify})
		if err == nil {
			err = setErr
		}
		if err != nil {
			cs.server.spec.Log.Warn("set failed",
				zap.String("path", params.Path), zap.Error(err))
			return reply(ctx, nil, err)
		}
		return reply(ctx, store.Form(), nil)

	case "form/patch":
		var params patchParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrParse, err))
		}
		if err := store.ApplyPatch(params.Patch, formbind.UpdateOptions{Notify: params.Notify}); err != nil {
			return reply(ctx, nil, err)
		}
		return reply(ctx, store.Form(), nil)

	case "form/subscribe":
		var params subscribeParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrParse, err))
		}
		paths := make([]fieldpath.Path, 0, len(params.Paths))
		for _, ps := range params.Paths {
			p, err := fieldpath.Parse(ps)
			if err != nil {
				return reply(ctx, nil, err)
			}
			paths = append(paths, p)
		}
		id := uuid.NewString()
		unsubscribe := store.Register(paths, func(snapshot any) {
			if err := cs.rpc.Notify(context.Background(), "form/invalidate",
				&invalidateNotification{ID: id, Form: snapshot}); err != nil {
				cs.server.spec.Log.Warn("invalidate notify failed",
					zap.String("id", id), zap.Error(err))
			}
		})
		cs.mu.Lock()
		cs.subs[id] = unsubscribe
		cs.mu.Unlock()
		return reply(ctx, &subscribeResult{ID: id}, nil)

	case "form/unsubscribe":
		var params unsubscribeParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrParse, err))
		}
		cs.mu.Lock()
		unsubscribe, ok := cs.subs[params.ID]
		delete(cs.subs, params.ID)
		cs.mu.Unlock()
		if !ok {
			return reply(ctx, nil, fmt.Errorf("unknown subscription %q", params.ID))
		}
		unsubscribe()
		return reply(ctx, true, nil)

	case "form/trigger":
		store.Trigger()
		return reply(ctx, true, nil)
	}
	return reply(ctx, nil, fmt.Errorf("%w: %q", jsonrpc2.ErrMethodNotFound, req.Method()))
}

func (cs *connState) unsubscribeAll() {
	cs.mu.Lock()
	subs := cs.subs
	cs.subs = map[string]func(){}
	cs.mu.Unlock()
	for _, unsubscribe := range subs {
		unsubscribe()
	}
}
