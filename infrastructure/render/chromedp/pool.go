// ABOUTME: Fixed-size session pool for pooled batch execution
// ABOUTME: Owns its sessions; acquire blocks until one is free

package chromedp

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// Pool owns a fixed set of renderer sessions. Every acquired session
// must be returned with Release; sessions returned after Close are
// closed instead of pooled.
type Pool struct {
	sessions chan interfaces.Session
	logger   interfaces.Logger

	mu     sync.Mutex
	closed bool
}

// NewPool opens size sessions from the renderer. On any failure the
// already-opened sessions are closed and the error returned.
func NewPool(ctx context.Context, renderer interfaces.Renderer, size int, logger interfaces.Logger) (*Pool, error) {
	if size <= 0 {
		size = 1
	}

	opened := make([]interfaces.Session, 0, size)
	for i := 0; i < size; i++ {
		session, err := renderer.NewSession(ctx)
		if err != nil {
			for _, s := range opened {
				_ = s.Close()
			}
			return nil, fmt.Errorf("opening pooled session %d of %d: %w", i+1, size, err)
		}
		opened = append(opened, session)
	}

	p := &Pool{
		sessions: make(chan interfaces.Session, size),
		logger:   logger,
	}
	for _, s := range opened {
		p.sessions <- s
	}

	if logger != nil {
		logger.Info("Renderer pool ready", map[string]interface{}{
			"sessions": size,
		})
	}
	return p, nil
}

// Acquire returns a free session, blocking until one is released or
// the context is done.
func (p *Pool) Acquire(ctx context.Context) (interfaces.Session, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, stderrors.New("session pool is closed")
	}

	select {
	case s := <-p.sessions:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a session to the pool.
func (p *Pool) Release(s interfaces.Session) {
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = s.Close()
		return
	}
	select {
	case p.sessions <- s:
	default:
		// Not one of ours; the pool is already full.
		_ = s.Close()
	}
}

// Close closes every idle session. Sessions still checked out are
// closed when released.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	for {
		select {
		case s := <-p.sessions:
			_ = s.Close()
		default:
			if p.logger != nil {
				p.logger.Debug("Renderer pool closed", nil)
			}
			return nil
		}
	}
}
