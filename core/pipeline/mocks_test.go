package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
	"github.com/sundeep8967/keypoints-backend-1/infrastructure/render/dom"
)

// fakeSession serves canned documents for known URLs and records
// every visit. Safe for concurrent use by pooled runs.
type fakeSession struct {
	mu     sync.Mutex
	docs   map[string]string
	errs   map[string]error
	visits []string
	closed bool
}

func (s *fakeSession) Navigate(ctx context.Context, target string) (interfaces.Page, error) {
	s.mu.Lock()
	s.visits = append(s.visits, target)
	s.mu.Unlock()

	if err, ok := s.errs[target]; ok {
		return nil, err
	}
	html, ok := s.docs[target]
	if !ok {
		return nil, fmt.Errorf("no document for %s", target)
	}
	page, err := dom.NewPage(target, html)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSession) visited() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.visits...)
}

// fakeRenderer hands out a single prepared session.
type fakeRenderer struct {
	session  *fakeSession
	err      error
	sessions int
}

func (r *fakeRenderer) NewSession(ctx context.Context) (interfaces.Session, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.sessions++
	return r.session, nil
}

func (r *fakeRenderer) Close() error { return nil }

// fakePool owns a fixed set of sessions behind a channel and counts
// acquire/release pairs.
type fakePool struct {
	sessions chan interfaces.Session
	mu       sync.Mutex
	acquired int
	released int
}

func newFakePool(docs map[string]string, errs map[string]error, size int) *fakePool {
	p := &fakePool{sessions: make(chan interfaces.Session, size)}
	for i := 0; i < size; i++ {
		p.sessions <- &fakeSession{docs: docs, errs: errs}
	}
	return p
}

func (p *fakePool) Acquire(ctx context.Context) (interfaces.Session, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case s := <-p.sessions:
		p.mu.Lock()
		p.acquired++
		p.mu.Unlock()
		return s, nil
	}
}

func (p *fakePool) Release(s interfaces.Session) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
	p.sessions <- s
}

func (p *fakePool) Close() error { return nil }

func (p *fakePool) counts() (acquired, released int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquired, p.released
}
