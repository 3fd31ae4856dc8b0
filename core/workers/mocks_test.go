// ABOUTME: Test doubles for the workers package
// ABOUTME: Closure-backed generation service and a message-recording logger

package workers

import (
	"context"
	"sync"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

var _ interfaces.GenerationService = (*fakeGenerationService)(nil)

type fakeGenerationService struct {
	refreshAllFunc      func(ctx context.Context) (*domain.RunSummary, error)
	refreshCategoryFunc func(ctx context.Context, category string) (*domain.RunSummary, error)
}

func (f *fakeGenerationService) RefreshAll(ctx context.Context) (*domain.RunSummary, error) {
	if f.refreshAllFunc != nil {
		return f.refreshAllFunc(ctx)
	}
	return &domain.RunSummary{}, nil
}

func (f *fakeGenerationService) RefreshCategory(ctx context.Context, category string) (*domain.RunSummary, error) {
	if f.refreshCategoryFunc != nil {
		return f.refreshCategoryFunc(ctx, category)
	}
	return &domain.RunSummary{Categories: 1}, nil
}

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.record(msg) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.record(msg) }

func (l *recordingLogger) has(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.messages {
		if m == msg {
			return true
		}
	}
	return false
}
