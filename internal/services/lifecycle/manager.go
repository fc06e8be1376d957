// Package lifecycle releases the resources one CLI invocation opened.
package lifecycle

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// StopFunc releases one component.
type StopFunc func(ctx context.Context) error

type component struct {
	name string
	stop StopFunc
}

// Manager stops registered components last-in first-out, so a consumer is
// always stopped before the store it depends on.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu         sync.Mutex
	components []component
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

// Register adds a component. A nil stop is ignored.
func (m *Manager) Register(name string, stop StopFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	m.components = append(m.components, component{name: name, stop: stop})
	m.mu.Unlock()
}

// RegisterCloser adapts a context-free Close method.
func (m *Manager) RegisterCloser(name string, closeFn func() error) {
	if closeFn == nil {
		return
	}
	m.Register(name, func(context.Context) error { return closeFn() })
}

// Components lists registered names in stop order.
func (m *Manager) Components() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.components))
	for i := len(m.components) - 1; i >= 0; i-- {
		names = append(names, m.components[i].name)
	}
	return names
}

// Shutdown stops every component once within the timeout and returns the
// combined errors. Later calls find nothing to stop.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	components := m.components
	m.components = nil
	m.mu.Unlock()

	var errs error
	for i := len(components) - 1; i >= 0; i-- {
		c := components[i]
		started := time.Now()
		if err := c.stop(ctx); err != nil {
			m.logger.Error("component stop failed", zap.String("component", c.name), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		m.logger.Debug("component stopped",
			zap.String("component", c.name),
			zap.Duration("took", time.Since(started)))
	}
	return errs
}
