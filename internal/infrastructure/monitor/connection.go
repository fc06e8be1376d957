package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger reports whether the API answers. *apiclient.Client implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Sizer reports the number of queued outbox items. *buffer.Store implements it.
type Sizer interface {
	Size() (int, error)
}

type Monitor struct {
	api    Pinger
	outbox Sizer

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	once     sync.Once
	logger   *zap.Logger
}

func New(api Pinger, outbox Sizer, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := 3 * time.Second
	if interval < timeout {
		timeout = interval
	}
	return &Monitor{
		api:      api,
		outbox:   outbox,
		interval: interval,
		timeout:  timeout,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		logger:   logger,
	}
}

// Start runs an immediate check and then one per interval until Stop.
func (m *Monitor) Start() {
	go m.loop()
}

// Stop ends the loop and waits for it to exit. Safe to call more than once.
func (m *Monitor) Stop() {
	m.once.Do(func() {
		close(m.stopCh)
		<-m.doneCh
	})
}

// IsOnline reports whether the last check reached the API.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.API
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh runs one check synchronously and returns the new status.
func (m *Monitor) Refresh(ctx context.Context) Status {
	apiErr := m.checkAPI(ctx)
	outboxOK, outboxSize := m.checkOutbox()
	status := Status{
		API:        apiErr == nil,
		Outbox:     outboxOK,
		OutboxSize: outboxSize,
		LastCheck:  time.Now(),
	}
	if apiErr != nil {
		status.APIError = apiErr.Error()
	}

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.mu.Unlock()

	if !prev.LastCheck.IsZero() && prev.API != status.API {
		m.logger.Info("api connectivity changed", zap.Bool("online", status.API))
	}
	return status
}

func (m *Monitor) loop() {
	defer close(m.doneCh)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh(context.Background())
	for {
		select {
		case <-ticker.C:
			m.Refresh(context.Background())
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) checkAPI(parent context.Context) error {
	if m.api == nil {
		return errNoAPI
	}
	ctx, cancel := context.WithTimeout(parent, m.timeout)
	defer cancel()
	return m.api.Ping(ctx)
}

func (m *Monitor) checkOutbox() (bool, int) {
	if m.outbox == nil {
		return false, 0
	}
	size, err := m.outbox.Size()
	if err != nil {
		m.logger.Warn("outbox size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
