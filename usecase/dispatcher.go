package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// CommandHandler replays a serialized payload. Stores register one per
// deferrable operation under "<entity>.<operation>".
type CommandHandler func(ctx context.Context, payload json.RawMessage) error

type Dispatcher struct {
	cmdHandlers map[string]CommandHandler
	mu          sync.RWMutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		cmdHandlers: make(map[string]CommandHandler),
	}
}

func (d *Dispatcher) RegisterCommand(name string, handler CommandHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cmdHandlers[name] = handler
}

func (d *Dispatcher) ExecuteCommand(ctx context.Context, name string, payload json.RawMessage) error {
	d.mu.RLock()
	handler, ok := d.cmdHandlers[name]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("command handler %s not registered", name)
	}
	return handler(ctx, payload)
}

// Commands lists registered command names in order.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.cmdHandlers))
	for name := range d.cmdHandlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
