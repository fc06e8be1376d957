package services

import (
	"context"
	"encoding/json"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/internal/infrastructure/buffer"
	"github.com/fastygo/trucar/usecase"
)

// BufferBridge lets stores defer submissions without knowing about Bolt.
type BufferBridge struct {
	processor *BufferProcessor
	userID    func() int
}

// NewBufferBridge builds a bridge. userID, when set, stamps items with the
// submitting user so a later session can tell whose entries are queued.
func NewBufferBridge(processor *BufferProcessor, userID func() int) *BufferBridge {
	return &BufferBridge{processor: processor, userID: userID}
}

func (b *BufferBridge) Defer(ctx context.Context, entity, operation string, payload any) error {
	if b.processor == nil || payload == nil {
		return domain.ErrInvalidPayload
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	item := buffer.Item{
		Entity:    entity,
		Operation: operation,
		Data:      data,
		Priority:  priorityFor(entity),
	}
	if b.userID != nil {
		item.UserID = b.userID()
	}
	return b.processor.Enqueue(item)
}

// Maintenance reports from the field go first: a broken vehicle blocks work.
func priorityFor(entity string) int {
	switch entity {
	case buffer.EntityMaintenance:
		return 2
	default:
		return 3
	}
}

var _ usecase.Outbox = (*BufferBridge)(nil)
