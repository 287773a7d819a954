// Package replication drains dirty component properties and re-encodes
// them into tagged wire items for the transport to send.
package replication

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/components"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/observability/log"
	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/wire"
)

// Patch carries every property of one component changed since the last
// flush, already encoded in the tagged item shape. Digest identifies the
// patch content for logging and duplicate suppression downstream.
type Patch struct {
	EntityID      uuid.UUID
	ComponentType components.Type
	Items         map[uint64]wire.Value
	Digest        uint64
}

// Sink receives finished patches; the transport owns delivery.
type Sink interface {
	Send(ctx context.Context, patch Patch) error
}

// Sender flushes dirty properties across entities. Each entity flushes on
// its own goroutine; the per-store mutex already serializes against
// concurrent application writes.
type Sender struct {
	sink Sink
	log  *log.Logger
}

func NewSender(sink Sink, logger *log.Logger) *Sender {
	return &Sender{sink: sink, log: logger}
}

// Flush drains every dirty component of every entity and hands the
// resulting patches to the sink. The first entity error cancels the rest.
func (s *Sender) Flush(ctx context.Context, entities []*components.SpaceEntity) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, entity := range entities {
		entity := entity
		g.Go(func() error {
			return s.flushEntity(ctx, entity)
		})
	}
	return g.Wait()
}

func (s *Sender) flushEntity(ctx context.Context, entity *components.SpaceEntity) error {
	for _, component := range entity.Components() {
		entries := component.Properties().TakeDirty()
		if len(entries) == 0 {
			continue
		}

		items := make(map[uint64]wire.Value, len(entries))
		for _, entry := range entries {
			encoded, err := wire.EncodeItem(entry.Value)
			if err != nil {
				// Schema validation keeps invalid values out of stores, so
				// this indicates a bug rather than bad data.
				s.log.Error("failed to encode dirty property",
					zap.String("entity", entity.ID().String()),
					zap.Uint32("key", entry.Key),
					zap.Error(err))
				continue
			}
			items[uint64(entry.Key)] = encoded
		}
		if len(items) == 0 {
			continue
		}

		patch := Patch{
			EntityID:      entity.ID(),
			ComponentType: component.Type(),
			Items:         items,
			Digest:        digestItems(items),
		}

		if err := s.sink.Send(ctx, patch); err != nil {
			return err
		}

		s.log.Debug("flushed component patch",
			zap.String("entity", entity.ID().String()),
			zap.String("component", component.Type().String()),
			zap.Int("properties", len(items)),
			zap.Uint64("digest", patch.Digest))
	}
	return nil
}
