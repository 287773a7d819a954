package components

import (
	"github.com/google/uuid"

	"github.com/magnopus-swifty/connected-spaces-platform/internal/core/property"
)

// EntityComponent is the view the entity and the replication sender share
// of each attached component.
type EntityComponent interface {
	Type() Type
	Properties() *property.Store
}

// SpaceEntity owns the components replicated for one networked object.
type SpaceEntity struct {
	id         uuid.UUID
	name       string
	components []EntityComponent
}

func NewSpaceEntity(name string) *SpaceEntity {
	return &SpaceEntity{
		id:   uuid.New(),
		name: name,
	}
}

func (e *SpaceEntity) ID() uuid.UUID { return e.id }

func (e *SpaceEntity) Name() string { return e.name }

func (e *SpaceEntity) AddComponent(c EntityComponent) {
	e.components = append(e.components, c)
}

func (e *SpaceEntity) Components() []EntityComponent {
	out := make([]EntityComponent, len(e.components))
	copy(out, e.components)
	return out
}
