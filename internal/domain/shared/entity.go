package shared

import (
	"time"
)

// Entity is the base interface for all persisted domain entities
type Entity interface {
	GetID() uint
	GetRegisteredAt() time.Time
	GetVersion() int
	IncrementVersion()
}

// BaseEntity provides the identifier, registration timestamp and
// optimistic-locking version shared by every entity.
type BaseEntity struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	RegisteredAt time.Time `gorm:"not null;<-:create"`
	Version      int       `gorm:"not null;default:1"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uint {
	return e.ID
}

// GetRegisteredAt returns the registration timestamp
func (e *BaseEntity) GetRegisteredAt() time.Time {
	return e.RegisteredAt
}

// GetVersion returns the entity version for optimistic locking
func (e *BaseEntity) GetVersion() int {
	return e.Version
}

// IncrementVersion increments the version number
func (e *BaseEntity) IncrementVersion() {
	e.Version++
}

// Now returns the current UTC time at microsecond precision, the resolution
// PostgreSQL keeps, so a value read back equals the one written
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewBaseEntity creates a new base entity stamped with the current time.
// The ID is assigned by the store on insert.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		RegisteredAt: Now(),
		Version:      1,
	}
}
