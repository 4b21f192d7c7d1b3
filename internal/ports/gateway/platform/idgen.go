package port_platform

import "github.com/google/uuid"

// IDGenerator issues transfer attempt ids.
type IDGenerator interface {
	NewUUID() uuid.UUID
}
