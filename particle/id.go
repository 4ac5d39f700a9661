package particle

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource produces particle identifiers, unique for the lifetime of the source
type IDSource interface {
	NextID() string
}

// UUIDSource issues random version 4 UUIDs
type UUIDSource struct{}

// NextID returns a new random UUID string
func (UUIDSource) NextID() string {
	return uuid.NewString()
}

// SequentialIDs issues prefix-N identifiers from a monotonic counter
type SequentialIDs struct {
	Prefix string
	next   atomic.Uint64
}

// NextID returns the next identifier in sequence
func (s *SequentialIDs) NextID() string {
	n := s.next.Add(1)
	return s.Prefix + strconv.FormatUint(n, 10)
}
