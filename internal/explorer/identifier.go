package explorer

import (
	"log/slog"

	"github.com/google/uuid"
)

// ParseID parses a tree item identifier as a UUID.
// Malformed input is logged at warn level and reported as absent.
func ParseID(logger *slog.Logger, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		if logger != nil {
			logger.Warn("invalid tree item identifier", "id", raw, "error", err)
		}
		return uuid.Nil, false
	}
	return id, true
}
