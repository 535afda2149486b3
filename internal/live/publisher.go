package live

import (
	"encoding/json"

	"userdesk/internal/app/form"
	"userdesk/internal/logging"
)

// SnapshotPublisher returns a controller listener that pushes every snapshot
// of one session to its open pages.
func SnapshotPublisher(h *Hub, sessionID string, logger logging.Logger) func(form.Snapshot) {
	return func(s form.Snapshot) {
		payload, err := json.Marshal(s)
		if err != nil {
			logger.Error("failed to encode snapshot", "session_id", sessionID, "error", err)
			return
		}
		h.Broadcast(sessionID, payload)
	}
}
