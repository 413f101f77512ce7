package handlers

import (
	"net/http"

	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"
)

type ArchiveHandler struct {
	archive *services.ArchiveService
}

func NewArchiveHandler(archive *services.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archive: archive}
}

// Export snapshots the final-closed archive as CSV to the configured
// bucket.
func (h *ArchiveHandler) Export(w http.ResponseWriter, r *http.Request) {
	key, err := h.archive.Export(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.OK(w, map[string]interface{}{"object": key})
}
