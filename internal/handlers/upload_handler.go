package handlers

import (
	"io"
	"net/http"

	"gametrack-backend/internal/cache"
	"gametrack-backend/internal/services"
	"gametrack-backend/pkg/utils"
)

// 16 MB cap on DBF uploads
const maxUploadBytes = 16 << 20

type UploadHandler struct {
	intake *services.IntakeService
}

func NewUploadHandler(intake *services.IntakeService) *UploadHandler {
	return &UploadHandler{intake: intake}
}

// UploadDBF ingests a distributor DBF export posted as the multipart
// field "file".
func (h *UploadHandler) UploadDBF(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "could not read upload")
		return
	}

	result, err := h.intake.Ingest(r.Context(), data)
	if err != nil {
		writeError(w, err)
		return
	}

	cache.InvalidateDashboard(r.Context())
	utils.OK(w, map[string]interface{}{
		"location": result.Location,
		"inserted": result.Inserted,
	})
}
