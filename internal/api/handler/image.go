package handler

import (
	"net/http"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/service"
	"github.com/iconidentify/blogsmith/internal/validator"
)

// ImageHandler handles standalone image generation.
type ImageHandler struct {
	svc      *service.ImageService
	validate *validator.Validator
}

// NewImageHandler creates a new image handler.
func NewImageHandler(svc *service.ImageService, validate *validator.Validator) *ImageHandler {
	return &ImageHandler{svc: svc, validate: validate}
}

// Generate handles POST /api/images/generate. Generation failures are
// reported in the result with a 200; only malformed requests get a 400.
func (h *ImageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.ImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.ValidateImage(&req); err != nil {
		writeError(w, http.StatusBadRequest, validator.Message(err))
		return
	}

	res := h.svc.Generate(r.Context(), req)
	writeJSON(w, http.StatusOK, res)
}
