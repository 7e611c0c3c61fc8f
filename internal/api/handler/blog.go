package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	mw "github.com/iconidentify/blogsmith/internal/api/middleware"
	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/service"
	"github.com/iconidentify/blogsmith/internal/validator"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

// BlogHandler handles blog generation and management requests.
type BlogHandler struct {
	svc      *service.BlogService
	validate *validator.Validator
	logger   *slog.Logger
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(svc *service.BlogService, validate *validator.Validator, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		svc:      svc,
		validate: validate,
		logger:   logger,
	}
}

// BlogResponse wraps a single blog.
type BlogResponse struct {
	Blog *domain.Blog `json:"blog"`
}

// Generate handles POST /api/blogs/generate
func (h *BlogHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.ValidateGenerate(&req); err != nil {
		writeError(w, http.StatusBadRequest, validator.Message(err))
		return
	}

	authorID, _ := mw.UserIDFromContext(r.Context())
	res, err := h.svc.Generate(r.Context(), req.Prompt, authorID)
	if err != nil {
		h.logger.Error("generate failed", "error", err)
		status, msg := generationFailure(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// generationFailure maps a generation error to a status and message.
// Provider authentication, rate limiting and timeouts are reported as
// gateway errors; everything else is a 500.
func generationFailure(err error) (int, string) {
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		return http.StatusInternalServerError, "Failed to generate blog"
	}

	switch llm.Category(err) {
	case llm.CategoryAuth:
		return http.StatusBadGateway, err.Error()
	case llm.CategoryRateLimited:
		return http.StatusServiceUnavailable, err.Error()
	case llm.CategoryTimeout:
		return http.StatusGatewayTimeout, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// List handles GET /api/blogs
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.BlogFilter{
		Page:  queryInt(q.Get("page"), 1),
		Limit: queryInt(q.Get("limit"), service.DefaultPageSize),
	}
	if s := q.Get("status"); s != "" {
		filter.Status = domain.BlogStatus(s)
		if !filter.Status.Valid() {
			writeError(w, http.StatusBadRequest, "Status must be draft or published")
			return
		}
	}

	page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch blogs")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /api/blogs/{id}
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	blog, err := h.svc.Get(r.Context(), blogID(r))
	if err != nil {
		h.writeBlogError(w, err, "get")
		return
	}

	writeJSON(w, http.StatusOK, BlogResponse{Blog: blog})
}

// HTML handles GET /api/blogs/{id}/html
func (h *BlogHandler) HTML(w http.ResponseWriter, r *http.Request) {
	rendered, err := h.svc.Render(r.Context(), blogID(r))
	if err != nil {
		h.writeBlogError(w, err, "render")
		return
	}

	writeJSON(w, http.StatusOK, rendered)
}

// Update handles PUT /api/blogs/{id}
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd domain.BlogUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.ValidateBlogUpdate(&upd); err != nil {
		writeError(w, http.StatusBadRequest, validator.Message(err))
		return
	}

	blog, err := h.svc.Update(r.Context(), blogID(r), upd)
	if err != nil {
		h.writeBlogError(w, err, "update")
		return
	}

	writeJSON(w, http.StatusOK, BlogResponse{Blog: blog})
}

// Delete handles DELETE /api/blogs/{id}
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), blogID(r)); err != nil {
		h.writeBlogError(w, err, "delete")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Blog deleted successfully"})
}

// AttachImage handles POST /api/blogs/{id}/images
func (h *BlogHandler) AttachImage(w http.ResponseWriter, r *http.Request) {
	var req domain.AttachImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.ValidateAttachImage(&req); err != nil {
		writeError(w, http.StatusBadRequest, validator.Message(err))
		return
	}

	blog, err := h.svc.AttachImage(r.Context(), blogID(r), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageFailed):
			writeError(w, http.StatusBadGateway, err.Error())
		case errors.Is(err, domain.ErrInvalidImageRole):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.writeBlogError(w, err, "attach image")
		}
		return
	}

	writeJSON(w, http.StatusOK, BlogResponse{Blog: blog})
}

func (h *BlogHandler) writeBlogError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, domain.ErrBlogNotFound) {
		writeError(w, http.StatusNotFound, "Blog not found")
		return
	}
	h.logger.Error(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Failed to "+op+" blog")
}

func blogID(r *http.Request) domain.BlogID {
	return domain.BlogID(chi.URLParam(r, "id"))
}

// queryInt parses a positive integer, falling back to def.
func queryInt(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return def
}
