package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"lumiere/internal/attachments/service"
	httputil "lumiere/pkg/http"
	"lumiere/pkg/logger"
)

type PresignRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type DeleteRequest struct {
	Key string `json:"key"`
}

type AttachmentHandler struct {
	service service.AttachmentService
	log     *logger.Logger
}

func NewAttachmentHandler(service service.AttachmentService, log *logger.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		service: service,
		log:     log,
	}
}

func (h *AttachmentHandler) Presign(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req PresignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Presign", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.PresignUpload(r.Context(), req.FileName, req.ContentType, req.Size)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Presign", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Presign", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	key := r.URL.Query().Get("key")
	if key == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "The 'key' query parameter is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Download", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	url, err := h.service.PresignDownload(r.Context(), key)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Download", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]string{"url": url}); err != nil {
		h.log.Error("failed to write success response", "handler", "Download", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	key := r.URL.Query().Get("key")
	if key == "" {
		var req DeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			key = req.Key
		}
	}
	if key == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "The attachment key is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Delete", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Remove(r.Context(), key); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AttachmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/attachments/presign", h.Presign)
	router.GET("/api/v1/attachments/download", h.Download)
	router.DELETE("/api/v1/attachments", h.Delete)
}
