package handlers

import (
	"io"
	"net/http"

	"workhub-project/tasks-service/models"
	"workhub-project/tasks-service/services"

	"github.com/gorilla/mux"
)

const maxUploadSize = 32 << 20 // 32 MB

type AttachmentHandler struct {
	service *services.AttachmentService
}

func NewAttachmentHandler(service *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

func (h *AttachmentHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid multipart payload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	input := services.UploadAttachmentInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Description: r.FormValue("description"),
		Visibility:  models.AttachmentVisibility(r.FormValue("visibility")),
		Data:        data,
	}

	attachment, err := h.service.UploadAttachment(r.Context(), taskID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, attachment)
}

func (h *AttachmentHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	attachmentID := mux.Vars(r)["attachmentID"]

	if err := h.service.DeleteAttachment(r.Context(), attachmentID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Attachment deleted successfully"})
}

func (h *AttachmentHandler) GetAttachmentsByTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	attachments, err := h.service.GetAttachmentsByTask(r.Context(), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attachments)
}
