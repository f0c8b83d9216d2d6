package photo

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clientdesk/portal/internal/middleware"
	"github.com/clientdesk/portal/internal/response"
)

// Handler holds HTTP handlers for photo endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new photo Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type confirmUploadRequest struct {
	FileKey    string   `json:"fileKey"`
	FileName   string   `json:"fileName"`
	FileURL    string   `json:"fileUrl"`
	FileSize   int64    `json:"fileSize"`
	MimeType   string   `json:"mimeType"`
	Category   string   `json:"category"`
	Notes      *string  `json:"notes,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	AltText    *string  `json:"altText,omitempty"`
	Visibility *string  `json:"visibility,omitempty"`
}

type photoBody struct {
	Photo *Photo `json:"photo"`
}

type photoListBody struct {
	Photos []Photo `json:"photos"`
}

type deleteBody struct {
	Success bool `json:"success" example:"true"`
}

// RequestUploadSlot godoc
//
//	@Summary		Request an upload slot
//	@Description	Issue a presigned PUT URL valid for one hour. The client uploads directly to object storage, then confirms via POST /photos.
//	@Tags			photos
//	@Produce		json
//	@Security		BearerAuth
//	@Param			fileName	query		string	true	"Original file name"
//	@Param			fileType	query		string	true	"MIME type of the file"
//	@Param			category	query		string	true	"Category label, used in the storage key"
//	@Success		200			{object}	UploadSlot
//	@Failure		400			{object}	map[string]string
//	@Failure		401			{object}	map[string]string
//	@Router			/photos/upload-slot [get]
func (h *Handler) RequestUploadSlot(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	q := r.URL.Query()
	slot, err := h.svc.RequestUploadSlot(r.Context(), caller,
		q.Get("fileName"), q.Get("fileType"), q.Get("category"))
	if errors.Is(err, ErrInvalidArgument) {
		response.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		response.Internal(w, "request upload slot", err)
		return
	}

	response.OK(w, slot)
}

// ConfirmUpload godoc
//
//	@Summary		Confirm a completed upload
//	@Description	Persist the metadata row for bytes already uploaded to storage. The referenced object must exist.
//	@Tags			photos
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		confirmUploadRequest	true	"Upload confirmation"
//	@Success		201		{object}	photoBody
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Router			/photos [post]
func (h *Handler) ConfirmUpload(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req confirmUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	p, err := h.svc.ConfirmUpload(r.Context(), caller, ConfirmUploadInput{
		FileKey:    req.FileKey,
		FileName:   req.FileName,
		FileURL:    req.FileURL,
		FileSize:   req.FileSize,
		MimeType:   req.MimeType,
		Category:   req.Category,
		Notes:      req.Notes,
		Tags:       req.Tags,
		AltText:    req.AltText,
		Visibility: req.Visibility,
	})
	if errors.Is(err, ErrInvalidArgument) {
		response.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		response.Internal(w, "confirm upload", err)
		return
	}

	response.Created(w, photoBody{Photo: p})
}

// List godoc
//
//	@Summary		List photos
//	@Description	Return all photos visible to the caller, newest first.
//	@Tags			photos
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	photoListBody
//	@Failure		401	{object}	map[string]string
//	@Router			/photos [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	photos, err := h.svc.List(r.Context(), caller)
	if err != nil {
		response.Internal(w, "list photos", err)
		return
	}

	response.OK(w, photoListBody{Photos: photos})
}

// Delete godoc
//
//	@Summary		Delete a photo
//	@Description	Remove the storage object (best effort) and the metadata row. Owner-only photos require staff role or team lead account type.
//	@Tags			photos
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Photo ID"
//	@Success		200	{object}	deleteBody
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/photos/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	// Path param preferred; the legacy ?id= query form is still accepted.
	id := chi.URLParam(r, "id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		response.BadRequest(w, "id is required")
		return
	}

	err := h.svc.Delete(r.Context(), caller, id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(w, "photo not found")
		return
	}
	if errors.Is(err, ErrForbidden) {
		response.Forbidden(w, "not allowed to delete this photo")
		return
	}
	if err != nil {
		response.Internal(w, "delete photo", err)
		return
	}

	response.OK(w, deleteBody{Success: true})
}
