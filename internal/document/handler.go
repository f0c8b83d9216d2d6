package document

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clientdesk/portal/internal/middleware"
	"github.com/clientdesk/portal/internal/response"
	"github.com/clientdesk/portal/internal/storage"
)

// downloadTTL is how long an issued download URL stays valid.
const downloadTTL = 15 * time.Minute

// Handler holds HTTP handlers for document endpoints.
type Handler struct {
	repo  *Repository
	store storage.Storage
}

// NewHandler creates a new document Handler.
func NewHandler(repo *Repository, store storage.Storage) *Handler {
	return &Handler{repo: repo, store: store}
}

type documentListBody struct {
	Documents []Document `json:"documents"`
}

type documentBody struct {
	Document *Document `json:"document"`
}

type downloadBody struct {
	DownloadURL string `json:"downloadUrl"`
}

// List godoc
//
//	@Summary		List documents
//	@Description	Return the caller's documents, newest first.
//	@Tags			documents
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	documentListBody
//	@Failure		401	{object}	map[string]string
//	@Router			/documents [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	docs, err := h.repo.List(r.Context(), caller)
	if err != nil {
		response.Internal(w, "list documents", err)
		return
	}

	response.OK(w, documentListBody{Documents: docs})
}

// Get godoc
//
//	@Summary		Get a document
//	@Description	Return one document by id within the caller's scope.
//	@Tags			documents
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{object}	documentBody
//	@Failure		401	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/documents/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	d, err := h.repo.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFound(w, "document not found")
		return
	}
	if err != nil {
		response.Internal(w, "get document", err)
		return
	}

	response.OK(w, documentBody{Document: d})
}

// Download godoc
//
//	@Summary		Get a document download URL
//	@Description	Issue a presigned GET URL valid for 15 minutes.
//	@Tags			documents
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Document ID"
//	@Success		200	{object}	downloadBody
//	@Failure		401	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/documents/{id}/download [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	d, err := h.repo.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFound(w, "document not found")
		return
	}
	if err != nil {
		response.Internal(w, "get document", err)
		return
	}

	url, err := h.store.PresignedGetURL(r.Context(), d.FileKey, downloadTTL)
	if err != nil {
		response.Internal(w, "presign document download", err)
		return
	}

	response.OK(w, downloadBody{DownloadURL: url})
}
