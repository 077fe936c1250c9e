package handlers

import (
	"errors"
	"net/http"

	"github.com/Harshitk-cp/notely/internal/api/middleware"
	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/Harshitk-cp/notely/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NoteHandler struct {
	svc    *service.NoteService
	logger *zap.Logger
}

func NewNoteHandler(svc *service.NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{svc: svc, logger: logger}
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	notes, err := h.svc.List(r.Context(), p)
	if err != nil {
		h.logger.Error("list notes failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := h.svc.Create(r.Context(), p, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoteFieldsRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrQuotaExceeded):
			writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrTenantNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			h.logger.Error("create note failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to create note")
		}
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	note, err := h.svc.Get(r.Context(), p, id)
	if err != nil {
		h.writeNoteError(w, "get note", err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := h.svc.Update(r.Context(), p, id, domain.NotePatch{Title: req.Title, Content: req.Content})
	if err != nil {
		h.writeNoteError(w, "update note", err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, id, ok := h.scope(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), p, id); err != nil {
		h.writeNoteError(w, "delete note", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// scope returns the caller and the note id from the path. A malformed id is
// answered like a missing note.
func (h *NoteHandler) scope(w http.ResponseWriter, r *http.Request) (domain.Principal, uuid.UUID, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return domain.Principal{}, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrNoteNotFound.Error())
		return domain.Principal{}, uuid.Nil, false
	}
	return p, id, true
}

func (h *NoteHandler) writeNoteError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoteFieldEmpty):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}
