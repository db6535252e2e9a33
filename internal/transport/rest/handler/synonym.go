package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"feudlive/internal/model"
	"feudlive/internal/repository"
	"feudlive/internal/service"
)

// SynonymHandler handles synonym dictionary endpoints
type SynonymHandler struct {
	synonymRepo repository.SynonymRepo
	syncSvc     *service.SynonymSyncService
}

// NewSynonymHandler creates a new synonym handler
func NewSynonymHandler(synonymRepo repository.SynonymRepo, syncSvc *service.SynonymSyncService) *SynonymHandler {
	return &SynonymHandler{
		synonymRepo: synonymRepo,
		syncSvc:     syncSvc,
	}
}

// Upsert handles POST /v1/synonyms
func (h *SynonymHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var entry model.SynonymEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry.Canonical = service.Normalize(entry.Canonical)
	if entry.Canonical == "" {
		writeError(w, http.StatusBadRequest, "canonical word is required")
		return
	}

	if err := h.synonymRepo.Upsert(r.Context(), &entry); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// List handles GET /v1/synonyms
func (h *SynonymHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.synonymRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Get handles GET /v1/synonyms/{canonical}
func (h *SynonymHandler) Get(w http.ResponseWriter, r *http.Request) {
	canonical := service.Normalize(mux.Vars(r)["canonical"])

	entry, err := h.synonymRepo.FindByCanonical(r.Context(), canonical)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "synonym entry not found")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /v1/synonyms/{canonical}
func (h *SynonymHandler) Delete(w http.ResponseWriter, r *http.Request) {
	canonical := service.Normalize(mux.Vars(r)["canonical"])

	entry, err := h.synonymRepo.FindByCanonical(r.Context(), canonical)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "synonym entry not found")
		return
	}

	if err := h.synonymRepo.Delete(r.Context(), canonical); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Sync handles POST /v1/synonyms/sync
func (h *SynonymHandler) Sync(w http.ResponseWriter, r *http.Request) {
	synced, err := h.syncSvc.SyncAllAnswerSynonyms(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, synced)
}
