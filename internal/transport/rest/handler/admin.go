package handler

import (
	"net/http"

	"feudlive/internal/repository"
)

// AdminHandler exposes maintenance endpoints over the raw repositories
type AdminHandler struct {
	gameRepo     repository.GameRepo
	playerRepo   repository.PlayerRepo
	questionRepo repository.QuestionRepo
	synonymRepo  repository.SynonymRepo
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	gameRepo repository.GameRepo,
	playerRepo repository.PlayerRepo,
	questionRepo repository.QuestionRepo,
	synonymRepo repository.SynonymRepo,
) *AdminHandler {
	return &AdminHandler{
		gameRepo:     gameRepo,
		playerRepo:   playerRepo,
		questionRepo: questionRepo,
		synonymRepo:  synonymRepo,
	}
}

// ListGames handles GET /v1/admin/games
func (h *AdminHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// DeleteGames handles DELETE /v1/admin/games
func (h *AdminHandler) DeleteGames(w http.ResponseWriter, r *http.Request) {
	if err := h.gameRepo.DeleteAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPlayers handles GET /v1/admin/players
func (h *AdminHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// DeletePlayers handles DELETE /v1/admin/players
func (h *AdminHandler) DeletePlayers(w http.ResponseWriter, r *http.Request) {
	if err := h.playerRepo.DeleteAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListQuestions handles GET /v1/admin/questions
func (h *AdminHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// DeleteQuestions handles DELETE /v1/admin/questions
func (h *AdminHandler) DeleteQuestions(w http.ResponseWriter, r *http.Request) {
	if err := h.questionRepo.DeleteAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSynonyms handles GET /v1/admin/synonyms
func (h *AdminHandler) ListSynonyms(w http.ResponseWriter, r *http.Request) {
	entries, err := h.synonymRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// DeleteSynonyms handles DELETE /v1/admin/synonyms
func (h *AdminHandler) DeleteSynonyms(w http.ResponseWriter, r *http.Request) {
	if err := h.synonymRepo.DeleteAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
