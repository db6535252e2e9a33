package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"feudlive/internal/cache"
	"feudlive/internal/model"
	"feudlive/internal/service"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	gameSvc    *service.GameService
	scoreCache cache.ScoreCache
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameSvc *service.GameService, scoreCache cache.ScoreCache) *GameHandler {
	return &GameHandler{
		gameSvc:    gameSvc,
		scoreCache: scoreCache,
	}
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Topic string `json:"topic,omitempty"`
}

// Create handles POST /v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	game, err := h.gameSvc.CreateGame(r.Context(), req.Topic)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

// JoinRequest is the request body for joining a game
type JoinRequest struct {
	Name string     `json:"name"`
	Team model.Team `json:"team"`
}

// Join handles POST /v1/games/{code}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Team != model.TeamRed && req.Team != model.TeamBlue {
		writeError(w, http.StatusBadRequest, "team must be RED or BLUE")
		return
	}

	player, err := h.gameSvc.JoinGame(r.Context(), code, req.Name, req.Team)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, player)
}

// Players handles GET /v1/games/{code}/players
func (h *GameHandler) Players(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	players, err := h.gameSvc.GetPlayersInGame(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, players)
}

// State handles GET /v1/games/{code}/state
func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	game, err := h.gameSvc.GetGameByCode(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// Start handles POST /v1/games/{code}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	game, err := h.gameSvc.StartGame(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// End handles POST /v1/games/{code}/end
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if err := h.gameSvc.EndGame(r.Context(), code); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Finish handles POST /v1/games/{code}/finish
func (h *GameHandler) Finish(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	game, err := h.gameSvc.EndGameAndSetWinner(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// StartFaceoffRequest is the request body for starting a faceoff
type StartFaceoffRequest struct {
	RedPlayerID  string `json:"redPlayerId"`
	BluePlayerID string `json:"bluePlayerId"`
}

// StartFaceoff handles POST /v1/games/{code}/faceoff/start
func (h *GameHandler) StartFaceoff(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req StartFaceoffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := h.gameSvc.StartFaceoff(r.Context(), code, req.RedPlayerID, req.BluePlayerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// FaceoffAnswerRequest is the request body for a faceoff submission
type FaceoffAnswerRequest struct {
	Team   model.Team `json:"team"`
	Answer string     `json:"answer"`
}

// SubmitFaceoffAnswer handles POST /v1/games/{code}/faceoff/answer
func (h *GameHandler) SubmitFaceoffAnswer(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req FaceoffAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Team != model.TeamRed && req.Team != model.TeamBlue {
		writeError(w, http.StatusBadRequest, "team must be RED or BLUE")
		return
	}

	game, err := h.gameSvc.SubmitFaceoffAnswer(r.Context(), code, req.Team, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// ResolveFaceoff handles POST /v1/games/{code}/faceoff/resolve
func (h *GameHandler) ResolveFaceoff(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var answers []model.Answer
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	winner, err := h.gameSvc.ResolveFaceoffAndSetTurn(r.Context(), code, answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*model.Team{"winner": winner})
}

// GuessRequest is the request body for a guess or steal attempt
type GuessRequest struct {
	Guess   string         `json:"guess"`
	Answers []model.Answer `json:"answers"`
}

// SubmitGuess handles POST /v1/games/{code}/guess
func (h *GameHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	correct, err := h.gameSvc.SubmitGuess(r.Context(), code, req.Guess, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"correct": correct})
}

// AttemptSteal handles POST /v1/games/{code}/steal
func (h *GameHandler) AttemptSteal(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	correct, err := h.gameSvc.AttemptSteal(r.Context(), code, req.Guess, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"correct": correct})
}

// SwitchTurn handles POST /v1/games/{code}/turn/switch
func (h *GameHandler) SwitchTurn(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	game, err := h.gameSvc.SwitchTurn(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// AdvanceRound handles POST /v1/games/{code}/round/advance
func (h *GameHandler) AdvanceRound(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	game, err := h.gameSvc.AdvanceToNextRound(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// RevealAnswer handles POST /v1/games/{code}/answers/{answerId}/reveal
func (h *GameHandler) RevealAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	game, err := h.gameSvc.RevealAnswer(r.Context(), vars["code"], vars["answerId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// AddStrike handles POST /v1/games/{code}/strike
func (h *GameHandler) AddStrike(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	game, err := h.gameSvc.AddStrike(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// AddScoreRequest is the request body for an operator score adjustment
type AddScoreRequest struct {
	Team       model.Team `json:"team"`
	Points     int        `json:"points"`
	Multiplier int        `json:"multiplier"`
}

// AddScore handles POST /v1/games/{code}/score
func (h *GameHandler) AddScore(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req AddScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Team != model.TeamRed && req.Team != model.TeamBlue {
		writeError(w, http.StatusBadRequest, "team must be RED or BLUE")
		return
	}
	if req.Multiplier == 0 {
		req.Multiplier = 1
	}

	game, err := h.gameSvc.AddScore(r.Context(), code, req.Team, req.Points, req.Multiplier)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

// Scores handles GET /v1/games/{code}/scores
func (h *GameHandler) Scores(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	scores, err := h.scoreCache.GetScores(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"scores": scores})
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps service error kinds to status codes: lookup misses
// to 404, lobby name conflicts to 409, illegal state transitions to 409.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrAnswerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNameTaken),
		errors.Is(err, service.ErrGameNotInProgress),
		errors.Is(err, service.ErrNoFaceoffInProgress),
		errors.Is(err, service.ErrStealNotAllowed),
		errors.Is(err, service.ErrAnswerAlreadyRevealed):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
