package service

import (
	"context"
	cryptorand "crypto/rand"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"feudlive/internal/cache"
	"feudlive/internal/model"
	"feudlive/internal/repository"
)

const maxStrikes = 3

// GameService owns all game mutations: lobby lifecycle, faceoffs, guesses,
// strikes, steals, turn ownership, round progression and scoring. Every
// operation on one code is serialized behind a per-code lock; operations on
// different codes run independently.
type GameService struct {
	gameRepo     repository.GameRepo
	playerRepo   repository.PlayerRepo
	questionRepo repository.QuestionRepo
	checker      *AnswerChecker
	gameCache    cache.GameCache
	scoreCache   cache.ScoreCache
	broadcaster  Broadcaster
	maxRounds    int
	rng          *rand.Rand

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGameService creates a new game service. rng drives the team coin flip
// and question draws; pass a seeded source in tests for determinism, or nil
// for a time-seeded default.
func NewGameService(
	gameRepo repository.GameRepo,
	playerRepo repository.PlayerRepo,
	questionRepo repository.QuestionRepo,
	checker *AnswerChecker,
	gameCache cache.GameCache,
	scoreCache cache.ScoreCache,
	maxRounds int,
	rng *rand.Rand,
) *GameService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if maxRounds <= 0 {
		maxRounds = 3
	}
	return &GameService{
		gameRepo:     gameRepo,
		playerRepo:   playerRepo,
		questionRepo: questionRepo,
		checker:      checker,
		gameCache:    gameCache,
		scoreCache:   scoreCache,
		maxRounds:    maxRounds,
		rng:          rng,
		locks:        make(map[string]*sync.Mutex),
	}
}

// SetBroadcaster injects the snapshot publisher (the ws hub implements it)
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// lock acquires the per-code mutex and returns its unlock func.
func (s *GameService) lock(code string) func() {
	s.mu.Lock()
	m, ok := s.locks[code]
	if !ok {
		m = &sync.Mutex{}
		s.locks[code] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *GameService) dropLock(code string) {
	s.mu.Lock()
	delete(s.locks, code)
	s.mu.Unlock()
}

// loadGame reads the snapshot cache first and falls back to MongoDB.
func (s *GameService) loadGame(ctx context.Context, code string) (*model.Game, error) {
	if s.gameCache != nil {
		if game, err := s.gameCache.GetState(ctx, code); err == nil && game != nil {
			return game, nil
		}
	}

	game, err := s.gameRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// save persists the game and refreshes the snapshot cache. Cache write
// failures don't fail the mutation.
func (s *GameService) save(ctx context.Context, game *model.Game) error {
	if err := s.gameRepo.Save(ctx, game); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	if s.gameCache != nil {
		if err := s.gameCache.SetState(ctx, game); err != nil {
			log.Printf("Failed to cache game %s: %v", game.Code, err)
		}
	}
	return nil
}

// syncScores mirrors the team scores into the Redis scoreboard, best-effort.
func (s *GameService) syncScores(ctx context.Context, game *model.Game) {
	if s.scoreCache == nil {
		return
	}
	if err := s.scoreCache.SetScore(ctx, game.Code, model.TeamRed, game.RedScore); err != nil {
		log.Printf("Failed to sync scores for game %s: %v", game.Code, err)
		return
	}
	if err := s.scoreCache.SetScore(ctx, game.Code, model.TeamBlue, game.BlueScore); err != nil {
		log.Printf("Failed to sync scores for game %s: %v", game.Code, err)
	}
}

// publish hands the snapshot to the broadcaster, fire-and-forget.
func (s *GameService) publish(game *model.Game) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastGameState(game.Code, game)
	}
}

// CreateGame creates a LOBBY game under a fresh unique code.
func (s *GameService) CreateGame(ctx context.Context, topic string) (*model.Game, error) {
	code, err := s.generateGameCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate game code: %w", err)
	}

	game := &model.Game{
		Code:              code,
		Topic:             topic,
		Status:            model.GameLobby,
		MaxRounds:         s.maxRounds,
		RevealedAnswerIDs: []string{},
		CreatedAt:         time.Now(),
	}

	if err := s.save(ctx, game); err != nil {
		return nil, err
	}
	s.publish(game)
	return game, nil
}

// JoinGame attaches a new player to the lobby. Names are unique per game,
// compared case-sensitively.
func (s *GameService) JoinGame(ctx context.Context, code, name string, team model.Team) (*model.Player, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return nil, err
	}

	existing, err := s.playerRepo.FindByNameAndGameCode(ctx, name, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check player name: %w", err)
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	player := &model.Player{
		ID:       uuid.NewString(),
		GameCode: code,
		Name:     name,
		Team:     team,
		JoinedAt: time.Now(),
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.publish(game)
	return player, nil
}

// GetPlayersInGame lists the roster for a game code.
func (s *GameService) GetPlayersInGame(ctx context.Context, code string) ([]*model.Player, error) {
	if _, err := s.loadGame(ctx, code); err != nil {
		return nil, err
	}
	return s.playerRepo.FindByGameCode(ctx, code)
}

// GetGameByCode returns the current game state.
func (s *GameService) GetGameByCode(ctx context.Context, code string) (*model.Game, error) {
	return s.loadGame(ctx, code)
}

// StartGame transitions LOBBY -> IN_PROGRESS: round 1, fresh strikes and
// scores, a random starting team and a random question from the bank.
func (s *GameService) StartGame(ctx context.Context, code string) (*model.Game, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return nil, err
	}

	game.Status = model.GameInProgress
	game.RoundNumber = 1
	game.Strikes = 0
	game.RedScore = 0
	game.BlueScore = 0

	team := model.TeamBlue
	if s.rng.Intn(2) == 0 {
		team = model.TeamRed
	}
	game.CurrentTeam = &team

	question, err := s.drawQuestion(ctx)
	if err != nil {
		return nil, err
	}
	game.CurrentQuestion = question
	if question != nil {
		log.Printf("Selected question for game %s: %s", code, question.Text)
	}

	if err := s.save(ctx, game); err != nil {
		return nil, err
	}
	s.syncScores(ctx, game)
	s.publish(game)
	return game, nil
}

// EndGame deletes the game and all of its players unconditionally. This is
// the abandon/cleanup path, not the score-based ending.
func (s *GameService) EndGame(ctx context.Context, code string) error {
	unlock := s.lock(code)
	defer unlock()

	if _, err := s.loadGame(ctx, code); err != nil {
		return err
	}

	if err := s.playerRepo.DeleteByGameCode(ctx, code); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	if err := s.gameRepo.Delete(ctx, code); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if s.gameCache != nil {
		if err := s.gameCache.Delete(ctx, code); err != nil {
			log.Printf("Failed to evict game %s from cache: %v", code, err)
		}
	}
	if s.scoreCache != nil {
		if err := s.scoreCache.Delete(ctx, code); err != nil {
			log.Printf("Failed to evict scores for game %s: %v", code, err)
		}
	}

	s.dropLock(code)
	return nil
}

// EndGameAndSetWinner ends the game immediately and decides the winner by
// strict score comparison, without deleting anything.
func (s *GameService) EndGameAndSetWinner(ctx context.Context, code string) (*model.Game, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return nil, err
	}

	s.finishGame(game)

	if err := s.save(ctx, game); err != nil {
		return nil, err
	}
	s.publish(game)
	return game, nil
}

// --- Faceoff ---

// StartFaceoff records the two candidates and opens the faceoff. Callable
// any time before resolution.
func (s *GameService) StartFaceoff(ctx context.Context, code, redPlayerID, bluePlayerID string) (*model.Game, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return nil, err
	}

	game.RedFaceoffPlayerID = redPlayerID
	game.BlueFaceoffPlayerID = bluePlayerID
	game.RedFaceoffAnswer = ""
	game.BlueFaceoffAnswer = ""
	game.FaceoffInProgress = true

	if err := s.save(ctx, game); err != nil {
		return nil, err
	}
	s.publish(game)
	return game, nil
}

// SubmitFaceoffAnswer records (or overwrites) one team's faceoff answer.
func (s *GameService) SubmitFaceoffAnswer(ctx context.Context, code string, team model.Team, answer string) (*model.Game, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return nil, err
	}
	if !game.FaceoffInProgress {
		return nil, ErrNoFaceoffInProgress
	}

	switch team {
	case model.TeamRed:
		game.RedFaceoffAnswer = answer
	case model.TeamBlue:
		game.BlueFaceoffAnswer = answer
	}

	if err := s.save(ctx, game); err != nil {
		return nil, err
	}
	s.publish(game)
	return game, nil
}

// ResolveFaceoffAndSetTurn scores both submissions against the supplied
// answers by strict case-insensitive text match (no synonym matching here),
// hands control to the strictly higher scorer and resets the faceoff state.
// Returns nil winner on a tie; with no faceoff in progress it returns nil
// and mutates nothing.
func (s *GameService) ResolveFaceoffAndSetTurn(ctx context.Context, code string, answers []model.Answer) (*model.Team, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return nil, err
	}
	if !game.FaceoffInProgress {
		return nil, nil
	}

	redPoints := faceoffAnswerPoints(game.RedFaceoffAnswer, answers)
	bluePoints := faceoffAnswerPoints(game.BlueFaceoffAnswer, answers)

	var winner *model.Team
	if redPoints > bluePoints {
		team := model.TeamRed
		winner = &team
	} else if bluePoints > redPoints {
		team := model.TeamBlue
		winner = &team
	}

	game.CurrentTeam = winner
	game.ClearFaceoff()

	if err := s.save(ctx, game); err != nil {
		return nil, err
	}
	s.publish(game)
	return winner, nil
}

// faceoffAnswerPoints returns the best point value among answers whose text
// equals the submission case-insensitively, or -1 for a blank or
// non-matching submission (which loses to any real answer).
func faceoffAnswerPoints(submission string, answers []model.Answer) int {
	if Normalize(submission) == "" {
		return -1
	}
	best := -1
	for _, a := range answers {
		if a.Text != "" && Normalize(a.Text) == Normalize(submission) && a.Points > best {
			best = a.Points
		}
	}
	return best
}

// --- Guessing, strikes and steals ---

// SubmitGuess evaluates a controlling-team guess against every unrevealed
// answer in the supplied set. One guess may reveal several answers when
// their texts are mutually synonymous with it. A hit resets strikes and
// credits the controlling team; a miss adds a strike. When the whole board
// is revealed the round advances automatically.
func (s *GameService) SubmitGuess(ctx context.Context, code, guess string, answers []model.Answer) (bool, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return false, err
	}
	if game.Status != model.GameInProgress {
		return false, ErrGameNotInProgress
	}

	correct, points := s.revealMatches(ctx, game, guess, answers)
	if correct {
		game.Strikes = 0
		if game.CurrentTeam != nil {
			game.AddPoints(*game.CurrentTeam, points)
		}
	} else if game.Strikes < maxStrikes {
		game.Strikes++
	}

	if allRevealed(game, answers) {
		if err := s.advanceRound(ctx, game); err != nil {
			return false, err
		}
	}

	if err := s.save(ctx, game); err != nil {
		return false, err
	}
	s.syncScores(ctx, game)
	s.publish(game)
	return correct, nil
}

// AttemptSteal is the opposing team's single shot after three strikes. The
// guess is evaluated exactly like SubmitGuess, but win or lose, the points
// of every revealed answer go to the stealing team, strikes reset and
// control switches.
func (s *GameService) AttemptSteal(ctx context.Context, code, guess string, answers []model.Answer) (bool, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return false, err
	}
	if game.Status != model.GameInProgress {
		return false, ErrGameNotInProgress
	}
	if game.Strikes < maxStrikes {
		return false, ErrStealNotAllowed
	}

	correct, _ := s.revealMatches(ctx, game, guess, answers)

	stealingTeam := model.TeamRed
	if game.CurrentTeam != nil {
		stealingTeam = model.Opponent(*game.CurrentTeam)
	}

	revealedPoints := 0
	for _, a := range answers {
		if game.IsRevealed(a.ID) {
			revealedPoints += a.Points
		}
	}
	game.AddPoints(stealingTeam, revealedPoints)

	game.Strikes = 0
	game.CurrentTeam = &stealingTeam

	if err := s.save(ctx, game); err != nil {
		return false, err
	}
	s.syncScores(ctx, game)
	s.publish(game)
	return correct, nil
}

// revealMatches reveals every unrevealed answer the guess matches and
// returns whether anything matched plus the matched point total.
func (s *GameService) revealMatches(ctx context.Context, game *model.Game, guess string, answers []model.Answer) (bool, int) {
	correct := false
	points := 0
	for _, a := range answers {
		if !game.IsRevealed(a.ID) && s.checker.Matches(ctx, a.Text, guess) {
			correct = true
			game.Reveal(a.ID)
			points += a.Points
		}
	}
	return correct, points
}

func allRevealed(game *model.Game, answers []model.Answer) bool {
	if len(answers) == 0 {
		return false
	}
	for _, a := range answers {
		if !game.IsRevealed(a.ID) {
			return false
		}
	}
	return true
}

// SwitchTurn flips the controlling team and resets strikes. RED is the
// deterministic choice when no team holds control.
func (s *GameService) SwitchTurn(ctx context.Context, code string) (*model.Game, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return nil, err
	}

	switchControl(game)

	if err := s.save(ctx, game); err != nil {
		return nil, err
	}
	s.publish(game)
	return game, nil
}

func switchControl(game *model.Game) {
	team := model.TeamRed
	if game.CurrentTeam != nil && *game.CurrentTeam == model.TeamRed {
		team = model.TeamBlue
	}
	game.CurrentTeam = &team
	game.Strikes = 0
}

// --- Round progression ---

// AdvanceToNextRound moves the game to the next round, or to ENDED with a
// decided winner once the final round is done.
func (s *GameService) AdvanceToNextRound(ctx context.Context, code string) (*model.Game, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.advanceRound(ctx, game); err != nil {
		return nil, err
	}

	if err := s.save(ctx, game); err != nil {
		return nil, err
	}
	s.publish(game)
	return game, nil
}

// advanceRound mutates the game in place: past the final round it ends the
// game; otherwise next round, fresh strikes, alternated control, a newly
// drawn question and a cleared board.
func (s *GameService) advanceRound(ctx context.Context, game *model.Game) error {
	if game.RoundNumber >= game.MaxRounds {
		s.finishGame(game)
		return nil
	}

	game.RoundNumber++
	game.Strikes = 0
	switchControl(game)

	question, err := s.drawQuestion(ctx)
	if err != nil {
		return err
	}
	game.CurrentQuestion = question
	game.RevealedAnswerIDs = []string{}
	return nil
}

// finishGame sets ENDED and the winner; equal scores mean no winner.
func (s *GameService) finishGame(game *model.Game) {
	game.Status = model.GameEnded
	if game.RedScore > game.BlueScore {
		team := model.TeamRed
		game.Winner = &team
	} else if game.BlueScore > game.RedScore {
		team := model.TeamBlue
		game.Winner = &team
	} else {
		game.Winner = nil // Tie
	}
}

// drawQuestion picks one question uniformly at random, or nil when the bank
// is empty.
func (s *GameService) drawQuestion(ctx context.Context) (*model.Question, error) {
	questions, err := s.questionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}
	if len(questions) == 0 {
		return nil, nil
	}
	return questions[s.rng.Intn(len(questions))], nil
}

// --- Operator helpers ---

// RevealAnswer flips a single answer on the current board by id.
func (s *GameService) RevealAnswer(ctx context.Context, code, answerID string) (*model.Game, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return nil, err
	}
	if game.Status != model.GameInProgress {
		return nil, ErrGameNotInProgress
	}
	if game.CurrentQuestion != nil && !answerBelongs(game.CurrentQuestion, answerID) {
		return nil, ErrAnswerNotFound
	}
	if game.IsRevealed(answerID) {
		return nil, ErrAnswerAlreadyRevealed
	}

	game.Reveal(answerID)

	if err := s.save(ctx, game); err != nil {
		return nil, err
	}
	s.publish(game)
	return game, nil
}

func answerBelongs(question *model.Question, answerID string) bool {
	for _, a := range question.Answers {
		if a.ID == answerID {
			return true
		}
	}
	return false
}

// AddStrike adds one operator-issued strike, capped at three.
func (s *GameService) AddStrike(ctx context.Context, code string) (*model.Game, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return nil, err
	}

	if game.Strikes < maxStrikes {
		game.Strikes++
	}

	if err := s.save(ctx, game); err != nil {
		return nil, err
	}
	s.publish(game)
	return game, nil
}

// AddScore credits points*multiplier to a team. Scores are monotonic, so a
// non-positive total is a no-op.
func (s *GameService) AddScore(ctx context.Context, code string, team model.Team, points, multiplier int) (*model.Game, error) {
	unlock := s.lock(code)
	defer unlock()

	game, err := s.loadGame(ctx, code)
	if err != nil {
		return nil, err
	}

	if total := points * multiplier; total > 0 {
		game.AddPoints(team, total)
	}

	if err := s.save(ctx, game); err != nil {
		return nil, err
	}
	s.syncScores(ctx, game)
	s.publish(game)
	return game, nil
}

// generateGameCode creates a 6-char alphanumeric code, retrying until it
// doesn't collide with a persisted game.
func (s *GameService) generateGameCode(ctx context.Context) (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLen = 6

	for attempts := 0; attempts < 10; attempts++ {
		b := make([]byte, codeLen)
		if _, err := cryptorand.Read(b); err != nil {
			return "", err
		}

		code := make([]byte, codeLen)
		for i := range code {
			code[i] = chars[int(b[i])%len(chars)]
		}
		codeStr := string(code)

		exists, err := s.gameRepo.ExistsByCode(ctx, codeStr)
		if err != nil {
			return "", err
		}
		if !exists {
			return codeStr, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique game code")
}
