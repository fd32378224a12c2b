package services

import (
	"log"
	"sync"

	"gridquest/server/models"
	"gridquest/server/persistence"
)

// View is the presentation collaborator. The engine never renders; it hands
// read-only position snapshots to whatever implements this.
type View interface {
	// InitializeView is called once, after the world is built and before
	// any turn runs.
	InitializeView(playerPos models.Point, entities []models.EntityPos)
	// UpdateWorldMap is called after every processed movement command.
	UpdateWorldMap(playerPos models.Point, remaining int, entities []models.EntityPos)
	// GameOver is called when a terminal condition is reached.
	GameOver()
}

// GameResult is the terminal state of a game, or GameActive while running.
type GameResult string

const (
	GameActive GameResult = "active"
	GameWon    GameResult = "won"
	GameLost   GameResult = "lost"
)

// GameService runs one game: it owns the world map, applies the gameplay
// rules layered on top of the movement engine (contact damage, win on last
// collectable), keeps the view current and checkpoints progress to storage.
type GameService struct {
	mu     sync.Mutex
	id     string
	world  *WorldMap
	view   View
	store  persistence.Storage
	result GameResult
}

// NewGameService wraps a world map. store may be nil when progress should
// not be persisted.
func NewGameService(id string, world *WorldMap, store persistence.Storage) *GameService {
	return &GameService{
		id:     id,
		world:  world,
		store:  store,
		result: GameActive,
	}
}

// ID returns the game's identifier.
func (g *GameService) ID() string {
	return g.id
}

// AttachView registers the presentation collaborator and sends it the
// initial world state.
func (g *GameService) AttachView(v View) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.view = v
	v.InitializeView(g.world.PlayerPos(), g.world.EntitiesPos())
}

// HandleMove processes one movement command: the engine advances a full
// turn, then the rules apply. Returns the engine outcome and the game
// result after this turn.
func (g *GameService) HandleMove(dir models.Direction) (MoveOutcome, GameResult) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.result != GameActive {
		return MoveOutcome{}, g.result
	}

	out := g.world.MovePlayer(dir)

	player := g.world.Player()
	if out.EnemyContacts > 0 {
		player.SetHealth(player.Health() - out.EnemyContacts)
		if player.Health() <= 0 {
			g.result = GameLost
		}
	}
	if g.result == GameActive && out.Collected && g.world.CollectablesRemaining() == 0 {
		g.result = GameWon
	}

	g.checkpoint()

	if g.view != nil {
		g.view.UpdateWorldMap(g.world.PlayerPos(), g.world.CollectablesRemaining(), g.world.EntitiesPos())
		if g.result != GameActive {
			g.view.GameOver()
		}
	}
	return out, g.result
}

// Result returns the current terminal state.
func (g *GameService) Result() GameResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result
}

// World exposes the underlying world map for read access (board snapshots,
// player state). Callers must not mutate through it.
func (g *GameService) World() *WorldMap {
	return g.world
}

// checkpoint saves the game after a turn, or deletes the save once the
// game has ended. Storage failures are logged, never fatal to the turn.
func (g *GameService) checkpoint() {
	if g.store == nil {
		return
	}
	if g.result != GameActive {
		if err := g.store.DeleteGame(g.id); err != nil {
			log.Printf("game %s: delete save: %v", g.id, err)
		}
		return
	}
	if err := g.store.SaveGame(g.world.Snapshot(g.id)); err != nil {
		log.Printf("game %s: save: %v", g.id, err)
	}
}
