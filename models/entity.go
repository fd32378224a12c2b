package models

// EntityKind tags the concrete variant stored in a board slot.
type EntityKind string

const (
	KindPlayer      EntityKind = "player"
	KindEnemy       EntityKind = "enemy"
	KindCollectable EntityKind = "collectable"
)

// Entity is anything that occupies a board slot. Entities live only inside
// the board: moving one means clearing its old slot and filling the new one.
type Entity interface {
	ID() string
	Kind() EntityKind
	Position() Point
	SetPosition(Point)
}

// Damageable is implemented by entities that track health.
type Damageable interface {
	Health() int
	SetHealth(int)
}

// EnemyAI decides where an enemy wants to step next. Implementations are
// pure functions of the arguments; no state is carried between turns.
type EnemyAI interface {
	NextMove(board Board, playerPos, self Point) Point
}

// Player is the single player-controlled entity.
type Player struct {
	id     string
	pos    Point
	health int
}

func NewPlayer(id string, pos Point, health int) *Player {
	return &Player{id: id, pos: pos, health: health}
}

func (p *Player) ID() string          { return p.id }
func (p *Player) Kind() EntityKind    { return KindPlayer }
func (p *Player) Position() Point     { return p.pos }
func (p *Player) SetPosition(n Point) { p.pos = n }
func (p *Player) Health() int         { return p.health }
func (p *Player) SetHealth(h int)     { p.health = h }

// Enemy is a hostile entity driven by an EnemyAI strategy.
type Enemy struct {
	id     string
	pos    Point
	health int
	brain  EnemyAI
}

func NewEnemy(id string, pos Point, health int, brain EnemyAI) *Enemy {
	return &Enemy{id: id, pos: pos, health: health, brain: brain}
}

func (e *Enemy) ID() string          { return e.id }
func (e *Enemy) Kind() EntityKind    { return KindEnemy }
func (e *Enemy) Position() Point     { return e.pos }
func (e *Enemy) SetPosition(n Point) { e.pos = n }
func (e *Enemy) Health() int         { return e.health }
func (e *Enemy) SetHealth(h int)     { e.health = h }
func (e *Enemy) AI() EnemyAI         { return e.brain }

// Collectable is a static pickup. It has no health and never moves.
type Collectable struct {
	id  string
	pos Point
}

func NewCollectable(id string, pos Point) *Collectable {
	return &Collectable{id: id, pos: pos}
}

func (c *Collectable) ID() string          { return c.id }
func (c *Collectable) Kind() EntityKind    { return KindCollectable }
func (c *Collectable) Position() Point     { return c.pos }
func (c *Collectable) SetPosition(n Point) { c.pos = n }

// EntityPos pairs an occupied coordinate with the occupant's kind, the
// shape handed to views and the wire layer.
type EntityPos struct {
	Pos  Point      `json:"pos"`
	Kind EntityKind `json:"kind"`
}
