package pegsolitaire

// Reward shaping constants
const (
	WinBonus    float64 = 100.0  // Added to the reward of a winning move
	LossPenalty float64 = -100.0 // Added when no moves remain and the game is lost
)

// Game wraps a Board with the terminal conditions and reward of Peg
// Solitaire.
type Game struct {
	shape Shape
	size  int
	empty []Coord

	board *Board
}

// NewGame returns a new Game on a freshly constructed Board. See NewBoard
// for the meaning of the arguments and the errors returned.
func NewGame(shape Shape, size int, empty []Coord) (*Game, error) {
	board, err := NewBoard(shape, size, empty)
	if err != nil {
		return nil, err
	}

	e := make([]Coord, len(empty))
	copy(e, empty)

	return &Game{
		shape: shape,
		size:  size,
		empty: e,
		board: board,
	}, nil
}

// NewGameFromBoard returns a new Game which starts from the occupancy of
// b. The Game takes ownership of b; Reset restores b's empty cells on a
// fresh board.
func NewGameFromBoard(b *Board) *Game {
	var empty []Coord
	for _, s := range b.spaces {
		if !s.Occupied {
			empty = append(empty, s.Coord)
		}
	}

	return &Game{
		shape: b.shape,
		size:  b.size,
		empty: empty,
		board: b,
	}
}

// Reset replaces the board with a new one in the starting configuration
// and returns the starting state, its legal moves, and whether the game
// is already over.
func (g *Game) Reset() (state string, legalMoves []Move, done bool) {
	// Construction parameters were validated by NewGame
	board, err := NewBoard(g.shape, g.size, g.empty)
	if err != nil {
		panic("reset: could not rebuild validated board: " + err.Error())
	}
	g.board = board

	return g.board.Serialize(), g.board.AllLegalMoves(), g.IsTerminal()
}

// Step applies m and returns the new state, the reward for the
// transition, whether the game is over, and the legal moves in the new
// state. If m is illegal an *IllegalMoveError is returned and the game
// is unchanged.
func (g *Game) Step(m Move) (state string, reward float64, done bool,
	legalMoves []Move, err error) {
	state, err = g.board.ApplyMove(m)
	if err != nil {
		return "", 0, false, nil, err
	}

	legalMoves = g.board.AllLegalMoves()
	win := g.IsWin()
	done = win || len(legalMoves) == 0

	return state, g.reward(win, done), done, legalMoves, nil
}

// reward computes the ratio of empty to occupied cells, plus the win
// bonus or loss penalty on terminal states
func (g *Game) reward(win, done bool) float64 {
	occupied := g.board.Occupied()
	if occupied == 0 {
		// Unreachable through legal play, a jump never removes the last peg
		return LossPenalty
	}

	r := float64(g.board.Len()-occupied) / float64(occupied)
	if win {
		r += WinBonus
	} else if done {
		r += LossPenalty
	}
	return r
}

// Reward returns the reward of arriving in the current state
func (g *Game) Reward() float64 {
	win := g.IsWin()
	return g.reward(win, win || !g.board.HasLegalMove())
}

// IsWin returns whether exactly one peg remains
func (g *Game) IsWin() bool {
	return g.board.Occupied() == 1
}

// IsTerminal returns whether the game is won or no legal moves remain
func (g *Game) IsTerminal() bool {
	return g.IsWin() || !g.board.HasLegalMove()
}

// RemainingPegs returns the number of pegs left on the board
func (g *Game) RemainingPegs() int {
	return g.board.Occupied()
}

// LegalMoves returns the legal moves in the current state
func (g *Game) LegalMoves() []Move {
	return g.board.AllLegalMoves()
}

// State returns the serialized current state
func (g *Game) State() string {
	return g.board.Serialize()
}

// Board returns the board of the current episode
func (g *Game) Board() *Board {
	return g.board
}
