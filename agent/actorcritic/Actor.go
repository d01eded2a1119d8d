// Package actorcritic implements a tabular actor and two critics, one
// tabular and one using neural network function approximation, which
// learn to play Peg Solitaire with eligibility traces
package actorcritic

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/pegsolitaire/agent"
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	"golang.org/x/exp/rand"
)

// preferences stores the preference of each move known in a state.
// Moves are kept in the order they were first seen so that ties are
// broken deterministically.
type preferences struct {
	moves  []pegsolitaire.Move
	values map[pegsolitaire.Move]float64
}

func newPreferences() *preferences {
	return &preferences{values: make(map[pegsolitaire.Move]float64)}
}

// ensure adds m with a zero preference if it is unknown
func (p *preferences) ensure(m pegsolitaire.Move) {
	if _, ok := p.values[m]; !ok {
		p.moves = append(p.moves, m)
		p.values[m] = 0.0
	}
}

// Actor implements a tabular, ε-greedy policy over move preferences,
// which are updated from the TD errors of a Critic using eligibility
// traces over state-move pairs.
type Actor struct {
	policy map[string]*preferences
	states []string // States in the order they were first seen

	traces  *StateMoveTraces
	epsilon *EpsilonSchedule

	config   ActorConfig
	episodes int
	seed     uint64
	rng      *rand.Rand
}

// NewActor returns a new Actor whose exploration rate decays from
// config.Epsilon to config.GoalEpsilon over the given number of
// episodes
func NewActor(config ActorConfig, episodes int, seed uint64) (*Actor,
	error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newActor: %w", err)
	}

	epsilon, err := NewEpsilonSchedule(config.Epsilon, config.GoalEpsilon,
		episodes)
	if err != nil {
		return nil, fmt.Errorf("newActor: %w", err)
	}

	return &Actor{
		policy:   make(map[string]*preferences),
		traces:   NewStateMoveTraces(),
		epsilon:  epsilon,
		config:   config,
		episodes: episodes,
		seed:     seed,
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// SelectMove selects a move from the legal moves in state.
//
// In a state the Actor has never seen, a legal move is chosen uniformly
// at random. Otherwise, with probability ε a random move is chosen from
// the moves which have never been tried (zero preference), or from all
// known moves if every move has been tried. With probability 1 - ε the
// move with the highest non-zero preference is chosen, or the move with
// the highest preference if all preferences are zero. Ties go to the
// move seen first. The returned move is always one of legal.
//
// SelectMove panics if legal is empty.
func (a *Actor) SelectMove(state string,
	legal []pegsolitaire.Move) pegsolitaire.Move {
	if len(legal) == 0 {
		panic(fmt.Sprintf("selectMove: no legal moves in state %v", state))
	}

	prefs, ok := a.policy[state]
	if !ok || len(prefs.moves) == 0 {
		return a.uniform(legal)
	}

	var move pegsolitaire.Move
	if a.rng.Float64() < a.epsilon.Epsilon() {
		move = a.explore(prefs)
	} else {
		move = a.greedy(prefs)
	}

	// The policy entry may hold moves registered from a different set
	// of legal moves
	for _, m := range legal {
		if m == move {
			return move
		}
	}
	return a.uniform(legal)
}

// explore returns a random untried move if one exists, otherwise a
// random known move
func (a *Actor) explore(prefs *preferences) pegsolitaire.Move {
	untried := make([]pegsolitaire.Move, 0, len(prefs.moves))
	for _, m := range prefs.moves {
		if prefs.values[m] == 0.0 {
			untried = append(untried, m)
		}
	}

	if len(untried) > 0 {
		return a.uniform(untried)
	}
	return a.uniform(prefs.moves)
}

// greedy returns the move with the highest non-zero preference, or the
// first move with the highest preference if all are zero
func (a *Actor) greedy(prefs *preferences) pegsolitaire.Move {
	best, bestNonZero := -1, -1
	for i, m := range prefs.moves {
		v := prefs.values[m]
		if best < 0 || v > prefs.values[prefs.moves[best]] {
			best = i
		}
		if v != 0.0 && (bestNonZero < 0 ||
			v > prefs.values[prefs.moves[bestNonZero]]) {
			bestNonZero = i
		}
	}

	if bestNonZero >= 0 {
		return prefs.moves[bestNonZero]
	}
	return prefs.moves[best]
}

func (a *Actor) uniform(moves []pegsolitaire.Move) pegsolitaire.Move {
	return moves[a.rng.Intn(len(moves))]
}

// RegisterState ensures that every legal move in state has a
// preference, starting at zero
func (a *Actor) RegisterState(state string, legal []pegsolitaire.Move) {
	prefs := a.entry(state)
	for _, m := range legal {
		prefs.ensure(m)
	}
}

// entry returns the preferences of state, creating them if needed
func (a *Actor) entry(state string) *preferences {
	prefs, ok := a.policy[state]
	if !ok {
		prefs = newPreferences()
		a.policy[state] = prefs
		a.states = append(a.states, state)
	}
	return prefs
}

// SetInitialTrace sets the eligibility of (state, move) to 1 if it has
// not yet been visited this episode
func (a *Actor) SetInitialTrace(state string, move pegsolitaire.Move) {
	a.traces.Ensure(state, move)
	if a.traces.Get(state, move) == 0.0 {
		a.traces.Set(state, move, 1.0)
	}
}

// Update adjusts the preference of every state-move pair in history by
// the TD error, weighted by the pair's eligibility. The eligibility of
// pairs in the current state is then set to 1 and all others are
// decayed.
func (a *Actor) Update(history []agent.StateMove, tdError float64,
	current string) {
	decay := a.config.Gamma * a.config.TraceDecay

	for _, sm := range history {
		prefs := a.entry(sm.State)
		prefs.ensure(sm.Move)

		a.traces.Ensure(sm.State, sm.Move)
		trace := a.traces.Get(sm.State, sm.Move)
		prefs.values[sm.Move] += a.config.LearningRate * tdError * trace

		if sm.State == current {
			a.traces.Set(sm.State, sm.Move, 1.0)
		} else {
			a.traces.Decay(sm.State, sm.Move, decay)
		}
	}
}

// Preference returns the preference of move in state, which is 0 for
// unknown state-move pairs
func (a *Actor) Preference(state string, move pegsolitaire.Move) float64 {
	prefs, ok := a.policy[state]
	if !ok {
		return 0.0
	}
	return prefs.values[move]
}

// Moves returns the known moves of state in the order they were first
// seen
func (a *Actor) Moves(state string) []pegsolitaire.Move {
	prefs, ok := a.policy[state]
	if !ok {
		return nil
	}
	moves := make([]pegsolitaire.Move, len(prefs.moves))
	copy(moves, prefs.moves)
	return moves
}

// States returns the number of states in the policy
func (a *Actor) States() int {
	return len(a.policy)
}

// Trace returns the eligibility of (state, move)
func (a *Actor) Trace(state string, move pegsolitaire.Move) float64 {
	return a.traces.Get(state, move)
}

// DecayEpsilon decays the exploration rate once
func (a *Actor) DecayEpsilon() {
	a.epsilon.Decay()
}

// ResetEligibilities sets all eligibility traces to zero
func (a *Actor) ResetEligibilities() {
	a.traces.Reset()
}

// ResetEpsilon restores the initial exploration rate
func (a *Actor) ResetEpsilon() {
	a.epsilon.Reset()
}

// SetEpsilonZero turns off exploration until ResetEpsilon is called
func (a *Actor) SetEpsilonZero() {
	a.epsilon.Zero()
}

// Epsilon returns the current exploration rate
func (a *Actor) Epsilon() float64 {
	return a.epsilon.Epsilon()
}

// Config returns the hyperparameters of the Actor
func (a *Actor) Config() ActorConfig {
	return a.config
}

// Save saves the Actor to a file
func (a *Actor) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(a); err != nil {
		return fmt.Errorf("save: could not encode actor: %w", err)
	}
	return nil
}

// LoadActor loads an Actor saved with Save
func LoadActor(filename string) (*Actor, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadActor: could not open file: %w", err)
	}
	defer file.Close()

	var a Actor
	if err := gob.NewDecoder(file).Decode(&a); err != nil {
		return nil, fmt.Errorf("loadActor: could not decode actor: %w", err)
	}
	return &a, nil
}

// savedPreferences is the gob representation of a state's preferences
type savedPreferences struct {
	State  string
	Moves  []pegsolitaire.Move
	Values []float64
}

// GobEncode implements the gob.GobEncoder interface. Eligibility traces
// are not encoded.
func (a *Actor) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(a.config); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode config: %v", err)
	}

	if err := enc.Encode(a.episodes); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode episodes: %v",
			err)
	}

	if err := enc.Encode(a.seed); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode seed: %v", err)
	}

	if err := enc.Encode(a.epsilon.Epsilon()); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode epsilon: %v", err)
	}

	policy := make([]savedPreferences, 0, len(a.states))
	for _, state := range a.states {
		prefs := a.policy[state]
		values := make([]float64, len(prefs.moves))
		for i, m := range prefs.moves {
			values[i] = prefs.values[m]
		}
		policy = append(policy, savedPreferences{state, prefs.moves, values})
	}
	if err := enc.Encode(policy); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode policy: %v", err)
	}

	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (a *Actor) GobDecode(in []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(in))

	var config ActorConfig
	if err := dec.Decode(&config); err != nil {
		return fmt.Errorf("gobdecode: could not decode config: %v", err)
	}

	var episodes int
	if err := dec.Decode(&episodes); err != nil {
		return fmt.Errorf("gobdecode: could not decode episodes: %v", err)
	}

	var seed uint64
	if err := dec.Decode(&seed); err != nil {
		return fmt.Errorf("gobdecode: could not decode seed: %v", err)
	}

	var epsilon float64
	if err := dec.Decode(&epsilon); err != nil {
		return fmt.Errorf("gobdecode: could not decode epsilon: %v", err)
	}

	var policy []savedPreferences
	if err := dec.Decode(&policy); err != nil {
		return fmt.Errorf("gobdecode: could not decode policy: %v", err)
	}

	actor, err := NewActor(config, episodes, seed)
	if err != nil {
		return fmt.Errorf("gobdecode: %v", err)
	}
	actor.epsilon.current = epsilon

	for _, saved := range policy {
		if len(saved.Moves) != len(saved.Values) {
			return fmt.Errorf("gobdecode: state %v has %v moves but %v "+
				"preferences", saved.State, len(saved.Moves),
				len(saved.Values))
		}

		prefs := actor.entry(saved.State)
		for i, m := range saved.Moves {
			prefs.ensure(m)
			prefs.values[m] = saved.Values[i]
		}
	}

	*a = *actor
	return nil
}
