package engine

import (
	"encoding/json"
	"time"

	"github.com/mufahq/mufa-backend/internal/catalog"
)

type TournamentStatus string

const (
	TournamentNew    TournamentStatus = "nuevo"
	TournamentActive TournamentStatus = "activo"
	TournamentEnded  TournamentStatus = "finalizado"
)

type Tournament struct {
	TeamsPerPlayer int              `json:"teamsPerPlayer"`
	Status         TournamentStatus `json:"status"`
}

// Flags are the per-player effect switches the perk resolver sets and
// challenge issuance consumes. Counters count remaining rounds.
type Flags struct {
	RedrawChallenge  bool `json:"redrawChallenge,omitempty"`
	SwapPool         bool `json:"swapPool,omitempty"`
	ChooseDifficulty bool `json:"chooseDifficulty,omitempty"`
	DoubleEasy       bool `json:"doubleEasy,omitempty"`
	RedrawTeam       bool `json:"redrawTeam,omitempty"`
	TradeTeam        bool `json:"tradeTeam,omitempty"`
	ChooseOpponent   bool `json:"chooseOpponent,omitempty"`
	SkipNext         bool `json:"skipNext,omitempty"`
	DoubleNext       bool `json:"doubleNext,omitempty"`
	BlockHardRounds  int  `json:"blockHardRounds,omitempty"`
	FullDrawControl  bool `json:"fullDrawControl,omitempty"`
	ReorderDraw      bool `json:"reorderDraw,omitempty"`
	GoldenPass       bool `json:"goldenPass,omitempty"`
	StealEasy        bool `json:"stealEasy,omitempty"`
	DoubleRounds     int  `json:"doubleRounds,omitempty"`
	BlockPlayerDraw  bool `json:"blockPlayerDraw,omitempty"`
	FullRedraw       bool `json:"fullRedraw,omitempty"`
}

type Perk struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Used        bool   `json:"used"`
}

// UnmarshalJSON upgrades legacy snapshots where perks were persisted as bare
// name strings. Unknown names keep a placeholder description.
func (p *Perk) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*p = Perk{Name: name, Description: catalog.PerkDescription(name), Used: false}
		return nil
	}
	type perkAlias Perk
	var a perkAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Perk(a)
	return nil
}

type Player struct {
	Name  string `json:"name"`
	Coins int    `json:"coins"`
	Perks []Perk `json:"perks"`
	Flags Flags  `json:"flags"`
}

type ChallengeStatus string

const (
	ChallengePending   ChallengeStatus = "pendiente"
	ChallengeFulfilled ChallengeStatus = "cumplido"
	ChallengeFailed    ChallengeStatus = "no_cumplido"
)

type Challenge struct {
	ID          string             `json:"id"`
	Player      string             `json:"player"`
	Description string             `json:"description"`
	Difficulty  catalog.Difficulty `json:"difficulty"`
	Coins       int                `json:"coins"`
	Status      ChallengeStatus    `json:"status"`
}

type MatchMode string

const (
	ModePlayerVsPlayer MatchMode = "jugador"
	ModePlayerVsCPU    MatchMode = "cpu"
)

type Match struct {
	ID           string    `json:"id"`
	Mode         MatchMode `json:"mode"`
	ActivePlayer string    `json:"activePlayer"`
	Opponent     string    `json:"opponent,omitempty"`
	Note         string    `json:"note,omitempty"`
	Date         time.Time `json:"date"`
}

// State is the whole tournament document. It is also the persisted snapshot
// format.
type State struct {
	Players      []Player            `json:"players"`
	Tournament   *Tournament         `json:"tournament"`
	Pools        map[string][]string `json:"pools"`
	Results      map[string][]string `json:"drawResults"`
	Turn         int                 `json:"turn"`
	DrawComplete bool                `json:"drawComplete"`
	Matches      []Match             `json:"matches"`
	Challenges   []Challenge         `json:"challenges"`
}

func NewState() State {
	return State{
		Players:    []Player{},
		Pools:      map[string][]string{},
		Results:    map[string][]string{},
		Matches:    []Match{},
		Challenges: []Challenge{},
	}
}

// clone deep-copies the state so a failing command can return the input
// untouched.
func (s State) clone() State {
	next := s
	next.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		cp := p
		cp.Perks = append([]Perk(nil), p.Perks...)
		next.Players[i] = cp
	}
	if s.Tournament != nil {
		t := *s.Tournament
		next.Tournament = &t
	}
	next.Pools = clonePoolMap(s.Pools)
	next.Results = clonePoolMap(s.Results)
	next.Matches = append([]Match(nil), s.Matches...)
	next.Challenges = append([]Challenge(nil), s.Challenges...)
	return next
}

func clonePoolMap(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (s *State) findPlayer(name string) *Player {
	for i := range s.Players {
		if s.Players[i].Name == name {
			return &s.Players[i]
		}
	}
	return nil
}

// currentPlayer returns the player whose turn it is to draw.
func (s *State) currentPlayer() *Player {
	if len(s.Players) == 0 {
		return nil
	}
	return &s.Players[s.Turn%len(s.Players)]
}

// recomputeDrawComplete re-evaluates the completion condition after every
// mutation of the results. Returns true when the session just transitioned
// into complete.
func (s *State) recomputeDrawComplete() bool {
	if s.Tournament == nil || len(s.Players) == 0 {
		return false
	}
	for _, p := range s.Players {
		if len(s.Results[p.Name]) < s.Tournament.TeamsPerPlayer {
			return false
		}
	}
	was := s.DrawComplete
	s.DrawComplete = true
	return !was
}
