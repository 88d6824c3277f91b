package engine

import (
	"strconv"
	"strings"
)

// poolLabels is the fixed bombo structure: 4 pools of 9 teams each.
var poolLabels = []string{"A", "B", "C", "D"}

const tokensPerPool = 9

func configureTournament(s *State, cmd Command) ([]Event, error) {
	if cmd.Teams < 1 {
		return nil, ErrInvalidTeamCount
	}
	if len(s.Players) == 0 {
		return nil, ErrNoPlayers
	}
	s.Tournament = &Tournament{TeamsPerPlayer: cmd.Teams, Status: TournamentNew}
	s.Pools = map[string][]string{}
	s.Results = map[string][]string{}
	s.Turn = 0
	s.DrawComplete = false
	s.Matches = []Match{}
	s.Challenges = []Challenge{}
	return []Event{{Type: EvtTournamentConfigured, Coins: cmd.Teams}}, nil
}

func initPools(s *State) ([]Event, error) {
	if s.Tournament == nil {
		return nil, ErrNoTournament
	}
	for _, tokens := range s.Pools {
		if len(tokens) > 0 {
			// Already initialized; re-running must not reshuffle a live draw.
			return nil, nil
		}
	}
	for _, label := range poolLabels {
		tokens := make([]string, 0, tokensPerPool)
		for i := 1; i <= tokensPerPool; i++ {
			tokens = append(tokens, label+strconv.Itoa(i))
		}
		s.Pools[label] = tokens
	}
	return []Event{{Type: EvtPoolsInitialized}}, nil
}

func drawTeam(s *State, rng Rand) ([]Event, error) {
	if s.Tournament == nil {
		return nil, ErrNoTournament
	}
	p := s.currentPlayer()
	if p == nil {
		return nil, ErrNoPlayers
	}

	// Player already holds a full set: skip the draw and hand the turn on.
	if len(s.Results[p.Name]) >= s.Tournament.TeamsPerPlayer {
		s.Turn = (s.Turn + 1) % len(s.Players)
		return []Event{
			{Type: EvtDrawSkipped, Player: p.Name},
			{Type: EvtTurnAdvanced},
		}, nil
	}

	labels := make([]string, 0, len(s.Pools))
	for _, label := range poolLabels {
		if len(s.Pools[label]) > 0 {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		events := []Event{}
		if s.recomputeDrawComplete() {
			events = append(events, Event{Type: EvtDrawCompleted})
		}
		return events, nil
	}

	label := labels[rng.Intn(len(labels))]
	tokens := s.Pools[label]
	pick := rng.Intn(len(tokens))
	team := tokens[pick]

	s.Pools[label] = append(tokens[:pick:pick], tokens[pick+1:]...)
	s.Results[p.Name] = append(s.Results[p.Name], team)
	s.Tournament.Status = TournamentActive

	events := []Event{{Type: EvtTeamDrawn, Player: p.Name, Team: team, Pool: label}}
	if s.recomputeDrawComplete() {
		events = append(events, Event{Type: EvtDrawCompleted})
	}
	return events, nil
}

// advanceTurn is deliberately separate from drawTeam: the table acknowledges
// each draw result before the next player goes.
func advanceTurn(s *State) ([]Event, error) {
	if len(s.Players) == 0 {
		return nil, ErrNoPlayers
	}
	s.Turn = (s.Turn + 1) % len(s.Players)
	return []Event{{Type: EvtTurnAdvanced}}, nil
}

// editDrawnTeam is the scorekeeper override: a drawn slot can be rewritten by
// hand at any point, even after the draw completed.
func editDrawnTeam(s *State, cmd Command) ([]Event, error) {
	p := s.findPlayer(cmd.Player)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	value := strings.TrimSpace(cmd.Value)
	if value == "" {
		return nil, ErrEmptyTeam
	}
	results := s.Results[p.Name]
	if cmd.Slot < 0 || cmd.Slot >= len(results) {
		return nil, ErrInvalidSlot
	}
	results[cmd.Slot] = value
	return []Event{{Type: EvtTeamEdited, Player: p.Name, Team: value}}, nil
}
