package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/mufahq/mufa-backend/internal/catalog"
)

func recordMatch(s *State, cmd Command, rng Rand) ([]Event, error) {
	active := s.findPlayer(cmd.Player)
	if active == nil {
		return nil, ErrPlayerNotFound
	}

	m := Match{
		ID:           uuid.NewString(),
		Mode:         cmd.Mode,
		ActivePlayer: active.Name,
		Date:         time.Now().UTC(),
	}

	switch cmd.Mode {
	case ModePlayerVsPlayer:
		if cmd.Opponent == cmd.Player {
			return nil, ErrInvalidOpponent
		}
		if s.findPlayer(cmd.Opponent) == nil {
			return nil, ErrPlayerNotFound
		}
		m.Opponent = cmd.Opponent

	case ModePlayerVsCPU:
		// The CPU side is controlled by one of the other players, or by the
		// duo of them, drawn at the table. Needs the active player plus at
		// least two others.
		if len(s.Players) < 3 {
			return nil, ErrNotEnoughPlayers
		}
		others := make([]string, 0, len(s.Players)-1)
		for _, p := range s.Players {
			if p.Name != active.Name {
				others = append(others, p.Name)
			}
		}
		options := []string{
			others[0] + " controla CPU",
			others[1] + " controla CPU",
			"Dupla MUFA (" + others[0] + " + " + others[1] + ")",
		}
		m.Note = options[rng.Intn(len(options))]

	default:
		return nil, ErrInvalidOpponent
	}

	s.Matches = append(s.Matches, m)
	return []Event{{Type: EvtMatchRecorded, Player: m.ActivePlayer}}, nil
}

// anyBlockHard reports whether some player's hard-block is in force, which
// removes "dificil" from everyone's difficulty draws.
func anyBlockHard(s *State) bool {
	for _, p := range s.Players {
		if p.Flags.BlockHardRounds > 0 {
			return true
		}
	}
	return false
}

func randomDifficulty(rng Rand, excludeHard bool) catalog.Difficulty {
	pool := catalog.Difficulties
	if excludeHard {
		pool = pool[:2]
	}
	return pool[rng.Intn(len(pool))]
}

// issueChallenge draws a new challenge for a player, consulting the player's
// active flags in priority order: golden pass, then skip, then the ordinary
// draw with difficulty override and multiplier rules.
func issueChallenge(s *State, cmd Command, rng Rand) ([]Event, error) {
	p := s.findPlayer(cmd.Player)
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	if p.Flags.GoldenPass {
		d := randomDifficulty(rng, anyBlockHard(s))
		coins := catalog.ChallengeCoins(d)
		p.Flags.GoldenPass = false
		p.Coins += coins
		return []Event{{Type: EvtGoldenPassCashed, Player: p.Name, Difficulty: d, Coins: coins}}, nil
	}

	if p.Flags.SkipNext {
		p.Flags.SkipNext = false
		return []Event{{Type: EvtChallengeSkipped, Player: p.Name}}, nil
	}

	var d catalog.Difficulty
	if p.Flags.ChooseDifficulty {
		d = catalog.DifficultyMedium
		p.Flags.ChooseDifficulty = false
	} else {
		d = randomDifficulty(rng, anyBlockHard(s))
	}

	pool := catalog.ChallengePool(d)
	description := pool[rng.Intn(len(pool))]
	coins := catalog.ChallengeCoins(d)

	// At most one of the one-shot doublers applies; the general one wins.
	switch {
	case p.Flags.DoubleNext:
		coins *= 2
		p.Flags.DoubleNext = false
	case p.Flags.DoubleEasy && d == catalog.DifficultyEasy:
		coins *= 2
		p.Flags.DoubleEasy = false
	}
	// The round multiplier stacks on top and burns one round per challenge.
	if p.Flags.DoubleRounds > 0 {
		coins *= 2
		p.Flags.DoubleRounds--
	}
	if p.Flags.BlockHardRounds > 0 {
		p.Flags.BlockHardRounds--
	}

	ch := Challenge{
		ID:          uuid.NewString(),
		Player:      p.Name,
		Description: description,
		Difficulty:  d,
		Coins:       coins,
		Status:      ChallengePending,
	}
	s.Challenges = append(s.Challenges, ch)
	return []Event{{Type: EvtChallengeIssued, Player: p.Name, ChallengeID: ch.ID, Difficulty: d, Coins: coins}}, nil
}

// resolveChallenge marks a challenge fulfilled or failed. Crediting happens
// exactly once per stay in the fulfilled state: re-marking with the same
// outcome is a no-op, and flipping a fulfilled challenge to failed takes the
// credit back so the balance cannot drift. A flip whose debit exceeds the
// player's balance is rejected.
func resolveChallenge(s *State, cmd Command) ([]Event, error) {
	if cmd.Outcome != ChallengeFulfilled && cmd.Outcome != ChallengeFailed {
		return nil, ErrInvalidOutcome
	}
	var ch *Challenge
	for i := range s.Challenges {
		if s.Challenges[i].ID == cmd.ChallengeID {
			ch = &s.Challenges[i]
			break
		}
	}
	if ch == nil {
		return nil, ErrChallengeNotFound
	}
	if ch.Status == cmd.Outcome {
		return nil, nil
	}

	p := s.findPlayer(ch.Player)
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	wasFulfilled := ch.Status == ChallengeFulfilled

	delta := 0
	if cmd.Outcome == ChallengeFulfilled {
		delta = ch.Coins
	} else if wasFulfilled {
		// The earlier credit may already be spent; a flip that would push the
		// balance below zero is rejected, the challenge stays fulfilled.
		if p.Coins < ch.Coins {
			return nil, ErrInsufficientFunds
		}
		delta = -ch.Coins
	}
	ch.Status = cmd.Outcome
	p.Coins += delta

	return []Event{{Type: EvtChallengeResolved, Player: p.Name, ChallengeID: ch.ID, Coins: delta}}, nil
}
