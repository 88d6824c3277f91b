package engine

import (
	"errors"

	"github.com/mufahq/mufa-backend/internal/catalog"
)

var ErrEmptyName = errors.New("empty player name")
var ErrDuplicateName = errors.New("duplicate player name")
var ErrPlayerNotFound = errors.New("player not found")
var ErrNoPlayers = errors.New("no players registered")
var ErrNotEnoughPlayers = errors.New("not enough players")
var ErrInvalidTeamCount = errors.New("teams per player must be at least 1")
var ErrNoTournament = errors.New("no tournament configured")
var ErrInvalidSlot = errors.New("drawn team slot out of range")
var ErrEmptyTeam = errors.New("empty team value")
var ErrInvalidOpponent = errors.New("invalid opponent")
var ErrUnknownPerk = errors.New("unknown perk")
var ErrPerkNotFound = errors.New("perk not found")
var ErrPerkAlreadyUsed = errors.New("perk already used")
var ErrInsufficientFunds = errors.New("insufficient mufa coins")
var ErrChallengeNotFound = errors.New("challenge not found")
var ErrInvalidOutcome = errors.New("invalid challenge outcome")
var ErrUnsupportedCommand = errors.New("unsupported command")

// Rand is the uniform random source every draw goes through. *math/rand.Rand
// satisfies it; tests script it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

type CommandType string

const (
	CmdRegisterPlayer      CommandType = "RegisterPlayer"
	CmdClearPlayers        CommandType = "ClearPlayers"
	CmdAdjustCoins         CommandType = "AdjustCoins"
	CmdConfigureTournament CommandType = "ConfigureTournament"
	CmdInitPools           CommandType = "InitPools"
	CmdDrawTeam            CommandType = "DrawTeam"
	CmdAdvanceTurn         CommandType = "AdvanceTurn"
	CmdEditDrawnTeam       CommandType = "EditDrawnTeam"
	CmdRecordMatch         CommandType = "RecordMatch"
	CmdIssueChallenge      CommandType = "IssueChallenge"
	CmdResolveChallenge    CommandType = "ResolveChallenge"
	CmdPurchasePerk        CommandType = "PurchasePerk"
	CmdPurchaseRandomPerk  CommandType = "PurchaseRandomPerk"
	CmdUsePerk             CommandType = "UsePerk"
	CmdEndTournament       CommandType = "EndTournament"
	CmdResetAll            CommandType = "ResetAll"
)

type Command struct {
	Type        CommandType
	Player      string
	Opponent    string
	Mode        MatchMode
	Perk        string
	ChallengeID string
	Outcome     ChallengeStatus
	Teams       int
	Delta       int
	Slot        int
	Value       string
}

type EventType string

const (
	EvtPlayerRegistered     EventType = "PlayerRegistered"
	EvtPlayersCleared       EventType = "PlayersCleared"
	EvtCoinsAdjusted        EventType = "CoinsAdjusted"
	EvtTournamentConfigured EventType = "TournamentConfigured"
	EvtPoolsInitialized     EventType = "PoolsInitialized"
	EvtTeamDrawn            EventType = "TeamDrawn"
	EvtDrawSkipped          EventType = "DrawSkipped"
	EvtTurnAdvanced         EventType = "TurnAdvanced"
	EvtDrawCompleted        EventType = "DrawCompleted"
	EvtTeamEdited           EventType = "TeamEdited"
	EvtMatchRecorded        EventType = "MatchRecorded"
	EvtChallengeIssued      EventType = "ChallengeIssued"
	EvtChallengeSkipped     EventType = "ChallengeSkipped"
	EvtGoldenPassCashed     EventType = "GoldenPassCashed"
	EvtChallengeResolved    EventType = "ChallengeResolved"
	EvtPerkPurchased        EventType = "PerkPurchased"
	EvtPerkUsed             EventType = "PerkUsed"
	EvtTournamentEnded      EventType = "TournamentEnded"
	EvtStateReset           EventType = "StateReset"
)

type Event struct {
	Type        EventType
	Player      string
	Perk        string
	Team        string
	Pool        string
	ChallengeID string
	Difficulty  catalog.Difficulty
	Coins       int
}

// Apply runs one command against the state. On success it returns the events
// describing what happened plus the next state; on failure the input state
// comes back untouched.
func Apply(s State, cmd Command, rng Rand) ([]Event, State, error) {
	next := s.clone()

	var events []Event
	var err error
	switch cmd.Type {
	case CmdRegisterPlayer:
		events, err = registerPlayer(&next, cmd)
	case CmdClearPlayers:
		events, err = clearPlayers(&next)
	case CmdAdjustCoins:
		events, err = adjustCoins(&next, cmd)
	case CmdConfigureTournament:
		events, err = configureTournament(&next, cmd)
	case CmdInitPools:
		events, err = initPools(&next)
	case CmdDrawTeam:
		events, err = drawTeam(&next, rng)
	case CmdAdvanceTurn:
		events, err = advanceTurn(&next)
	case CmdEditDrawnTeam:
		events, err = editDrawnTeam(&next, cmd)
	case CmdRecordMatch:
		events, err = recordMatch(&next, cmd, rng)
	case CmdIssueChallenge:
		events, err = issueChallenge(&next, cmd, rng)
	case CmdResolveChallenge:
		events, err = resolveChallenge(&next, cmd)
	case CmdPurchasePerk:
		events, err = purchasePerk(&next, cmd)
	case CmdPurchaseRandomPerk:
		events, err = purchaseRandomPerk(&next, cmd, rng)
	case CmdUsePerk:
		events, err = usePerk(&next, cmd)
	case CmdEndTournament:
		events, err = endTournament(&next)
	case CmdResetAll:
		next = NewState()
		events = []Event{{Type: EvtStateReset}}
	default:
		return nil, s, ErrUnsupportedCommand
	}

	if err != nil {
		return nil, s, err
	}
	return events, next, nil
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
