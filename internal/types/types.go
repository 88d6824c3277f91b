package types

import "github.com/mufahq/mufa-backend/internal/engine"

// ClientMessage is the JSON command envelope shared by the websocket and the
// REST command endpoint.
type ClientMessage struct {
	Type        string `json:"type"`
	Player      string `json:"player,omitempty"`
	Opponent    string `json:"opponent,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Perk        string `json:"perk,omitempty"`
	ChallengeID string `json:"challenge_id,omitempty"`
	Outcome     string `json:"outcome,omitempty"`
	Teams       int    `json:"teams,omitempty"`
	Delta       int    `json:"delta,omitempty"`
	Slot        int    `json:"slot"`
	Value       string `json:"value,omitempty"`
}

type ServerMessage struct {
	Type    string        `json:"type"` // "StateSnapshot" | "Error"
	Version int           `json:"version,omitempty"`
	State   *engine.State `json:"state,omitempty"`
	Error   string        `json:"error,omitempty"`
}

var commandTypes = map[string]engine.CommandType{
	"RegisterPlayer":      engine.CmdRegisterPlayer,
	"ClearPlayers":        engine.CmdClearPlayers,
	"AdjustCoins":         engine.CmdAdjustCoins,
	"ConfigureTournament": engine.CmdConfigureTournament,
	"InitPools":           engine.CmdInitPools,
	"DrawTeam":            engine.CmdDrawTeam,
	"AdvanceTurn":         engine.CmdAdvanceTurn,
	"EditDrawnTeam":       engine.CmdEditDrawnTeam,
	"RecordMatch":         engine.CmdRecordMatch,
	"IssueChallenge":      engine.CmdIssueChallenge,
	"ResolveChallenge":    engine.CmdResolveChallenge,
	"PurchasePerk":        engine.CmdPurchasePerk,
	"PurchaseRandomPerk":  engine.CmdPurchaseRandomPerk,
	"UsePerk":             engine.CmdUsePerk,
	"EndTournament":       engine.CmdEndTournament,
	"ResetAll":            engine.CmdResetAll,
}

// ToCommand maps a wire message onto an engine command. ok is false for an
// unknown type; field-level validation is the engine's job.
func ToCommand(m ClientMessage) (engine.Command, bool) {
	ct, ok := commandTypes[m.Type]
	if !ok {
		return engine.Command{}, false
	}
	return engine.Command{
		Type:        ct,
		Player:      m.Player,
		Opponent:    m.Opponent,
		Mode:        engine.MatchMode(m.Mode),
		Perk:        m.Perk,
		ChallengeID: m.ChallengeID,
		Outcome:     engine.ChallengeStatus(m.Outcome),
		Teams:       m.Teams,
		Delta:       m.Delta,
		Slot:        m.Slot,
		Value:       m.Value,
	}, true
}
