package engine

import (
	"strings"

	"github.com/mufahq/mufa-backend/internal/catalog"
)

func registerPlayer(s *State, cmd Command) ([]Event, error) {
	name := strings.TrimSpace(cmd.Player)
	if name == "" {
		return nil, ErrEmptyName
	}
	if s.findPlayer(name) != nil {
		return nil, ErrDuplicateName
	}
	s.Players = append(s.Players, Player{Name: name, Perks: []Perk{}})
	return []Event{{Type: EvtPlayerRegistered, Player: name}}, nil
}

func clearPlayers(s *State) ([]Event, error) {
	s.Players = []Player{}
	s.Turn = 0
	return []Event{{Type: EvtPlayersCleared}}, nil
}

func adjustCoins(s *State, cmd Command) ([]Event, error) {
	p := s.findPlayer(cmd.Player)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	if p.Coins+cmd.Delta < 0 {
		return nil, ErrInsufficientFunds
	}
	p.Coins += cmd.Delta
	return []Event{{Type: EvtCoinsAdjusted, Player: p.Name, Coins: cmd.Delta}}, nil
}

func purchasePerk(s *State, cmd Command) ([]Event, error) {
	p := s.findPlayer(cmd.Player)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	entry, ok := catalog.PerkByName(cmd.Perk)
	if !ok {
		return nil, ErrUnknownPerk
	}
	price := catalog.TierPrice(entry.Tier)
	if p.Coins < price {
		return nil, ErrInsufficientFunds
	}
	p.Coins -= price

	// The instant bonus is a consumable: applied on the spot, never held.
	if entry.Kind == catalog.PerkInstantBonus {
		p.Coins += catalog.InstantBonusCoins
		return []Event{{Type: EvtPerkPurchased, Player: p.Name, Perk: entry.Name, Coins: catalog.InstantBonusCoins}}, nil
	}

	p.Perks = append(p.Perks, Perk{Name: entry.Name, Description: entry.Description})
	return []Event{{Type: EvtPerkPurchased, Player: p.Name, Perk: entry.Name}}, nil
}

func purchaseRandomPerk(s *State, cmd Command, rng Rand) ([]Event, error) {
	p := s.findPlayer(cmd.Player)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	if p.Coins < catalog.RandomPerkCost {
		return nil, ErrInsufficientFunds
	}
	tier := catalog.RandomTier(rng.Float64())
	list := catalog.PerksByTier(tier)
	entry := list[rng.Intn(len(list))]

	p.Coins -= catalog.RandomPerkCost
	p.Perks = append(p.Perks, Perk{Name: entry.Name, Description: entry.Description})
	return []Event{{Type: EvtPerkPurchased, Player: p.Name, Perk: entry.Name}}, nil
}

func usePerk(s *State, cmd Command) ([]Event, error) {
	p := s.findPlayer(cmd.Player)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	idx := -1
	seen := false
	for i := range p.Perks {
		if p.Perks[i].Name != cmd.Perk {
			continue
		}
		seen = true
		if !p.Perks[i].Used {
			idx = i
			break
		}
	}
	if !seen {
		return nil, ErrPerkNotFound
	}
	if idx == -1 {
		return nil, ErrPerkAlreadyUsed
	}
	entry, ok := catalog.PerkByName(cmd.Perk)
	if !ok {
		return nil, ErrUnknownPerk
	}
	if err := applyPerkEffect(p, entry.Kind); err != nil {
		return nil, err
	}
	p.Perks[idx].Used = true
	return []Event{{Type: EvtPerkUsed, Player: p.Name, Perk: entry.Name}}, nil
}

// applyPerkEffect is the perk resolver: an exhaustive switch over the closed
// perk enum mutating the player's flags. Advisory perks only raise their
// flag; the table surrounding the game adjudicates them.
func applyPerkEffect(p *Player, kind catalog.PerkKind) error {
	switch kind {
	case catalog.PerkRedrawChallenge:
		p.Flags.RedrawChallenge = true
	case catalog.PerkSwapPool:
		p.Flags.SwapPool = true
	case catalog.PerkChooseDifficulty:
		p.Flags.ChooseDifficulty = true
	case catalog.PerkDoubleEasy:
		p.Flags.DoubleEasy = true
	case catalog.PerkRedrawTeam:
		p.Flags.RedrawTeam = true
	case catalog.PerkTradeTeam:
		p.Flags.TradeTeam = true
	case catalog.PerkChooseOpponent:
		p.Flags.ChooseOpponent = true
	case catalog.PerkSkipNext:
		p.Flags.SkipNext = true
	case catalog.PerkDoubleNext:
		p.Flags.DoubleNext = true
	case catalog.PerkBlockHard:
		p.Flags.BlockHardRounds = 1
	case catalog.PerkFullDrawControl:
		p.Flags.FullDrawControl = true
	case catalog.PerkReorderDraw:
		p.Flags.ReorderDraw = true
	case catalog.PerkGoldenPass:
		p.Flags.GoldenPass = true
	case catalog.PerkStealEasy:
		p.Flags.StealEasy = true
	case catalog.PerkDoubleRounds:
		p.Flags.DoubleRounds = 2
	case catalog.PerkBlockPlayerDraw:
		p.Flags.BlockPlayerDraw = true
	case catalog.PerkFullRedraw:
		p.Flags.FullRedraw = true
	case catalog.PerkInstantBonus:
		// Reachable only for bonus perks drawn from the random shop, which
		// are held like any other perk. Using one cashes it.
		p.Coins += catalog.InstantBonusCoins
	default:
		return ErrUnknownPerk
	}
	return nil
}

func endTournament(s *State) ([]Event, error) {
	for i := range s.Players {
		s.Players[i].Flags = Flags{}
		for j := range s.Players[i].Perks {
			s.Players[i].Perks[j].Used = false
		}
	}
	s.Tournament = nil
	s.Pools = map[string][]string{}
	s.Results = map[string][]string{}
	s.Turn = 0
	s.DrawComplete = false
	s.Matches = []Match{}
	s.Challenges = []Challenge{}
	return []Event{{Type: EvtTournamentEnded}}, nil
}
