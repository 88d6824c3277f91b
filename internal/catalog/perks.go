package catalog

// PerkKind is the closed set of purchasable perks. Adding a kind without an
// entry in perkTable or a case in the engine's effect switch is a bug the
// catalog tests catch.
type PerkKind int

const (
	PerkUnknown PerkKind = iota

	// Tier 1
	PerkRedrawChallenge
	PerkSwapPool
	PerkChooseDifficulty
	PerkDoubleEasy
	PerkRedrawTeam

	// Tier 2
	PerkTradeTeam
	PerkChooseOpponent
	PerkSkipNext
	PerkDoubleNext
	PerkBlockHard

	// Tier 3
	PerkFullDrawControl
	PerkReorderDraw
	PerkGoldenPass
	PerkStealEasy
	PerkDoubleRounds
	PerkBlockPlayerDraw
	PerkFullRedraw
	PerkInstantBonus
)

type PerkEntry struct {
	Kind        PerkKind
	Tier        int
	Name        string
	Description string
}

// NoDescription is the placeholder used when a persisted perk name is not in
// the catalog anymore.
const NoDescription = "Beneficio sin descripción."

// InstantBonusCoins is the credit applied by PerkInstantBonus.
const InstantBonusCoins = 5

// RandomPerkCost is the flat price of a random-shop draw.
const RandomPerkCost = 2

var tierPrices = map[int]int{1: 5, 2: 10, 3: 15}

var perkTable = []PerkEntry{
	{PerkRedrawChallenge, 1, "Repetir tu sorteo de reto", "Permite volver a sortear el reto actual una vez."},
	{PerkSwapPool, 1, "Cambiar de bombo una vez", "Puedes cambiar el bombo asignado una sola vez."},
	{PerkChooseDifficulty, 1, "Elegir dificultad del siguiente reto", "Decide si el próximo reto será fácil, medio o difícil."},
	{PerkDoubleEasy, 1, "Duplicar las monedas de tu siguiente reto fácil", "Tu siguiente reto fácil otorgará el doble de monedas."},
	{PerkRedrawTeam, 1, "Repetir tu sorteo de equipo", "Te permite volver a sortear el equipo una vez."},

	{PerkTradeTeam, 2, "Intercambiar tu equipo con otro jugador (si acepta)", "Permite ofrecer un intercambio de equipos con otro jugador."},
	{PerkChooseOpponent, 2, "Elegir tu rival en la próxima ronda", "Selecciona contra quién jugarás en la siguiente ronda."},
	{PerkSkipNext, 2, "Saltar tu siguiente reto", "Evita recibir reto en la próxima ronda."},
	{PerkDoubleNext, 2, "Duplicar las monedas del siguiente reto cumplido (de cualquier nivel)", "Multiplica por 2 las monedas de tu siguiente reto cumplido."},
	{PerkBlockHard, 2, "Bloquear un reto difícil para todos durante 1 ronda", "Impide que se asignen retos difíciles a todos durante una ronda."},

	{PerkFullDrawControl, 3, "Control total del sorteo personal", "Te permite elegir tu equipo en el sorteo personal."},
	{PerkReorderDraw, 3, "Modificar el orden del sorteo general", "Define el orden de los jugadores en el siguiente sorteo."},
	{PerkGoldenPass, 3, "Pase Dorado", "Saltas tu reto y aún así obtienes las monedas."},
	{PerkStealEasy, 3, "Robar un reto fácil de otro jugador", "Toma un reto fácil de otro jugador y deja uno aleatorio."},
	{PerkDoubleRounds, 3, "Multiplicador de 2× para 2 rondas seguidas", "Durante 2 rondas, todos tus retos cumplidos otorgan el doble de monedas."},
	{PerkBlockPlayerDraw, 3, "Bloquear un jugador del siguiente sorteo", "Evita que un jugador participe en el siguiente sorteo de retos."},
	{PerkFullRedraw, 3, "Reiniciar tu sorteo completo de equipo", "Vuelve a realizar todo tu sorteo de equipos."},
	{PerkInstantBonus, 3, "Bono de +5 Mufa Coins instantáneo", "Obtienes 5 Mufa Coins adicionales de forma inmediata."},
}

var (
	byKind = map[PerkKind]PerkEntry{}
	byName = map[string]PerkEntry{}
	byTier = map[int][]PerkEntry{}
)

func init() {
	for _, e := range perkTable {
		byKind[e.Kind] = e
		byName[e.Name] = e
		byTier[e.Tier] = append(byTier[e.Tier], e)
	}
}

// Perks returns the full catalog in tier order.
func Perks() []PerkEntry { return perkTable }

// PerkByKind looks up a catalog entry; ok is false for PerkUnknown.
func PerkByKind(k PerkKind) (PerkEntry, bool) {
	e, ok := byKind[k]
	return e, ok
}

// PerkByName resolves a display name back to its catalog entry. Used both by
// the command surface and by the legacy-snapshot migration.
func PerkByName(name string) (PerkEntry, bool) {
	e, ok := byName[name]
	return e, ok
}

// PerksByTier returns the entries for one tier, in catalog order.
func PerksByTier(tier int) []PerkEntry { return byTier[tier] }

// TierPrice returns the price in Mufa Coins for a tier, 0 if the tier does
// not exist.
func TierPrice(tier int) int { return tierPrices[tier] }

// PerkDescription returns the catalog description for a perk name, or the
// NoDescription placeholder for names no longer in the catalog.
func PerkDescription(name string) string {
	if e, ok := byName[name]; ok {
		return e.Description
	}
	return NoDescription
}

// RandomTier maps a uniform [0,1) roll to a shop tier: 60% tier 1, 30%
// tier 2, 10% tier 3.
func RandomTier(roll float64) int {
	switch {
	case roll < 0.6:
		return 1
	case roll < 0.9:
		return 2
	default:
		return 3
	}
}
