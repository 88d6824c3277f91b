package catalog

// Difficulty is a challenge tier. The string values are what the snapshot
// document and the UI exchange.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "facil"
	DifficultyMedium Difficulty = "medio"
	DifficultyHard   Difficulty = "dificil"
)

// Difficulties lists all tiers in ascending order of reward.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ChallengeCoins is the base Mufa Coin reward per tier.
func ChallengeCoins(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 0
	}
}

var challengePools = map[Difficulty][]string{
	DifficultyEasy: {
		"Haz un gol de tiro libre",
		"Anota con un defensa central",
		"Gana con más del 60% de posesión",
		"Anota un gol en el minuto 90 o más",
		"Haz una asistencia con un jugador suplente",
		"Anota con un jugador zurdo",
		"Gana un juego sin offsides",
		"Gana un juego sin tarjetas",
	},
	DifficultyMedium: {
		"Gana sin recibir goles",
		"Anota con tres jugadores distintos",
		"Marca un gol de cabeza y otro de volea",
		"Gana un partido con menos del 40% de posesión",
		"Remonta y gana tras ir perdiendo",
		"Marca un gol con tu portero",
		"Anota dos goles de cabeza ~chupas~",
	},
	DifficultyHard: {
		"Gana 4-0 o más",
		"Haz un hat-trick con un jugador suplente",
		"Anota desde fuera del área tres veces",
		"Anota un gol de chilena",
		"Anota una manita (5 goles) con un jugador",
	},
}

// ChallengePool returns the descriptions available for one difficulty.
func ChallengePool(d Difficulty) []string { return challengePools[d] }

// ValidDifficulty reports whether d is one of the three tiers.
func ValidDifficulty(d Difficulty) bool {
	_, ok := challengePools[d]
	return ok
}
