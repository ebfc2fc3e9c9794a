package hmm

import "math"

// DefaultFloor is the probability substituted for unseen transitions,
// unseen emissions and out of vocabulary words.
const DefaultFloor = 1e-6

// logOr returns the log of row[key], or the log of floor when the entry is
// absent. A nil row behaves as an empty one.
func logOr(row map[string]float64, key string, logFloor float64) float64 {
	p, ok := row[key]
	if !ok {
		return logFloor
	}
	return math.Log(p)
}

func validFloor(floor float64) bool {
	return floor > 0 && floor < 1
}
