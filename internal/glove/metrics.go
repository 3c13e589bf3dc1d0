package glove

import (
	"strconv"
	"strings"
)

// Reading holds the four normalized sensor metrics of one finger document.
type Reading struct {
	Angle      float64
	Force      float64
	ServoForce float64
	Velocity   float64
}

// Unit suffixes the glove firmware appends when it uploads readings as text.
var unitSuffixes = []string{" °/s", "°/s", " N", "°"}

// NormalizeValue converts a stored sensor value to a float64. Values arrive
// either as Firestore numbers or as strings carrying a unit suffix
// ("90°", "3.5 N", "12 °/s"). Absent or unparseable values normalize to 0.
func NormalizeValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case string:
		s := strings.TrimSpace(n)
		for _, suffix := range unitSuffixes {
			s = strings.TrimSuffix(s, suffix)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ReadingFromDoc normalizes the raw document data of one finger.
func ReadingFromDoc(data map[string]interface{}) Reading {
	return Reading{
		Angle:      NormalizeValue(data["angle"]),
		Force:      NormalizeValue(data["force"]),
		ServoForce: NormalizeValue(data["servoforce"]),
		Velocity:   NormalizeValue(data["velocity"]),
	}
}

// Active reports whether any metric of the reading is positive.
func (r Reading) Active() bool {
	return r.Angle > 0 || r.Force > 0 || r.ServoForce > 0 || r.Velocity > 0
}

// ZeroReadingDoc is the document shape written for each finger when a new
// basic user is seeded with an empty default session.
func ZeroReadingDoc() map[string]interface{} {
	return map[string]interface{}{
		"angle":      0,
		"force":      0,
		"servoforce": 0,
		"velocity":   0,
	}
}
