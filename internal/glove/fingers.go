package glove

// Fingers lists the canonical document IDs of one session sub-collection,
// in the fixed order every chart series follows.
var Fingers = []string{"Index", "Little", "Middle", "Ring"}

var spanishNames = map[string]string{
	"Index":  "Índice",
	"Little": "Meñique",
	"Middle": "Medio",
	"Ring":   "Anular",
}

// SpanishName returns the display label for a canonical finger name.
func SpanishName(finger string) string {
	if s, ok := spanishNames[finger]; ok {
		return s
	}
	return finger
}

// Categories returns the chart category labels in canonical finger order.
func Categories() []string {
	out := make([]string, len(Fingers))
	for i, f := range Fingers {
		out[i] = SpanishName(f)
	}
	return out
}
