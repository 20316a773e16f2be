// Package dishtype classifies dish names into meat or fish by keyword.
package dishtype

import "strings"

const (
	Meat  = "meat"
	Fish  = "fish"
	Blank = "blank"
)

// Portuguese + English common fish/seafood terms.
var fishKeywords = []string{
	"fish", "salmon", "tuna", "cod", "hake", "sardine", "anchovy",
	"bacalhau", "atum", "salmão", "salmao", "pescada", "robalo", "dourada",
	"polvo", "lulas", "camarao", "camarão", "shrimp", "prawn",
	"octopus", "squid", "marisco", "seafood", "enguia", "trout", "tilapia",
}

// Infer returns Fish when the dish name contains a fish/seafood keyword,
// otherwise Meat. An empty name defaults to Meat. Matching is
// case-insensitive and whitespace-tolerant; stored behaviour preferences
// must only ever use meat | fish | blank, never dish names.
func Infer(name string) string {
	if name == "" {
		return Meat
	}

	s := strings.ToLower(strings.Join(strings.Fields(name), " "))
	for _, kw := range fishKeywords {
		if strings.Contains(s, kw) {
			return Fish
		}
	}
	return Meat
}
