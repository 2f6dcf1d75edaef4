package utils

import (
	"math/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ123456789")

func GenerateRandomStringWithLength(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

var titleCaser = cases.Title(language.English)

// TitleCase upper-cases the first letter of every word ("heavy rain" -> "Heavy Rain").
func TitleCase(s string) string {
	return titleCaser.String(strings.ToLower(s))
}

// Slugify lower-cases a label and replaces spaces with underscores
// ("Heavy Rain" -> "heavy_rain").
func Slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// Humanize is the inverse of Slugify for display ("pest_attack" -> "Pest Attack").
func Humanize(slug string) string {
	return TitleCase(strings.ReplaceAll(slug, "_", " "))
}
