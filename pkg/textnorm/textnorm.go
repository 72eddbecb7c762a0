// Package textnorm normaliza términos de búsqueda: minúsculas, sin tildes ni espacios sobrantes.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize descompone en NFD, elimina las marcas diacríticas y pasa a minúsculas.
// "Azúcar Morena " -> "azucar morena".
func Normalize(term string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, term)
	if err != nil {
		out = term
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Contains informa si haystack contiene needle, ambos normalizados.
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}
