// Package texto normaliza strings para comparação e filtragem.
// Nomes em português carregam acentos; os filtros da consulta e as checagens
// de duplicidade ignoram caixa e acentuação.
package texto

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var semAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalizar remove acentos, espaços nas pontas e põe tudo em minúsculas.
func Normalizar(s string) string {
	saida, _, err := transform.String(semAcentos, s)
	if err != nil {
		saida = s
	}
	return strings.ToLower(strings.TrimSpace(saida))
}

// Contem informa se s contém o filtro, ignorando caixa e acentos.
// Filtro vazio casa com qualquer valor.
func Contem(s, filtro string) bool {
	if filtro == "" {
		return true
	}
	return strings.Contains(Normalizar(s), Normalizar(filtro))
}

// Igual compara dois valores ignorando caixa e acentos.
func Igual(a, b string) bool {
	return Normalizar(a) == Normalizar(b)
}
