// Package triage clasifica el prompt del usuario antes de gastar llamadas
// remotas: detecta saludos, limpia muletillas conversacionales y descarta
// temas claramente no médicos.
package triage

import (
	"strings"
	"unicode"
)

// Kind es la disposición del prompt tras la clasificación.
type Kind int

const (
	// Greeting: el prompt es un saludo; se responde con texto fijo sin
	// tocar ningún servicio externo.
	Greeting Kind = iota
	// OutOfScope: el término normalizado contiene una palabra clave no
	// médica; se responde con el mensaje de fuera de alcance.
	OutOfScope
	// Candidate: término listo para buscar.
	Candidate
)

// Disposition lleva la decisión y, salvo para saludos, el término
// normalizado que alimenta la búsqueda.
type Disposition struct {
	Kind Kind
	Term string
}

// Saludos comunes, anclados al inicio del prompt. Mismo criterio que el
// small-talk del chat principal: coincidencia exacta o seguida de espacio,
// para no confundir "hi" con términos como "hiv".
var greetings = []string{
	"hi",
	"hello",
	"hey",
	"good morning",
	"good afternoon",
	"good evening",
	"how are you",
}

// Muletillas conversacionales que preceden al término real. El orden
// importa: las frases más largas van antes que sus prefijos ("i have a"
// antes que "i have"). Se quita como máximo UNA.
var fillerPhrases = []string{
	"i want to know about",
	"tell me about",
	"the benefits of",
	"what is a",
	"what is an",
	"what is",
	"what are",
	"i have a",
	"i have",
	"i feel",
	"i am having",
	"do i have",
}

// Palabras clave no médicas (política, entretenimiento, geografía...).
// La comprobación es por subcadena a propósito: preferimos rechazar de más
// a dejar pasar consultas de farándula. Falsos positivos conocidos (p. ej.
// términos que contienen "art") se aceptan como limitación documentada.
var nonMedicalKeywords = []string{
	"politic",
	"president",
	"minister",
	"election",
	"government",
	"queen",
	"king",
	"celebrit",
	"actor",
	"actress",
	"movie",
	"film",
	"music",
	"song",
	"singer",
	"sport",
	"football",
	"cricket",
	"basketball",
	"country",
	"capital city",
	"continent",
	"mountain",
	"river",
	"ocean",
	"history of",
	"war",
	"art",
	"painting",
	"novel",
	"poem",
	"religion",
	"astrolog",
	"stock market",
	"bitcoin",
	"weather",
}

// IsGreeting detecta un saludo anclado al inicio del prompt.
func IsGreeting(prompt string) bool {
	t := strings.ToLower(strings.TrimSpace(prompt))
	if t == "" {
		return false
	}
	for _, g := range greetings {
		if t == g || strings.HasPrefix(t, g+" ") {
			return true
		}
	}
	return false
}

// Normalize quita como máximo una muletilla inicial y devuelve el resto
// recortado. Si ninguna frase coincide, devuelve el texto recortado tal cual.
func Normalize(prompt string) string {
	trimmed := strings.TrimSpace(prompt)
	lower := strings.ToLower(trimmed)
	for _, phrase := range fillerPhrases {
		// espacio obligatorio tras la frase: "what is" no recorta "what isotope"
		if strings.HasPrefix(lower, phrase+" ") {
			return strings.TrimSpace(trimmed[len(phrase):])
		}
	}
	return trimmed
}

// isNumeric indica si el término es puramente numérico.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isNonMedical aplica la lista de palabras clave sobre el término ya
// normalizado. Términos cortos (<3) o numéricos pasan siempre: evita
// rechazar términos clínicos breves como "flu".
func isNonMedical(term string) bool {
	if len(term) < 3 || isNumeric(term) {
		return false
	}
	lower := strings.ToLower(term)
	for _, kw := range nonMedicalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify ejecuta la clasificación completa: saludo → normalización →
// filtro de alcance → candidato.
func Classify(prompt string) Disposition {
	if IsGreeting(prompt) {
		return Disposition{Kind: Greeting}
	}
	term := Normalize(prompt)
	if isNonMedical(term) {
		return Disposition{Kind: OutOfScope, Term: term}
	}
	return Disposition{Kind: Candidate, Term: term}
}
