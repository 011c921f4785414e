package config

import (
	"log"
	"os"
	"strconv"
)

// Config agrupa la configuración leída una sola vez al arranque.
// Es de solo lectura: se construye en Load y se inyecta a los clientes,
// nunca se muta después.
type Config struct {
	// OpenAI
	OpenAIKey   string
	Model       string
	Temperature float32
	MaxTokens   int

	// Wikipedia
	WikiAPIBase     string
	WikiArticleBase string
	ExtractChars    int

	Port string
}

const (
	defaultModel        = "gpt-4o-mini"
	defaultTemperature  = 0.4
	defaultMaxTokens    = 512
	defaultAPIBase      = "https://en.wikipedia.org/w/api.php"
	defaultArticleBase  = "https://en.wikipedia.org/wiki/"
	defaultExtractChars = 1200
)

// Load lee el entorno y valida lo obligatorio. La ausencia de la API key
// es un fallo duro de arranque, no un warning.
func Load() Config {
	cfg := Config{
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		Model:           defaultModel,
		Temperature:     defaultTemperature,
		MaxTokens:       defaultMaxTokens,
		WikiAPIBase:     defaultAPIBase,
		WikiArticleBase: defaultArticleBase,
		ExtractChars:    defaultExtractChars,
		Port:            ":8080",
	}
	if cfg.OpenAIKey == "" {
		log.Fatalf("[config] OPENAI_API_KEY no configurada; abortando arranque")
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OPENAI_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("WIKI_API_BASE"); v != "" {
		cfg.WikiAPIBase = v
	}
	if v := os.Getenv("WIKI_ARTICLE_BASE"); v != "" {
		cfg.WikiArticleBase = v
	}
	if v := os.Getenv("WIKI_EXTRACT_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ExtractChars = n
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = ":" + v
	}
	return cfg
}
