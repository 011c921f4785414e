package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"medwiki-backend/asistente"
	"medwiki-backend/config"
	"medwiki-backend/consulta"
	"medwiki-backend/openai"
	"medwiki-backend/wiki"
)

// cors responde el preflight y añade las cabeceras para el frontend.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusOK)
			c.Abort()
			return
		}
		c.Next()
	}
}

func main() {
	// .env es opcional en despliegue; las variables pueden venir del entorno
	_ = godotenv.Load()
	cfg := config.Load()

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(cors())

	consulta.NewHandler(wiki.NewClient(cfg)).RegisterRoutes(r)
	asistente.NewHandler(openai.NewClient(cfg)).RegisterRoutes(r)

	log.Printf("[main] escuchando en %s", cfg.Port)
	if err := r.Run(cfg.Port); err != nil {
		log.Fatalf("[main] servidor terminó: %v", err)
	}
}
