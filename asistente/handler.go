// Package asistente expone la variante respaldada por el modelo de
// lenguaje: mismo filtro de alcance que la consulta enciclopédica, pero la
// respuesta la genera la API de completions.
package asistente

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medwiki-backend/triage"
)

// Completador abstrae el cliente de completions para poder stubearlo en
// tests.
type Completador interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Instrucción de sistema por defecto cuando el cliente no manda la suya.
const defaultSystemInstruction = "You are a careful medical information assistant. Give a short, factual summary of the health topic asked about, remind the user you are not a doctor, and advise consulting a professional for diagnosis or treatment."

const (
	greetingText   = "Hello! I am a medical information assistant. Ask me about any health topic."
	outOfScopeText = "I can only help with health and medical topics. Please ask about a symptom, condition or treatment."
)

type Handler struct {
	AI Completador
}

func NewHandler(ai Completador) *Handler {
	return &Handler{AI: ai}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/asistente", h.Responder)
}

// Cuerpo de entrada: prompt obligatorio, instrucción de sistema opcional
// en el formato anidado que ya usa el frontend.
type request struct {
	Prompt            string `json:"prompt"`
	SystemInstruction struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
}

// Responder filtra el prompt y delega en la API de completions. Los
// saludos y temas fuera de alcance se resuelven sin gastar tokens.
func (h *Handler) Responder(c *gin.Context) {
	var req request
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt requerido"})
		return
	}
	reqID := uuid.NewString()

	disp := triage.Classify(req.Prompt)
	switch disp.Kind {
	case triage.Greeting:
		c.JSON(http.StatusOK, gin.H{"text": greetingText})
		return
	case triage.OutOfScope:
		log.Printf("[asistente] id=%s fuera de alcance term=%q", reqID, disp.Term)
		c.JSON(http.StatusOK, gin.H{"text": outOfScopeText})
		return
	}

	system := defaultSystemInstruction
	if len(req.SystemInstruction.Parts) > 0 {
		if t := strings.TrimSpace(req.SystemInstruction.Parts[0].Text); t != "" {
			system = t
		}
	}

	text, err := h.AI.Complete(c.Request.Context(), system, req.Prompt)
	if err != nil {
		log.Printf("[asistente] id=%s error de completion: %v", reqID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
