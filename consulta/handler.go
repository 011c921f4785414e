// Package consulta expone el endpoint respaldado por la enciclopedia:
// clasifica el prompt, resuelve el título por búsqueda y devuelve el primer
// párrafo del extracto con su cita.
package consulta

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medwiki-backend/triage"
	"medwiki-backend/wiki"
)

// Buscador es el subconjunto del cliente wiki que necesita este handler;
// los tests lo sustituyen por un stub.
type Buscador interface {
	Resolve(ctx context.Context, term string) (string, error)
	Summarize(ctx context.Context, title string) (*wiki.Summary, error)
}

// Mensajes fijos del pipeline. La ausencia de resultados es un desenlace
// esperado: siempre 200 con texto explicativo, nunca un status de error.
const (
	greetingMessage   = "Hello! I am a medical information assistant. Ask me about any health topic, for example: I have a fever."
	outOfScopeMessage = "I can only help with health and medical topics. Please ask about a symptom, condition or treatment."
	notFoundMessage   = "I am not a doctor, and I could not find information on that topic. Please try a more specific medical term."
	noExtractMessage  = "I am not a doctor, and I could not retrieve a summary for that topic right now. Please try again with a different term."
	disclaimerPrefix  = "I am not a medical professional; this is general reference information. "
)

type Handler struct {
	Wiki Buscador
}

func NewHandler(w Buscador) *Handler {
	return &Handler{Wiki: w}
}

// RegisterRoutes registra el endpoint de consulta.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/consulta", h.Consultar)
}

// Consultar ejecuta el pipeline completo para una petición.
func (h *Handler) Consultar(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt requerido"})
		return
	}
	reqID := uuid.NewString()

	disp := triage.Classify(req.Prompt)
	switch disp.Kind {
	case triage.Greeting:
		c.JSON(http.StatusOK, gin.H{"message": greetingMessage})
		return
	case triage.OutOfScope:
		log.Printf("[consulta] id=%s fuera de alcance term=%q", reqID, disp.Term)
		c.JSON(http.StatusOK, gin.H{"message": outOfScopeMessage})
		return
	}

	ctx := c.Request.Context()
	title, err := h.Wiki.Resolve(ctx, disp.Term)
	if err != nil {
		if errors.Is(err, wiki.ErrNotFound) {
			log.Printf("[consulta] id=%s sin resultados term=%q", reqID, disp.Term)
			c.JSON(http.StatusOK, gin.H{"message": notFoundMessage})
			return
		}
		log.Printf("[consulta] id=%s error de búsqueda: %v", reqID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.Wiki.Summarize(ctx, title)
	if err != nil {
		if errors.Is(err, wiki.ErrNoExtract) {
			log.Printf("[consulta] id=%s sin extracto title=%q", reqID, title)
			c.JSON(http.StatusOK, gin.H{"message": noExtractMessage})
			return
		}
		log.Printf("[consulta] id=%s error de extracto: %v", reqID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("[consulta] id=%s ok term=%q title=%q", reqID, disp.Term, summary.Title)
	c.JSON(http.StatusOK, gin.H{
		"title":     summary.Title,
		"summary":   disclaimerPrefix + summary.Text,
		"sourceUrl": summary.SourceURL,
	})
}
