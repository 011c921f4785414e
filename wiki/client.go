// Package wiki consume la API pública de Wikipedia: resolución del título
// por búsqueda (con un único reintento aumentado) y extracto en texto plano
// con cita a la fuente.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"medwiki-backend/config"
)

var (
	// ErrNotFound: ninguna de las dos búsquedas devolvió título. Es un
	// resultado esperado, no un fallo del servicio.
	ErrNotFound = errors.New("wiki: sin resultados")
	// ErrNoExtract: el artículo existe pero la API no devolvió extracto.
	ErrNoExtract = errors.New("wiki: artículo sin extracto")
)

// Sufijo de la búsqueda de respaldo: sesga los resultados hacia temas
// clínicos cuando el término a secas no encuentra nada.
const augmentSuffix = " medical condition OR human disease"

// La búsqueda devuelve a veces su propia portada para consultas basura;
// ese título cuenta como "sin resultados".
const mainPageTitle = "wikipedia"

// Marcador de página de desambiguación en el extracto.
const disambiguationMarker = "may refer to:"

// DisambiguationNotice sustituye al listado crudo de una página de
// desambiguación.
const DisambiguationNotice = "That term has several possible meanings. Please ask again with a more specific medical term."

// Summary es el resultado final del pipeline de resolución.
type Summary struct {
	Title     string
	Text      string
	SourceURL string
}

// Client habla con la API de MediaWiki. BaseURL y ArticleBase se inyectan
// para poder apuntar los tests a un servidor stub.
type Client struct {
	BaseURL      string
	ArticleBase  string
	ExtractChars int
	HTTP         *http.Client
}

// NewClient construye el cliente con la configuración de arranque y un
// timeout fijo del lado nuestro (el entorno no impone ninguno).
func NewClient(cfg config.Config) *Client {
	return &Client{
		BaseURL:      cfg.WikiAPIBase,
		ArticleBase:  cfg.WikiArticleBase,
		ExtractChars: cfg.ExtractChars,
		HTTP:         &http.Client{Timeout: 15 * time.Second},
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wiki: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// search lanza una búsqueda y devuelve el título mejor clasificado, o ""
// si no hubo resultados.
func (c *Client) search(ctx context.Context, term string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", term)
	params.Set("format", "json")
	params.Set("srlimit", "1")
	var sr searchResponse
	if err := c.get(ctx, params, &sr); err != nil {
		return "", fmt.Errorf("búsqueda falló: %w", err)
	}
	if len(sr.Query.Search) == 0 {
		return "", nil
	}
	return sr.Query.Search[0].Title, nil
}

// Resolve aplica la estrategia de dos pasos: término tal cual y, si queda
// vacío, una única búsqueda aumentada. Sin reintentos ni backoff: un fallo
// de red o de parseo corta la petición.
func (c *Client) Resolve(ctx context.Context, term string) (string, error) {
	title, err := c.search(ctx, term)
	if err != nil {
		return "", err
	}
	if title == "" {
		title, err = c.search(ctx, term+augmentSuffix)
		if err != nil {
			return "", err
		}
	}
	if title == "" || strings.EqualFold(title, mainPageTitle) {
		return "", ErrNotFound
	}
	return title, nil
}

// Summarize descarga el extracto en texto plano del título (siguiendo
// redirecciones) y se queda con el primer párrafo no vacío.
func (c *Client) Summarize(ctx context.Context, title string) (*Summary, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)
	params.Set("prop", "extracts")
	params.Set("exchars", fmt.Sprintf("%d", c.ExtractChars))
	params.Set("explaintext", "1")
	params.Set("format", "json")
	params.Set("redirects", "1")
	var er extractResponse
	if err := c.get(ctx, params, &er); err != nil {
		return nil, fmt.Errorf("extracto falló: %w", err)
	}
	extract := ""
	for _, page := range er.Query.Pages {
		if page.Extract != "" {
			extract = page.Extract
			break
		}
	}
	if strings.TrimSpace(extract) == "" {
		return nil, ErrNoExtract
	}
	text := firstParagraph(extract)
	if strings.Contains(text, disambiguationMarker) {
		text = DisambiguationNotice
	}
	return &Summary{
		Title:     title,
		Text:      text,
		SourceURL: c.ArticleBase + url.PathEscape(title),
	}, nil
}

// firstParagraph devuelve el primer segmento no vacío separado por saltos
// de línea.
func firstParagraph(extract string) string {
	for _, line := range strings.Split(extract, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return strings.TrimSpace(extract)
}
