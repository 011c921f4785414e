package wiki

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// stubAPI simula la API de MediaWiki: responde búsquedas según un mapa
// término→título y extractos según título→texto, contando las llamadas.
type stubAPI struct {
	searches    map[string]string // srsearch -> title ("" = sin resultados)
	extracts    map[string]string // titles -> extract
	searchCalls []string
	failAll     bool
}

func (s *stubAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.failAll {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		q := r.URL.Query()
		switch {
		case q.Get("list") == "search":
			term := q.Get("srsearch")
			s.searchCalls = append(s.searchCalls, term)
			title := s.searches[term]
			if title == "" {
				fmt.Fprint(w, `{"query":{"search":[]}}`)
				return
			}
			fmt.Fprintf(w, `{"query":{"search":[{"title":%q}]}}`, title)
		case q.Get("prop") == "extracts":
			extract, ok := s.extracts[q.Get("titles")]
			if !ok {
				fmt.Fprint(w, `{"query":{"pages":{"-1":{}}}}`)
				return
			}
			fmt.Fprintf(w, `{"query":{"pages":{"123":{"extract":%q}}}}`, extract)
		default:
			http.Error(w, "unexpected query", http.StatusBadRequest)
		}
	}
}

func newTestClient(t *testing.T, stub *stubAPI) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	c := &Client{
		BaseURL:      srv.URL,
		ArticleBase:  "https://en.wikipedia.org/wiki/",
		ExtractChars: 1200,
		HTTP:         srv.Client(),
	}
	return c, srv.Close
}

func TestResolve_primario(t *testing.T) {
	stub := &stubAPI{searches: map[string]string{"fever": "Fever"}}
	c, done := newTestClient(t, stub)
	defer done()

	title, err := c.Resolve(context.Background(), "fever")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if title != "Fever" {
		t.Fatalf("title = %q, want Fever", title)
	}
	if len(stub.searchCalls) != 1 {
		t.Fatalf("expected 1 search call, got %d", len(stub.searchCalls))
	}
}

func TestResolve_fallbackUnaSolaVez(t *testing.T) {
	stub := &stubAPI{searches: map[string]string{
		"ictus" + augmentSuffix: "Stroke",
	}}
	c, done := newTestClient(t, stub)
	defer done()

	title, err := c.Resolve(context.Background(), "ictus")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if title != "Stroke" {
		t.Fatalf("title = %q, want Stroke", title)
	}
	if len(stub.searchCalls) != 2 {
		t.Fatalf("expected 2 search calls, got %d", len(stub.searchCalls))
	}
	if stub.searchCalls[1] != "ictus"+augmentSuffix {
		t.Fatalf("augmented term = %q", stub.searchCalls[1])
	}
}

func TestResolve_sinResultados(t *testing.T) {
	stub := &stubAPI{searches: map[string]string{}}
	c, done := newTestClient(t, stub)
	defer done()

	_, err := c.Resolve(context.Background(), "xyzzyunknownterm123")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// exactamente dos intentos: primario y aumentado
	if len(stub.searchCalls) != 2 {
		t.Fatalf("expected 2 search calls, got %d", len(stub.searchCalls))
	}
}

func TestResolve_portadaCuentaComoNada(t *testing.T) {
	stub := &stubAPI{searches: map[string]string{"asdfgh": "Wikipedia"}}
	c, done := newTestClient(t, stub)
	defer done()

	_, err := c.Resolve(context.Background(), "asdfgh")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for main page title, got %v", err)
	}
}

func TestResolve_errorRemoto(t *testing.T) {
	stub := &stubAPI{failAll: true}
	c, done := newTestClient(t, stub)
	defer done()

	_, err := c.Resolve(context.Background(), "fever")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestSummarize_primerParrafoYCita(t *testing.T) {
	stub := &stubAPI{extracts: map[string]string{
		"Fever": "Fever is an elevated body temperature.\nMore text",
	}}
	c, done := newTestClient(t, stub)
	defer done()

	s, err := c.Summarize(context.Background(), "Fever")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Text != "Fever is an elevated body temperature." {
		t.Fatalf("text = %q", s.Text)
	}
	if s.SourceURL != "https://en.wikipedia.org/wiki/Fever" {
		t.Fatalf("sourceUrl = %q", s.SourceURL)
	}
}

func TestSummarize_primerSegmentoNoVacio(t *testing.T) {
	stub := &stubAPI{extracts: map[string]string{
		"Fever": "\n\n  \nFever is a symptom.\nrest",
	}}
	c, done := newTestClient(t, stub)
	defer done()

	s, err := c.Summarize(context.Background(), "Fever")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Text != "Fever is a symptom." {
		t.Fatalf("text = %q", s.Text)
	}
}

func TestSummarize_desambiguacion(t *testing.T) {
	stub := &stubAPI{extracts: map[string]string{
		"Cold": "Cold may refer to:\nCommon cold\nCold (temperature)",
	}}
	c, done := newTestClient(t, stub)
	defer done()

	s, err := c.Summarize(context.Background(), "Cold")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Text != DisambiguationNotice {
		t.Fatalf("expected disambiguation notice, got %q", s.Text)
	}
}

func TestSummarize_sinExtracto(t *testing.T) {
	stub := &stubAPI{extracts: map[string]string{}}
	c, done := newTestClient(t, stub)
	defer done()

	_, err := c.Summarize(context.Background(), "Ghost Article")
	if !errors.Is(err, ErrNoExtract) {
		t.Fatalf("expected ErrNoExtract, got %v", err)
	}
}

func TestSummarize_tituloConEspacios(t *testing.T) {
	stub := &stubAPI{extracts: map[string]string{
		"Common cold": "The common cold is a viral infection.",
	}}
	c, done := newTestClient(t, stub)
	defer done()

	s, err := c.Summarize(context.Background(), "Common cold")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !strings.HasSuffix(s.SourceURL, "/wiki/Common%20cold") {
		t.Fatalf("sourceUrl = %q", s.SourceURL)
	}
}
