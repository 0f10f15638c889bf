package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/econoscope/econoscope/pkg/curator"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// searchHandler finds articles for a keyword and auto-curates them for
// importance scoring. Curation problems degrade to default scores, the search
// response itself always succeeds when the provider does.
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Keyword string `json:"keyword"`
		Display int    `json:"display"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Keyword == "" {
		renderError(w, r, fmt.Errorf("keyword is required"), http.StatusBadRequest)
		return
	}
	if req.Display == 0 {
		req.Display = 10
	}

	if s.searcher == nil {
		renderError(w, r, fmt.Errorf("search provider not configured"), http.StatusInternalServerError)
		return
	}

	articles, err := s.searcher.Search(ctx, req.Keyword, req.Display)
	if err != nil {
		log.Printf("[ERROR] search failed for %q: %v", req.Keyword, err)
		renderError(w, r, fmt.Errorf("failed to search news"), http.StatusInternalServerError)
		return
	}

	result := s.curator.CurateBatch(ctx, articles)

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"keyword":           req.Keyword,
		"totalArticles":     len(result.Articles),
		"articles":          result.Articles,
		"averageImportance": result.AverageScore,
	})
}

// scrapeHandler extracts article content from a URL
func (s *Server) scrapeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		renderError(w, r, fmt.Errorf("url is required"), http.StatusBadRequest)
		return
	}
	if parsed, err := url.Parse(req.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		renderError(w, r, fmt.Errorf("invalid url format"), http.StatusBadRequest)
		return
	}

	result := s.scraper.ScrapeWithRetry(ctx, req.URL)
	if !result.Success {
		renderError(w, r, fmt.Errorf("%s", result.Error), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"title":         result.Title,
		"content":       result.Content,
		"publishedDate": result.PublishedDate,
		"author":        result.Author,
		"wordCount":     len(strings.Fields(result.Content)),
	})
}

// curateHandler scores a caller-supplied batch of articles
func (s *Server) curateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Articles []articleRequest `json:"articles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Articles == nil {
		renderError(w, r, fmt.Errorf("articles array is required"), http.StatusBadRequest)
		return
	}
	if !s.curator.Enabled() {
		renderError(w, r, curator.ErrNotConfigured, http.StatusServiceUnavailable)
		return
	}

	result := s.curator.CurateBatch(ctx, toArticles(req.Articles))

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"articles":     result.Articles,
		"totalCurated": len(result.Articles),
		"averageScore": result.AverageScore,
	})
}

// translateHandler translates Korean text to English
func (s *Server) translateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		renderError(w, r, fmt.Errorf("text is required"), http.StatusBadRequest)
		return
	}

	translation, err := s.curator.Translate(ctx, req.Text)
	if err != nil {
		s.renderCuratorError(w, r, "translate", err)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]string{"translation": translation})
}

// summaryHandler produces a Korean summary from title/description or full
// article content
func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Title == "" && req.Description == "" {
		renderError(w, r, fmt.Errorf("title or description is required"), http.StatusBadRequest)
		return
	}

	summary, err := s.curator.Summarize(ctx, req.Title, req.Description, req.Content)
	if err != nil {
		s.renderCuratorError(w, r, "summarize", err)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]string{"summary": summary})
}

// formatHandler reformats Korean article text for readability
func (s *Server) formatHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		renderError(w, r, fmt.Errorf("text is required"), http.StatusBadRequest)
		return
	}

	formatted, err := s.curator.Format(ctx, req.Text)
	if err != nil {
		s.renderCuratorError(w, r, "format", err)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]string{"formattedContent": formatted})
}

// renderCuratorError maps enrichment errors to status codes, missing
// configuration is a 503, everything else a 500
func (s *Server) renderCuratorError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, curator.ErrNotConfigured) {
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	log.Printf("[ERROR] %s failed: %v", op, err)
	renderError(w, r, fmt.Errorf("failed to %s text", op), http.StatusInternalServerError)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
