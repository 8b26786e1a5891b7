package httpadapter

import (
	"bufio"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
	"github.com/haonguyen/perfume-catalog/internal/core/ports"
	"github.com/haonguyen/perfume-catalog/internal/observability/metrics"
)

type Router struct {
	ingest  ports.PerfumeIngestor
	batch   ports.BatchIngestor
	catalog ports.CatalogReader
	queue   ports.MessageQueue

	metrics *metrics.HTTPServerMetrics
	service string

	rateLimitRPS   float64
	rateLimitBurst int
}

type Options struct {
	ServiceName    string
	Metrics        *metrics.HTTPServerMetrics
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(
	ingest ports.PerfumeIngestor,
	batch ports.BatchIngestor,
	catalog ports.CatalogReader,
	queue ports.MessageQueue,
	opts Options,
) *Router {
	service := opts.ServiceName
	if service == "" {
		service = "api"
	}
	return &Router{
		ingest:         ingest,
		batch:          batch,
		catalog:        catalog,
		queue:          queue,
		metrics:        opts.Metrics,
		service:        service,
		rateLimitRPS:   opts.RateLimitRPS,
		rateLimitBurst: opts.RateLimitBurst,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/ingest", rt.ingestOne)
	mux.HandleFunc("/v1/ingest/batch", rt.ingestBatch)
	mux.HandleFunc("/v1/ingest/async", rt.ingestAsync)
	mux.HandleFunc("/v1/perfumes", rt.listPerfumes)
	mux.HandleFunc("/v1/perfumes/", rt.perfumeSubtree)
	mux.HandleFunc("/v1/ingredients", rt.listIngredients)
	mux.HandleFunc("/v1/ingredients/", rt.getIngredient)

	var handler http.Handler = mux
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	handler = rateLimitMiddleware(rt.rateLimitRPS, rt.rateLimitBurst, handler)
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type ingestRequestBody struct {
	SourceURL string         `json:"source_url"`
	Year      *int           `json:"year,omitempty"`
	Overrides map[string]any `json:"overrides,omitempty"`
}

func (b ingestRequestBody) options() domain.IngestOptions {
	return domain.IngestOptions{
		Year:      b.Year,
		Overrides: b.Overrides,
	}
}

func (rt *Router) ingestOne(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req ingestRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.SourceURL) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "source_url is required"})
		return
	}

	start := time.Now()
	outcome := rt.ingest.Ingest(r.Context(), req.SourceURL, req.options())
	if rt.metrics != nil {
		rt.metrics.RecordIngest(rt.service, outcome.Success, failedStepLabel(outcome), time.Since(start))
	}

	if !outcome.Success {
		writeJSON(w, http.StatusUnprocessableEntity, outcome)
		return
	}
	writeJSON(w, http.StatusCreated, outcome)
}

type batchRequestBody struct {
	SourceURLs []string       `json:"source_urls"`
	Year       *int           `json:"year,omitempty"`
	Overrides  map[string]any `json:"overrides,omitempty"`
}

func (rt *Router) ingestBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req batchRequestBody
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "text/plain") {
		scanner := bufio.NewScanner(r.Body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			req.SourceURLs = append(req.SourceURLs, line)
		}
		if err := scanner.Err(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
	}
	if len(req.SourceURLs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "source_urls is required"})
		return
	}

	outcome := rt.batch.IngestBatch(r.Context(), req.SourceURLs, domain.IngestOptions{
		Year:      req.Year,
		Overrides: req.Overrides,
	})
	if rt.metrics != nil {
		rt.metrics.RecordBatch(rt.service, outcome.Total, outcome.Successful, outcome.Failed)
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (rt *Router) ingestAsync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.queue == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "async ingestion is not configured"})
		return
	}

	var req ingestRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.SourceURL) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "source_url is required"})
		return
	}

	err := rt.queue.PublishIngestRequested(r.Context(), ports.IngestRequest{
		SourceURL: req.SourceURL,
		Options:   req.options(),
	})
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":     "queued",
		"request_id": requestIDFromContext(r.Context()),
	})
}

func (rt *Router) listPerfumes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var (
		perfumes []domain.Perfume
		err      error
	)
	if family := strings.TrimSpace(r.URL.Query().Get("family")); family != "" {
		perfumes, err = rt.catalog.PerfumesByFamily(r.Context(), family)
	} else {
		perfumes, err = rt.catalog.ListPerfumes(r.Context())
	}
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"perfumes": perfumes, "count": len(perfumes)})
}

func (rt *Router) perfumeSubtree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/perfumes/")
	if rest == "search" {
		rt.searchPerfumes(w, r)
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "perfume id must be an integer"})
		return
	}

	perfume, err := rt.catalog.GetPerfume(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, perfume)
}

func (rt *Router) searchPerfumes(w http.ResponseWriter, r *http.Request) {
	perfumes, err := rt.catalog.SearchPerfumes(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"perfumes": perfumes, "count": len(perfumes)})
}

func (rt *Router) listIngredients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	ingredients, err := rt.catalog.ListIngredients(r.Context())
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ingredients": ingredients, "count": len(ingredients)})
}

func (rt *Router) getIngredient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/ingredients/")
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ingredient id must be an integer"})
		return
	}

	ingredient, err := rt.catalog.GetIngredient(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ingredient)
}

// failedStepLabel names the pipeline step a failed outcome stopped at,
// for the step-failure counter.
func failedStepLabel(outcome *domain.IngestOutcome) string {
	if outcome == nil || outcome.Success || len(outcome.Steps) == 0 {
		return ""
	}
	last := outcome.Steps[len(outcome.Steps)-1]
	if last.Status != domain.StepFailed {
		return ""
	}
	switch last.Step {
	case 1:
		return "validate"
	case 2:
		return "fetch"
	case 3:
		return "store"
	case 4:
		return "analyze"
	case 5:
		return "persist"
	default:
		return "unknown"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
