package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/karinemajda/delivery-email-app/internal/core/domain"
	"github.com/karinemajda/delivery-email-app/internal/core/ports"
	"github.com/karinemajda/delivery-email-app/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	analyzer      ports.EmailAnalyzer
	reader        ports.DeliveryReader
	queue         ports.MessageQueue
	serverMetrics *metrics.HTTPServerMetrics
	maxEmailChars int
}

func NewRouter(
	analyzer ports.EmailAnalyzer,
	reader ports.DeliveryReader,
	queue ports.MessageQueue,
	serverMetrics *metrics.HTTPServerMetrics,
	maxEmailChars int,
) *Router {
	return &Router{
		analyzer:      analyzer,
		reader:        reader,
		queue:         queue,
		serverMetrics: serverMetrics,
		maxEmailChars: maxEmailChars,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/emails/analyze", rt.analyzeEmail)
	mux.HandleFunc("/v1/emails/submit", rt.submitEmail)
	mux.HandleFunc("/v1/deliveries", rt.listDeliveries)
	mux.HandleFunc("/v1/deliveries/stats", rt.deliveryStats)
	mux.Handle("/metrics", rt.serverMetrics.Handler())

	var handler http.Handler = mux
	handler = rt.serverMetrics.Middleware(serviceName, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type emailRequest struct {
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	Date    string `json:"date"`
	Body    string `json:"body"`
}

// analyzeEmail runs the extraction pipeline synchronously for one email body.
// Every failure names its stage; a store failure still returns the record.
func (rt *Router) analyzeEmail(w http.ResponseWriter, r *http.Request) {
	req, ok := rt.decodeEmail(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := rt.analyzer.Analyze(r.Context(), req.Body)
	rt.serverMetrics.RecordAnalysis(serviceName, analysisOutcome(err), time.Since(start))

	switch {
	case err == nil:
		rt.serverMetrics.RecordDefaultedFields(serviceName, result.Defaulted)
		writeJSON(w, http.StatusOK, result)
	case domain.IsKind(err, domain.ErrStore) && result != nil:
		// Persistence failed after a successful extraction: the user still
		// sees the record, with the save failure called out.
		rt.serverMetrics.RecordDefaultedFields(serviceName, result.Defaulted)
		writeJSON(w, http.StatusOK, map[string]any{
			"record":     result.Record,
			"saved":      false,
			"defaulted":  result.Defaulted,
			"save_error": err.Error(),
		})
	case domain.IsKind(err, domain.ErrMalformedResponse):
		response := map[string]any{"error": "completion was not valid JSON: " + err.Error()}
		if result != nil {
			response["raw_output"] = result.RawOutput
		}
		writeJSON(w, http.StatusUnprocessableEntity, response)
	default:
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{
			"error": "completion call failed: " + err.Error(),
		})
	}
}

// submitEmail queues the email for asynchronous analysis by the worker.
func (rt *Router) submitEmail(w http.ResponseWriter, r *http.Request) {
	req, ok := rt.decodeEmail(w, r)
	if !ok {
		return
	}

	submission := domain.Submission{
		Subject: req.Subject,
		Sender:  req.Sender,
		Date:    req.Date,
		Body:    req.Body,
	}
	if err := rt.queue.PublishSubmission(r.Context(), submission); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "queue submission failed: " + err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (rt *Router) listDeliveries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	records, degraded := rt.reader.History(r.Context())
	if degraded {
		rt.serverMetrics.RecordHistoryDegraded(serviceName)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deliveries": records,
		"degraded":   degraded,
	})
}

func (rt *Router) deliveryStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	summary, degraded := rt.reader.Stats(r.Context())
	if degraded {
		rt.serverMetrics.RecordHistoryDegraded(serviceName)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":    summary,
		"degraded": degraded,
	})
}

func (rt *Router) decodeEmail(w http.ResponseWriter, r *http.Request) (emailRequest, bool) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return emailRequest{}, false
	}

	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return emailRequest{}, false
	}
	if strings.TrimSpace(req.Body) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email body is required"})
		return emailRequest{}, false
	}

	// The prompt builder appends the body verbatim; the context window is
	// finite, so the bound is enforced here.
	if rt.maxEmailChars > 0 && len(req.Body) > rt.maxEmailChars {
		req.Body = req.Body[:rt.maxEmailChars]
	}
	return req, true
}

func analysisOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsKind(err, domain.ErrMalformedResponse):
		return "malformed_response"
	case domain.IsKind(err, domain.ErrStore):
		return "store_error"
	case domain.IsKind(err, domain.ErrCompletion):
		return "completion_error"
	default:
		return "unknown"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
