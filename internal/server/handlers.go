// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"lease-advisor/internal/analysis"
	commonerrors "lease-advisor/internal/common/errors"
	"lease-advisor/internal/common/logger"
	"lease-advisor/internal/common/metrics"
	"lease-advisor/internal/common/validation"
	"lease-advisor/internal/models"
	"lease-advisor/internal/recommend"
	"lease-advisor/internal/store"

	"github.com/go-chi/chi/v5"
)

// Recommender is the retry-orchestrated recommendation pipeline.
type Recommender interface {
	Run(ctx context.Context, quiz models.QuizData) (*recommend.Outcome, error)
}

// Analyzer is the deterministic scenario and budget pipeline.
type Analyzer interface {
	Analyze(doc models.RecommendationDocument, quiz models.QuizData) analysis.Result
}

// DealLister serves the curated deal listings, cached or not.
type DealLister interface {
	List(ctx context.Context) ([]models.Deal, error)
	ListByCategory(ctx context.Context, category string) ([]models.Deal, error)
}

// CustomerRegistry persists quiz takers.
type CustomerRegistry interface {
	GetOrCreate(ctx context.Context, in store.CreateCustomerInput) (*models.Customer, bool, error)
}

// LeadRegistry persists leads and serves the admin views.
type LeadRegistry interface {
	Create(ctx context.Context, in store.CreateLeadInput) (*models.Lead, error)
	ListAdmin(ctx context.Context) ([]models.Lead, error)
	GetByID(ctx context.Context, id int64) (*models.Lead, error)
}

// LeadNotifier announces new leads to the admin inbox.
type LeadNotifier interface {
	NotifyLeadCreated(ctx context.Context, lead *models.Lead) error
}

// Handlers holds the route implementations and their collaborators.
type Handlers struct {
	recommender Recommender
	analyzer    Analyzer
	deals       DealLister
	customers   CustomerRegistry
	leads       LeadRegistry
	notifier    LeadNotifier
	errHandler  *commonerrors.ErrorHandler
	logger      logger.Logger
}

func NewHandlers(
	recommender Recommender,
	analyzer Analyzer,
	deals DealLister,
	customers CustomerRegistry,
	leads LeadRegistry,
	notifier LeadNotifier,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		recommender: recommender,
		analyzer:    analyzer,
		deals:       deals,
		customers:   customers,
		leads:       leads,
		notifier:    notifier,
		errHandler:  commonerrors.NewErrorHandler(log),
		logger:      log.With(map[string]interface{}{"component": "http-handlers"}),
	}
}

func (h *Handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Car Lease App API is running!",
	})
}

// ==========================
// Recommendation pipeline
// ==========================

// rawGenerateRequest keeps the undecoded quiz payload for schema validation.
type rawGenerateRequest struct {
	QuizData json.RawMessage `json:"quiz_data"`
}

func (h *Handlers) handleGenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errHandler.WriteError(w, r, commonerrors.NewValidationFailedError("unreadable request body"))
		return
	}

	var raw rawGenerateRequest
	if err := json.Unmarshal(body, &raw); err != nil {
		h.errHandler.WriteError(w, r, commonerrors.NewValidationFailedError("malformed JSON body"))
		return
	}
	if len(raw.QuizData) == 0 || string(raw.QuizData) == "null" {
		h.errHandler.WriteError(w, r, commonerrors.NewValidationFailedError("Quiz data is required"))
		return
	}

	var quiz models.QuizData
	if err := json.Unmarshal(raw.QuizData, &quiz); err != nil {
		h.errHandler.WriteError(w, r, commonerrors.NewValidationFailedError("malformed quiz data"))
		return
	}
	if err := validation.ValidateQuizPayload(raw.QuizData, quiz); err != nil {
		h.errHandler.WriteError(w, r, commonerrors.NewValidationFailedError(err.Error()))
		return
	}

	outcome, runErr := h.recommender.Run(r.Context(), quiz)

	if runErr != nil || outcome == nil || !outcome.Success {
		metrics.RecommendationRequests.WithLabelValues("fallback").Inc()
		metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

		attempts := 0
		errMsg := "recommendation run failed"
		if outcome != nil {
			attempts = outcome.Attempts
			if outcome.Error != "" {
				errMsg = outcome.Error
			}
		}
		h.logger.Warn("serving fallback recommendations", map[string]interface{}{
			"requestId": RequestID(r.Context()),
			"attempts":  attempts,
			"error":     errMsg,
		})
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success":                  false,
			"fallback_recommendations": recommend.FallbackDocument(),
			"error":                    errMsg,
			"attempts":                 attempts,
			"message":                  "Using fallback recommendations due to recommendation source issue",
		})
		return
	}

	analysisResult := h.analyzer.Analyze(*outcome.Data, quiz)

	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	if !analysisResult.Success {
		metrics.RecommendationRequests.WithLabelValues("analysis_failed").Inc()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":             true,
			"gpt_recommendations": outcome.Data,
			"analysis_error":      analysisResult.Error,
			"attempts":            outcome.Attempts,
			"message":             "Recommendations generated, but analysis failed",
		})
		return
	}

	metrics.RecommendationRequests.WithLabelValues("success").Inc()

	response := map[string]interface{}{
		"success":             true,
		"gpt_recommendations": outcome.Data,
		"analysis_result":     analysisResult,
		"attempts":            outcome.Attempts,
		"message":             "Recommendations and analysis completed successfully",
	}
	if outcome.Warning != "" {
		response["warning"] = outcome.Warning
	}
	writeJSON(w, http.StatusOK, response)
}

// ==========================
// Deals
// ==========================

func (h *Handlers) handleListDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := h.deals.List(r.Context())
	if err != nil {
		h.errHandler.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

func (h *Handlers) handleListDealsByCategory(w http.ResponseWriter, r *http.Request) {
	category := urlParam(r, "category")
	deals, err := h.deals.ListByCategory(r.Context(), category)
	if err != nil {
		h.errHandler.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

// ==========================
// Customers and leads
// ==========================

func (h *Handlers) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var in store.CreateCustomerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.errHandler.WriteError(w, r, commonerrors.NewValidationFailedError("malformed JSON body"))
		return
	}
	if in.Email == "" {
		h.errHandler.WriteError(w, r, commonerrors.NewValidationFailedError("email is required"))
		return
	}

	customer, existed, err := h.customers.GetOrCreate(r.Context(), in)
	if err != nil {
		h.errHandler.WriteError(w, r, err)
		return
	}

	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	writeJSON(w, status, customer)
}

func (h *Handlers) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var in store.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.errHandler.WriteError(w, r, commonerrors.NewValidationFailedError("malformed JSON body"))
		return
	}
	if in.CustomerID == 0 {
		h.errHandler.WriteError(w, r, commonerrors.NewValidationFailedError("customer_id is required"))
		return
	}

	lead, err := h.leads.Create(r.Context(), in)
	if err != nil {
		h.errHandler.WriteError(w, r, err)
		return
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyLeadCreated(r.Context(), lead); err != nil {
			h.logger.Warn("lead created but notification failed", map[string]interface{}{
				"leadId": lead.ID,
				"error":  err.Error(),
			})
		}
	}

	writeJSON(w, http.StatusCreated, lead)
}

func (h *Handlers) handleListAdminLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leads.ListAdmin(r.Context())
	if err != nil {
		h.errHandler.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *Handlers) handleGetAdminLead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(urlParam(r, "id"), 10, 64)
	if err != nil {
		h.errHandler.WriteError(w, r, commonerrors.NewValidationFailedError("lead id must be numeric"))
		return
	}

	lead, err := h.leads.GetByID(r.Context(), id)
	if err != nil {
		h.errHandler.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
