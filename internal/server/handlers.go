package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ledgersight/ledgersight/internal/analytics"
	"github.com/ledgersight/ledgersight/internal/model"
)

// Dashboard is the assembled report payload. Slices that fail to compute are
// replaced by their zero value so one bad slice never takes down the report.
type Dashboard struct {
	Trend       []model.TrendPoint       `json:"trend"`
	Metrics     model.CoreMetrics        `json:"metrics"`
	Income      []model.CompositionItem  `json:"income_composition"`
	Expense     []model.CompositionItem  `json:"expense_composition"`
	Recurring   []model.RecurringExpense `json:"recurring_expenses"`
	Flexible    []model.CompositionItem  `json:"flexible_composition"`
	GeneratedAt time.Time                `json:"generated_at"`
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	start, end, ok := s.dateRange(w, r)
	if !ok {
		return
	}
	g := r.URL.Query().Get("granularity")
	if g == "" {
		g = string(analytics.GranularityDay)
	}

	trend, err := s.svc.GetNetWorthTrend(start, end, analytics.Granularity(g))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, trend)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	start, end, ok := s.dateRange(w, r)
	if !ok {
		return
	}

	metrics, err := s.svc.GetCoreMetrics(start, end)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, metrics)
}

func (s *Server) handleComposition(w http.ResponseWriter, r *http.Request) {
	start, end, ok := s.dateRange(w, r)
	if !ok {
		return
	}
	kind := analytics.Kind(r.URL.Query().Get("kind"))

	items, err := s.svc.GetComposition(start, end, kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, items)
}

func (s *Server) handleRecurring(w http.ResponseWriter, r *http.Request) {
	recurring, err := s.svc.GetRecurringExpenses()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, recurring)
}

func (s *Server) handleFlexible(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	items, err := s.svc.GetFlexibleComposition(month)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, items)
}

// handleDashboard assembles the full report. Each slice is computed
// independently: a failed slice is logged and left at its zero value while
// the rest of the report proceeds.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	start, end, ok := s.dateRange(w, r)
	if !ok {
		return
	}

	d := Dashboard{GeneratedAt: time.Now().UTC()}

	var err error
	if d.Trend, err = s.svc.GetNetWorthTrend(start, end, analytics.GranularityDay); err != nil {
		s.warn(r, "trend", err)
	}
	if d.Metrics, err = s.svc.GetCoreMetrics(start, end); err != nil {
		s.warn(r, "metrics", err)
	}
	if d.Income, err = s.svc.GetComposition(start, end, analytics.KindIncome); err != nil {
		s.warn(r, "income composition", err)
	}
	if d.Expense, err = s.svc.GetComposition(start, end, analytics.KindExpense); err != nil {
		s.warn(r, "expense composition", err)
	}
	if d.Recurring, err = s.svc.GetRecurringExpenses(); err != nil {
		s.warn(r, "recurring expenses", err)
	}
	if d.Flexible, err = s.svc.GetFlexibleComposition(end.Format("2006-01")); err != nil {
		s.warn(r, "flexible composition", err)
	}

	s.respond(w, d)
}

// dateRange parses start/end query params, defaulting to the current month.
func (s *Server) dateRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		now := time.Now().UTC()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, -1), true
	}

	start, err := time.ParseInLocation("2006-01-02", startStr, time.UTC)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid start date")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, time.UTC)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid end date")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (s *Server) respond(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error().Err(err).Msg("encoding response")
	}
}

// fail maps validation errors to 400 and everything else to 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, analytics.ErrInvalidRange),
		errors.Is(err, analytics.ErrRangeTooLarge),
		errors.Is(err, analytics.ErrBadGranularity),
		errors.Is(err, analytics.ErrBadKind),
		errors.Is(err, analytics.ErrBadMonth):
		httpError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("analytics query failed")
		httpError(w, http.StatusInternalServerError, "analytics query failed")
	}
}

func (s *Server) warn(r *http.Request, slice string, err error) {
	s.log.Warn().Err(err).Str("path", r.URL.Path).Str("slice", slice).Msg("dashboard slice failed, continuing with empty value")
}

func httpError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
