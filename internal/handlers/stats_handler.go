package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wordletracker/internal/cache"
	"wordletracker/internal/models"
	"wordletracker/internal/security"
	"wordletracker/internal/service"
)

// StatsHandler serves the public read-only statistics endpoints
type StatsHandler struct {
	statsService     *service.StatsService
	statsCache       *cache.StatsCache
	shareTokenSecret string
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService, statsCache *cache.StatsCache, shareTokenSecret string) *StatsHandler {
	return &StatsHandler{
		statsService:     statsService,
		statsCache:       statsCache,
		shareTokenSecret: shareTokenSecret,
	}
}

// respondCached serves the cached payload for key, building and caching it
// on a miss. Reads are pure over committed store state, so serving a cached
// body is always a consistent snapshot.
func (h *StatsHandler) respondCached(w http.ResponseWriter, key string, build func() (interface{}, error)) {
	if body, ok := h.statsCache.Get(key); ok {
		writeJSON(w, http.StatusOK, body)
		return
	}

	payload, err := build()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Failed to compute "+key, err)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Failed to marshal "+key, err)
		return
	}

	h.statsCache.Set(key, body)
	writeJSON(w, http.StatusOK, body)
}

// GetAllTimeStats handles GET /api/stats/all-time
func (h *StatsHandler) GetAllTimeStats(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, "stats:all-time", func() (interface{}, error) {
		return h.statsService.AllTimeStats()
	})
}

// GetLastWeekStats handles GET /api/stats/last-week
func (h *StatsHandler) GetLastWeekStats(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, "stats:last-week", func() (interface{}, error) {
		return h.statsService.LastWeekStats()
	})
}

// GetRankings handles GET /api/rankings
func (h *StatsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, "rankings", func() (interface{}, error) {
		return h.statsService.Rankings()
	})
}

// GetPlotData handles GET /api/plot-data
func (h *StatsHandler) GetPlotData(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, "plot-data", func() (interface{}, error) {
		return h.statsService.PlotData()
	})
}

// GetFacts handles GET /api/facts with optional start_day and end_day
// query parameters. Range-restricted requests bypass the cache.
func (h *StatsHandler) GetFacts(w http.ResponseWriter, r *http.Request) {
	startDay, err := optionalDayParam(r, "start_day")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid start_day", "", nil)
		return
	}
	endDay, err := optionalDayParam(r, "end_day")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid end_day", "", nil)
		return
	}

	if startDay == nil && endDay == nil {
		h.respondCached(w, "facts", func() (interface{}, error) {
			return h.statsService.InterestingFacts(nil, nil)
		})
		return
	}

	facts, err := h.statsService.InterestingFacts(startDay, endDay)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	respondJSON(w, http.StatusOK, facts)
}

// ListDays handles GET /api/days
func (h *StatsHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.statsService.Days()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Failed to list days", err)
		return
	}
	if days == nil {
		days = []int{}
	}
	respondJSON(w, http.StatusOK, map[string][]int{"days": days})
}

// GetDayDetail handles GET /api/days/{day}
func (h *StatsHandler) GetDayDetail(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid day number", "", nil)
		return
	}

	detail, err := h.statsService.DayDetail(day)
	if errors.Is(err, models.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "day not found", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Failed to load day detail", err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// GetOverview handles GET /api/overview
func (h *StatsHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, "overview", func() (interface{}, error) {
		return h.statsService.Overview()
	})
}

// GetShared handles GET /share/{token}: a tokenized read-only view of the
// all-time statistics and rankings for people outside the group.
func (h *StatsHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if err := security.ValidateShareToken(h.shareTokenSecret, token); err != nil {
		respondWithError(w, http.StatusForbidden, "invalid or expired share link", "", nil)
		return
	}

	allTime, err := h.statsService.AllTimeStats()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Failed to compute shared stats", err)
		return
	}
	rankings, err := h.statsService.Rankings()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Failed to compute shared rankings", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stats":    allTime,
		"rankings": rankings,
	})
}

// Export handles GET /api/export: a single self-contained JSON document
// with the stats, rankings, facts, and plot series, for offline viewing.
func (h *StatsHandler) Export(w http.ResponseWriter, r *http.Request) {
	allTime, err := h.statsService.AllTimeStats()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Export failed", err)
		return
	}
	lastWeek, err := h.statsService.LastWeekStats()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Export failed", err)
		return
	}
	rankings, err := h.statsService.Rankings()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Export failed", err)
		return
	}
	facts, err := h.statsService.InterestingFacts(nil, nil)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Export failed", err)
		return
	}
	plot, err := h.statsService.PlotData()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Export failed", err)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=wordletracker_export.json")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"all_time_stats":  allTime,
		"last_week_stats": lastWeek,
		"rankings":        rankings,
		"facts":           facts,
		"plot_data":       plot,
	})
}

func optionalDayParam(r *http.Request, name string) (*int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	day, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &day, nil
}
