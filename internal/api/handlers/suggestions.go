package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mtgkit/edh-companion/internal/api/response"
	"github.com/mtgkit/edh-companion/internal/commander"
	"github.com/mtgkit/edh-companion/internal/suggestions"
)

// SuggestionsHandler handles partner-suggestion API requests.
type SuggestionsHandler struct {
	service *suggestions.Service
}

// NewSuggestionsHandler creates a new SuggestionsHandler.
func NewSuggestionsHandler(service *suggestions.Service) *SuggestionsHandler {
	return &SuggestionsHandler{service: service}
}

// GetPartnerSuggestions returns ranked partner suggestions for a commander.
//
// Query parameters:
//
//	limit     - max suggestions per pairing mode (default 5, 0 = unlimited)
//	min_score - drop candidates scoring below this (default 0.15)
//	modes     - comma-separated pairing modes to include (default all)
//	refresh   - force a dataset reload ("true"/"1")
func (h *SuggestionsHandler) GetPartnerSuggestions(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		response.BadRequest(w, errors.New("commander name is required"))
		return
	}

	opts := suggestions.DefaultOptions()

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			response.BadRequest(w, fmt.Errorf("invalid limit %q", limitStr))
			return
		}
		opts.LimitPerMode = limit
	}

	if scoreStr := r.URL.Query().Get("min_score"); scoreStr != "" {
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil || score < 0 || score > 1 {
			response.BadRequest(w, fmt.Errorf("invalid min_score %q", scoreStr))
			return
		}
		opts.MinScore = score
	}

	if modesStr := r.URL.Query().Get("modes"); modesStr != "" {
		for _, raw := range strings.Split(modesStr, ",") {
			mode := commander.ParseMode(raw)
			if mode == commander.ModeNone {
				response.BadRequest(w, fmt.Errorf("unknown pairing mode %q", raw))
				return
			}
			opts.IncludeModes = append(opts.IncludeModes, mode)
		}
	}

	if refreshStr := r.URL.Query().Get("refresh"); refreshStr != "" {
		refresh, err := strconv.ParseBool(refreshStr)
		if err != nil {
			response.BadRequest(w, fmt.Errorf("invalid refresh %q", refreshStr))
			return
		}
		opts.Refresh = refresh
	}

	result, err := h.service.GetPartnerSuggestions(r.Context(), name, opts)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if result == nil {
		response.ServiceUnavailable(w, errors.New("partner dataset is unavailable"))
		return
	}

	response.Success(w, result)
}
