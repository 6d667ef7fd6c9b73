package httpapi

import (
	"net/http"

	"github.com/daehyun-cho/matchup/internal/usecase"
)

type createVenueRequest struct {
	Name    string   `json:"name" validate:"required,max=100"`
	Address string   `json:"address" validate:"max=200"`
	Region  string   `json:"region" validate:"required,max=50"`
	Lat     *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng     *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateVenue")
	defer span.End()

	var req createVenueRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.venueService.CreateVenue(ctx, usecase.CreateVenueInput{
		Name:    req.Name,
		Address: req.Address,
		Region:  req.Region,
		Lat:     req.Lat,
		Lng:     req.Lng,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create venue failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, venueToDTO(ctx, created))
}

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVenues")
	defer span.End()

	query := r.URL.Query()
	venues, err := h.venueService.ListVenues(ctx, usecase.ListVenuesInput{
		Region:  query.Get("region"),
		Keyword: query.Get("keyword"),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list venues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]venueDTO, 0, len(venues))
	for _, v := range venues {
		items = append(items, venueToDTO(ctx, v))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListVenueRegions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVenueRegions")
	defer span.End()

	regions, err := h.venueService.ListVenueRegions(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list venue regions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, regions)
}

type backfillVenueCoordinatesRequest struct {
	Limit      int `json:"limit" validate:"gte=0,lte=1000"`
	MaxWorkers int `json:"maxWorkers" validate:"gte=0,lte=16"`
}

func (h *Handler) RunBackfillVenueCoordinatesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBackfillVenueCoordinatesJob")
	defer span.End()

	req := backfillVenueCoordinatesRequest{
		Limit:      h.jobDefaults.BackfillLimit,
		MaxWorkers: h.jobDefaults.BackfillMaxWorkers,
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := h.decodeRequest(r.Body, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	result, err := h.venueService.BackfillVenueCoordinates(ctx, usecase.BackfillVenueCoordinatesInput{
		Limit:      req.Limit,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "venue coordinate backfill failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
