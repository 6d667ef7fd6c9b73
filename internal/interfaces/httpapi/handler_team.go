package httpapi

import (
	"net/http"

	"github.com/daehyun-cho/matchup/internal/usecase"
)

type createTeamRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Sport       string `json:"sport" validate:"required"`
	Region      string `json:"region" validate:"required,max=50"`
	LogoURL     string `json:"logoUrl" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=500"`
	SkillRating int    `json:"skillRating" validate:"gte=0"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		Name:        req.Name,
		Sport:       req.Sport,
		Region:      req.Region,
		LogoURL:     req.LogoURL,
		Description: req.Description,
		SkillRating: req.SkillRating,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(ctx, created))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := parseID(r.PathValue("teamID"), "team id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	found, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, found))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	query := r.URL.Query()
	take, err := parseOptionalInt(query.Get("take"), "take")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	cursor, err := parseOptionalID(query.Get("cursor"), "cursor")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, nextCursor, err := h.teamService.ListTeams(ctx, usecase.ListTeamsInput{
		Region: query.Get("region"),
		Sport:  query.Get("sport"),
		Take:   take,
		Cursor: cursor,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, teamListDTO{Items: items, NextCursor: nextCursor})
}
