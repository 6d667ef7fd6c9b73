package httpapi

import (
	"net/http"

	"github.com/daehyun-cho/matchup/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	teamID, err := parseOptionalID(query.Get("teamId"), "teamId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
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

	matches, nextCursor, err := h.matchService.ListMatches(ctx, usecase.ListMatchesInput{
		TeamID: teamID,
		Status: query.Get("status"),
		Take:   take,
		Cursor: cursor,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, matchListDTO{Items: items, NextCursor: nextCursor})
}
