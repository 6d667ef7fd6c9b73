package httpapi

import (
	"net/http"

	"github.com/daehyun-cho/matchup/internal/usecase"
)

type slotRequest struct {
	StartAt string `json:"startAt" validate:"required"`
	EndAt   string `json:"endAt" validate:"required"`
}

type createMatchPostRequest struct {
	HostTeamID  int64         `json:"hostTeamId" validate:"required,gt=0"`
	VenueID     string        `json:"venueId" validate:"required"`
	Title       string        `json:"title" validate:"required,max=100"`
	Description string        `json:"description" validate:"required,max=2000"`
	Slots       []slotRequest `json:"slots" validate:"required,min=1,dive"`
}

func (h *Handler) CreateMatchPost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatchPost")
	defer span.End()

	var req createMatchPostRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slots := make([]usecase.SlotInput, 0, len(req.Slots))
	for _, slot := range req.Slots {
		slots = append(slots, usecase.SlotInput{StartAt: slot.StartAt, EndAt: slot.EndAt})
	}

	created, err := h.matchPostService.CreateMatchPost(ctx, usecase.CreateMatchPostInput{
		HostTeamID:  req.HostTeamID,
		VenueID:     req.VenueID,
		Title:       req.Title,
		Description: req.Description,
		Slots:       slots,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match post failed", "host_team_id", req.HostTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchPostToDTO(ctx, created))
}

func (h *Handler) GetMatchPost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchPost")
	defer span.End()

	postID, err := parseID(r.PathValue("postID"), "match post id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.matchPostService.GetMatchPost(ctx, postID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match post failed", "match_post_id", postID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchPostViewToDTO(ctx, view))
}

func (h *Handler) ListMatchPosts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPosts")
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
	includeClosed, err := parseOptionalBool(query.Get("includeClosed"), "includeClosed")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	posts, nextCursor, err := h.matchPostService.ListMatchPosts(ctx, usecase.ListMatchPostsInput{
		Region:        query.Get("region"),
		DateFrom:      query.Get("dateFrom"),
		DateTo:        query.Get("dateTo"),
		Date:          query.Get("date"),
		IncludeClosed: includeClosed,
		Take:          take,
		Cursor:        cursor,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list match posts failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchPostDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, matchPostToDTO(ctx, post))
	}

	writeSuccess(ctx, w, http.StatusOK, matchPostListDTO{Items: items, NextCursor: nextCursor})
}
