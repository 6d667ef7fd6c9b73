package httpapi

import (
	"net/http"

	"github.com/daehyun-cho/matchup/internal/usecase"
)

type createChallengeRequest struct {
	SlotID           int64  `json:"slotId" validate:"required,gt=0"`
	ChallengerTeamID int64  `json:"challengerTeamId" validate:"required,gt=0"`
	Message          string `json:"message" validate:"max=1000"`
}

func (h *Handler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateChallenge")
	defer span.End()

	postID, err := parseID(r.PathValue("postID"), "match post id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createChallengeRequest
	if err := h.decodeRequest(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchPostService.CreateChallenge(ctx, usecase.CreateChallengeInput{
		MatchPostID:      postID,
		SlotID:           req.SlotID,
		ChallengerTeamID: req.ChallengerTeamID,
		Message:          req.Message,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create challenge failed",
			"match_post_id", postID, "challenger_team_id", req.ChallengerTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, challengeToDTO(ctx, created))
}

// AcceptChallenge is the commit point of the whole flow: one challenge
// becomes a match, everything else on the post is resolved.
func (h *Handler) AcceptChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptChallenge")
	defer span.End()

	challengeID, err := parseID(r.PathValue("challengeID"), "challenge id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.acceptanceService.AcceptChallenge(ctx, challengeID)
	if err != nil {
		h.logger.WarnContext(ctx, "accept challenge failed", "challenge_id", challengeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, acceptanceToDTO(ctx, result))
}
