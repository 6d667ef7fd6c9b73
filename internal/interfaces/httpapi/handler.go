package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/daehyun-cho/matchup/internal/platform/logging"
	"github.com/daehyun-cho/matchup/internal/usecase"
)

// JobDefaults carries operator-configured defaults for internal jobs
// invoked without an explicit request body.
type JobDefaults struct {
	BackfillLimit      int
	BackfillMaxWorkers int
}

type Handler struct {
	teamService       *usecase.TeamService
	venueService      *usecase.VenueService
	matchPostService  *usecase.MatchPostService
	acceptanceService *usecase.AcceptanceService
	matchService      *usecase.MatchService
	jobDefaults       JobDefaults
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	venueService *usecase.VenueService,
	matchPostService *usecase.MatchPostService,
	acceptanceService *usecase.AcceptanceService,
	matchService *usecase.MatchService,
	jobDefaults JobDefaults,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:       teamService,
		venueService:      venueService,
		matchPostService:  matchPostService,
		acceptanceService: acceptanceService,
		matchService:      matchService,
		jobDefaults:       jobDefaults,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(body io.Reader, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parseID(raw, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, field)
	}

	return id, nil
}

// parseOptionalID tolerates absence; empty input yields zero.
func parseOptionalID(raw, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	return parseID(raw, field)
}

func parseOptionalInt(raw, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, field)
	}

	return value, nil
}

func parseOptionalBool(raw, field string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, field)
	}

	return value, nil
}
