package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/creator-hub/internal/domain/session"
	"github.com/riskibarqy/creator-hub/internal/platform/logging"
	"github.com/riskibarqy/creator-hub/internal/usecase"
)

// maxBodyBytes leaves room for a 5 MiB profile picture sent as a base64 data URL.
const maxBodyBytes = 8 << 20

type Handler struct {
	authService        *usecase.AuthService
	onboardingService  *usecase.OnboardingService
	campaignService    *usecase.CampaignService
	applicationService *usecase.ApplicationService
	dashboardService   *usecase.DashboardService
	routes             *RouteResolver
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	onboardingService *usecase.OnboardingService,
	campaignService *usecase.CampaignService,
	applicationService *usecase.ApplicationService,
	dashboardService *usecase.DashboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:        authService,
		onboardingService:  onboardingService,
		campaignService:    campaignService,
		applicationService: applicationService,
		dashboardService:   dashboardService,
		routes:             NewRouteResolver(),
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest strictly decodes and validates a JSON body. An empty body
// decodes to the zero value.
func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (session.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return session.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFoundAPI answers unmatched /v1 paths.
func (h *Handler) NotFoundAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NotFoundAPI")
	defer span.End()

	writeError(ctx, w, fmt.Errorf("%w: %s %s", usecase.ErrNotFound, r.Method, r.URL.Path))
}
