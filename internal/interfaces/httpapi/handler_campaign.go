package httpapi

import (
	"errors"
	"net/http"

	"github.com/riskibarqy/creator-hub/internal/usecase"
)

func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCampaigns")
	defer span.End()

	query := r.URL.Query()
	view, err := h.campaignService.List(ctx, query.Get("search"), query.Get("category"))
	if err != nil {
		h.logger.WarnContext(ctx, "list campaigns failed", "category", query.Get("category"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, catalogToDTO(view))
}

func (h *Handler) GetCatalogMeta(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCatalogMeta")
	defer span.End()

	meta := h.campaignService.Catalog()
	writeSuccess(ctx, w, http.StatusOK, catalogMetaDTO{
		Categories:    meta.Categories,
		SkeletonCount: meta.SkeletonCount,
	})
}

// GetCampaign reports a missing campaign as a not_found view with status 200.
func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCampaign")
	defer span.End()

	campaignID := r.PathValue("campaignID")
	view, err := h.campaignService.Get(ctx, campaignID)
	if err != nil {
		h.logger.WarnContext(ctx, "get campaign failed", "campaign_id", campaignID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := campaignViewDTO{State: view.State}
	if view.State == usecase.ViewStateReady {
		item := campaignToDTO(view.Campaign)
		out.Campaign = &item
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetApplicationView(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetApplicationView")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	campaignID := r.PathValue("campaignID")
	view, err := h.campaignService.GetApplicationView(ctx, principal.UserID, campaignID)
	if err != nil {
		h.logger.WarnContext(ctx, "get application view failed", "user_id", principal.UserID, "campaign_id", campaignID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, applicationViewToDTO(view))
}

func (h *Handler) ApplyToCampaign(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyToCampaign")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req applyRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	campaignID := r.PathValue("campaignID")
	item, err := h.applicationService.Apply(ctx, usecase.ApplyInput{
		UserID:     principal.UserID,
		CampaignID: campaignID,
		Pitch:      req.Pitch,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "apply to campaign failed", "user_id", principal.UserID, "campaign_id", campaignID, "error", err)
		writeErrorWithData(ctx, w, err, applyErrorData(err))
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, applicationToDTO(item))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.dashboardService.Get(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(summary))
}

func (h *Handler) ResolveRoute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveRoute")
	defer span.End()

	token, err := bearerToken(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.authService.ResolveSession(ctx, token)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, routeResolutionToDTO(h.routes.Resolve(r.URL.Query().Get("path"), state)))
}

// applyErrorData points an incomplete profile at the onboarding wizard.
func applyErrorData(err error) any {
	if errors.Is(err, usecase.ErrProfileIncomplete) {
		return redirectDTO{Redirect: usecase.OnboardingRedirect}
	}
	return nil
}
