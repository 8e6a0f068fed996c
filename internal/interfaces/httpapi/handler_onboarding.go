package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskibarqy/creator-hub/internal/domain/onboarding"
	"github.com/riskibarqy/creator-hub/internal/domain/session"
	"github.com/riskibarqy/creator-hub/internal/usecase"
)

func (h *Handler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	h.serveWizard(w, r, "httpapi.Handler.GetOnboarding", func(ctx context.Context, p session.Principal) (onboarding.Wizard, error) {
		return h.onboardingService.GetWizard(ctx, p.UserID)
	})
}

func (h *Handler) UpdateOnboardingDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateOnboardingDraft")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateDraftRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	wizard, err := h.onboardingService.UpdateDraft(ctx, usecase.UpdateDraftInput{
		UserID:      principal.UserID,
		AccessToken: accessTokenFromContext(ctx),
		Patch:       req.toPatch(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update onboarding draft failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, wizardToDTO(wizard))
}

func (h *Handler) AddOnboardingAccount(w http.ResponseWriter, r *http.Request) {
	h.serveWizard(w, r, "httpapi.Handler.AddOnboardingAccount", func(ctx context.Context, p session.Principal) (onboarding.Wizard, error) {
		return h.onboardingService.AddAccount(ctx, p.UserID, accessTokenFromContext(ctx))
	})
}

func (h *Handler) RemoveOnboardingAccount(w http.ResponseWriter, r *http.Request) {
	h.serveWizard(w, r, "httpapi.Handler.RemoveOnboardingAccount", func(ctx context.Context, p session.Principal) (onboarding.Wizard, error) {
		index, err := strconv.Atoi(r.PathValue("index"))
		if err != nil {
			return onboarding.Wizard{}, fmt.Errorf("%w: account index must be a number", usecase.ErrInvalidInput)
		}
		return h.onboardingService.RemoveAccount(ctx, p.UserID, accessTokenFromContext(ctx), index)
	})
}

func (h *Handler) NextOnboardingStep(w http.ResponseWriter, r *http.Request) {
	h.serveWizard(w, r, "httpapi.Handler.NextOnboardingStep", func(ctx context.Context, p session.Principal) (onboarding.Wizard, error) {
		return h.onboardingService.Next(ctx, p.UserID)
	})
}

func (h *Handler) PreviousOnboardingStep(w http.ResponseWriter, r *http.Request) {
	h.serveWizard(w, r, "httpapi.Handler.PreviousOnboardingStep", func(ctx context.Context, p session.Principal) (onboarding.Wizard, error) {
		return h.onboardingService.Back(ctx, p.UserID)
	})
}

func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteOnboarding")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.onboardingService.Complete(ctx, principal.UserID, accessTokenFromContext(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "complete onboarding failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, completeOnboardingResponseDTO{
		Profile:  profileToDTO(item),
		Redirect: usecase.DashboardRedirect,
	})
}

func (h *Handler) ListNiches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNiches")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, onboarding.Niches())
}

func (h *Handler) serveWizard(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	op func(ctx context.Context, p session.Principal) (onboarding.Wizard, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	wizard, err := op(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "onboarding operation failed", "operation", spanName, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, wizardToDTO(wizard))
}
