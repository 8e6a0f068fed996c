package httpapi

import (
	"net/http"

	"github.com/riskibarqy/creator-hub/internal/usecase"
)

// RequestCode takes an optional bearer token: any session it names is signed
// out before the passcode is issued.
func (h *Handler) RequestCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RequestCode")
	defer span.End()

	token, err := bearerToken(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req requestCodeRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	flow, err := h.authService.RequestCode(ctx, usecase.RequestCodeInput{
		AttemptID:   req.AttemptID,
		Email:       req.Email,
		AccessToken: token,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "request passcode failed", "attempt_id", flow.AttemptID, "error", err)
		if flow.AttemptID != "" {
			writeErrorWithData(ctx, w, err, authFlowToDTO(flow))
			return
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, authFlowToDTO(flow))
}

func (h *Handler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.VerifyCode")
	defer span.End()

	var req verifyCodeRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, flow, err := h.authService.VerifyCode(ctx, usecase.VerifyCodeInput{
		AttemptID: req.AttemptID,
		Code:      req.Code,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "verify passcode failed", "attempt_id", req.AttemptID, "error", err)
		if flow.AttemptID != "" {
			writeErrorWithData(ctx, w, err, authFlowToDTO(flow))
			return
		}
		writeError(ctx, w, err)
		return
	}

	out := verifyCodeResponseDTO{
		Session:  sessionToDTO(result.Session),
		NextStep: result.NextStep,
	}
	if result.Profile.ID != "" {
		item := profileToDTO(result.Profile)
		out.Profile = &item
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) RefreshSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshSession")
	defer span.End()

	var req refreshSessionRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sess, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh session failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(sess))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	token, err := bearerToken(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.authService.ResolveSession(ctx, token)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve session failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionStateToDTO(state))
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignOut")
	defer span.End()

	if err := h.authService.SignOut(ctx, accessTokenFromContext(ctx)); err != nil {
		h.logger.WarnContext(ctx, "sign out failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, redirectDTO{Redirect: pathHome})
}

func (h *Handler) SaveName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveName")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveNameRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.authService.SaveName(ctx, principal.UserID, req.FirstName, req.LastName)
	if err != nil {
		h.logger.WarnContext(ctx, "save name failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveNameResponseDTO{
		Profile:  profileToDTO(item),
		NextStep: usecase.NextStepOnboarding,
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.authService.GetProfile(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}
