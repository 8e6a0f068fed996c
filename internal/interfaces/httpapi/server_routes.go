package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics == nil {
		return
	}

	mux.Handle("GET /metrics", metrics)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/otp", handler.RequestCode)
	mux.HandleFunc("POST /v1/auth/otp/verify", handler.VerifyCode)
	mux.HandleFunc("POST /v1/auth/token/refresh", handler.RefreshSession)
	mux.HandleFunc("GET /v1/auth/session", handler.GetSession)
	mux.HandleFunc("GET /v1/onboarding/niches", handler.ListNiches)
	mux.HandleFunc("GET /v1/campaigns/categories", handler.GetCatalogMeta)
	mux.HandleFunc("GET /v1/routes/resolve", handler.ResolveRoute)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedAccountRoutes(mux, handler, verifier)
	registerAuthorizedOnboardingRoutes(mux, handler, verifier)
	registerAuthorizedCampaignRoutes(mux, handler, verifier)
}

func registerAuthorizedAccountRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/auth/logout", RequireAuth(verifier, http.HandlerFunc(handler.SignOut)))
	mux.Handle("PUT /v1/profile/name", RequireAuth(verifier, http.HandlerFunc(handler.SaveName)))
	mux.Handle("GET /v1/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetProfile)))
	mux.Handle("GET /v1/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetDashboard)))
}

func registerAuthorizedOnboardingRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/onboarding", RequireAuth(verifier, http.HandlerFunc(handler.GetOnboarding)))
	mux.Handle("PATCH /v1/onboarding/draft", RequireAuth(verifier, http.HandlerFunc(handler.UpdateOnboardingDraft)))
	mux.Handle("POST /v1/onboarding/accounts", RequireAuth(verifier, http.HandlerFunc(handler.AddOnboardingAccount)))
	mux.Handle("DELETE /v1/onboarding/accounts/{index}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveOnboardingAccount)))
	mux.Handle("POST /v1/onboarding/next", RequireAuth(verifier, http.HandlerFunc(handler.NextOnboardingStep)))
	mux.Handle("POST /v1/onboarding/back", RequireAuth(verifier, http.HandlerFunc(handler.PreviousOnboardingStep)))
	mux.Handle("POST /v1/onboarding/complete", RequireAuth(verifier, http.HandlerFunc(handler.CompleteOnboarding)))
}

func registerAuthorizedCampaignRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/campaigns", RequireAuth(verifier, http.HandlerFunc(handler.ListCampaigns)))
	mux.Handle("GET /v1/campaigns/{campaignID}", RequireAuth(verifier, http.HandlerFunc(handler.GetCampaign)))
	mux.Handle("GET /v1/campaigns/{campaignID}/application", RequireAuth(verifier, http.HandlerFunc(handler.GetApplicationView)))
	mux.Handle("POST /v1/campaigns/{campaignID}/applications", RequireAuth(verifier, http.HandlerFunc(handler.ApplyToCampaign)))
}

// registerFallbackRoutes keeps unknown API paths in the JSON envelope and
// sends every other unknown path to the landing page.
func registerFallbackRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Healthz)
	mux.HandleFunc("/v1/", handler.NotFoundAPI)
	mux.HandleFunc("/", redirectHome)
}
