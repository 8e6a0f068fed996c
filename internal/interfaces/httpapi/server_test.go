package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/creator-hub/internal/domain/session"
	"github.com/riskibarqy/creator-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/creator-hub/internal/infrastructure/statestore"
	"github.com/riskibarqy/creator-hub/internal/platform/debounce"
	idgen "github.com/riskibarqy/creator-hub/internal/platform/id"
	"github.com/riskibarqy/creator-hub/internal/platform/logging"
	"github.com/riskibarqy/creator-hub/internal/usecase"
)

// fakeIdentity issues "access-<email>" tokens for any 6-digit code.
type fakeIdentity struct {
	mu      sync.Mutex
	sendErr error
	sent    []string
	tokens  map[string]session.Principal
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{tokens: map[string]session.Principal{
		"token-creator": {UserID: "user-1", Email: "creator@example.com", Role: "creator"},
	}}
}

func (f *fakeIdentity) SendOTP(_ context.Context, req usecase.OTPRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, req.Email)
	return nil
}

func (f *fakeIdentity) VerifyOTP(_ context.Context, email, _ string) (session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	principal := session.Principal{UserID: "user-" + email, Email: email, Role: "creator"}
	token := "access-" + email
	f.tokens[token] = principal
	return session.Session{
		AccessToken:  token,
		RefreshToken: "refresh-" + email,
		TokenType:    "bearer",
		ExpiresAt:    time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
		User:         principal,
	}, nil
}

func (f *fakeIdentity) RefreshSession(_ context.Context, refreshToken string) (session.Session, error) {
	return session.Session{}, fmt.Errorf("%w: refresh token %s revoked", usecase.ErrUnauthorized, refreshToken)
}

func (f *fakeIdentity) VerifyAccessToken(_ context.Context, accessToken string) (session.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	principal, ok := f.tokens[accessToken]
	if !ok {
		return session.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func (f *fakeIdentity) SignOut(_ context.Context, accessToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, accessToken)
	return nil
}

func newTestServer(t *testing.T) (http.Handler, *fakeIdentity) {
	t.Helper()

	logger := logging.NewNop()
	ids := idgen.NewUUIDGenerator()
	identity := newFakeIdentity()
	state := statestore.NewMemory(time.Hour)
	profiles := memory.NewProfileRepository(ids)
	applications := memory.NewApplicationRepository(ids)
	campaigns := memory.NewCampaignRepository(memory.SeedCampaigns(), nil, applications)

	autosave := debounce.New(time.Hour, nil)
	t.Cleanup(autosave.Stop)

	handler := NewHandler(
		usecase.NewAuthService(identity, state, profiles, ids, logger, nil),
		usecase.NewOnboardingService(state, profiles, memory.TierCalculator{}, identity, autosave, logger, nil),
		usecase.NewCampaignService(campaigns, profiles),
		usecase.NewApplicationService(campaigns, applications, profiles),
		usecase.NewDashboardService(campaigns, profiles),
		logger,
	)
	return NewRouter(handler, identity, logger, RouterConfig{
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "# metrics\n")
		}),
	}), identity
}

type testEnvelope struct {
	Data  any `json:"data"`
	Error *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
		Errors []struct {
			Reason   string `json:"reason"`
			Message  string `json:"message"`
			Location string `json:"location"`
		} `json:"errors"`
	} `json:"error"`
}

func (e testEnvelope) data() map[string]any {
	out, _ := e.Data.(map[string]any)
	return out
}

func doRequest(t *testing.T, h http.Handler, method, target, token, body string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env testEnvelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s response: %v body=%s", method, target, err, rec.Body.String())
		}
	}
	return rec, env
}

func TestRouter_SystemAndFallbackRoutes(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)

	if rec, _ := doRequest(t, h, http.MethodGet, "/healthz", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", rec.Code)
	}
	if rec, _ := doRequest(t, h, http.MethodGet, "/metrics", "", ""); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "# metrics") {
		t.Fatalf("metrics status=%d body=%q", rec.Code, rec.Body.String())
	}

	rec, _ := doRequest(t, h, http.MethodGet, "/some/unknown/page", "", "")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected 302 to /, got %d location=%q", rec.Code, rec.Header().Get("Location"))
	}

	rec, env := doRequest(t, h, http.MethodGet, "/v1/unknown", "", "")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Status != "NOT_FOUND" {
		t.Fatalf("expected JSON 404 for unknown API path, got %d %+v", rec.Code, env.Error)
	}
}

func TestRouter_AuthorizedRoutesRequireBearer(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)

	for _, target := range []string{"/v1/campaigns", "/v1/dashboard", "/v1/onboarding", "/v1/profile"} {
		rec, env := doRequest(t, h, http.MethodGet, target, "", "")
		if rec.Code != http.StatusUnauthorized || env.Error == nil || env.Error.Status != "UNAUTHENTICATED" {
			t.Fatalf("%s: expected 401, got %d", target, rec.Code)
		}
	}

	rec, _ := doRequest(t, h, http.MethodGet, "/v1/campaigns", "forged", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", rec.Code)
	}
}

func TestRouter_PasscodeSignIn(t *testing.T) {
	t.Parallel()

	h, identity := newTestServer(t)

	rec, env := doRequest(t, h, http.MethodPost, "/v1/auth/otp", "", `{"email":"new@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("request code status=%d body=%s", rec.Code, rec.Body.String())
	}
	if env.data()["stage"] != "awaiting-code" {
		t.Fatalf("expected awaiting-code, got %v", env.data()["stage"])
	}
	attemptID, _ := env.data()["attempt_id"].(string)
	if attemptID == "" || len(identity.sent) != 1 {
		t.Fatalf("expected attempt id and one passcode email, got %q %v", attemptID, identity.sent)
	}

	rec, env = doRequest(t, h, http.MethodPost, "/v1/auth/otp/verify", "", `{"attempt_id":"`+attemptID+`","code":"12a456"}`)
	if rec.Code != http.StatusBadRequest || env.data()["stage"] != "awaiting-code" {
		t.Fatalf("expected 400 keeping awaiting-code, got %d %v", rec.Code, env.data())
	}

	rec, env = doRequest(t, h, http.MethodPost, "/v1/auth/otp/verify", "", `{"attempt_id":"`+attemptID+`","code":"123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify status=%d body=%s", rec.Code, rec.Body.String())
	}
	if env.data()["next_step"] != usecase.NextStepName {
		t.Fatalf("expected next step name, got %v", env.data()["next_step"])
	}
	sess, _ := env.data()["session"].(map[string]any)
	token, _ := sess["access_token"].(string)
	if token != "access-new@example.com" {
		t.Fatalf("unexpected access token %q", token)
	}

	rec, env = doRequest(t, h, http.MethodPut, "/v1/profile/name", token, `{"first_name":"Ada","last_name":"Lovelace"}`)
	if rec.Code != http.StatusOK || env.data()["next_step"] != usecase.NextStepOnboarding {
		t.Fatalf("save name status=%d data=%v", rec.Code, env.data())
	}

	rec, env = doRequest(t, h, http.MethodGet, "/v1/auth/session", token, "")
	if rec.Code != http.StatusOK || env.data()["state"] != string(session.KindAuthenticated) || env.data()["profile_complete"] != false {
		t.Fatalf("unexpected session state %d %v", rec.Code, env.data())
	}

	rec, _ = doRequest(t, h, http.MethodPost, "/v1/auth/logout", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status=%d", rec.Code)
	}
	rec, env = doRequest(t, h, http.MethodGet, "/v1/auth/session", token, "")
	if rec.Code != http.StatusOK || env.data()["state"] != string(session.KindInvalid) {
		t.Fatalf("expected invalid session after logout, got %d %v", rec.Code, env.data())
	}
}

func TestRouter_PasscodeRateLimited(t *testing.T) {
	t.Parallel()

	h, identity := newTestServer(t)
	identity.sendErr = fmt.Errorf("%w: over_email_send_rate_limit", usecase.ErrRateLimited)

	rec, env := doRequest(t, h, http.MethodPost, "/v1/auth/otp", "", `{"email":"new@example.com"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if env.data()["stage"] != "awaiting-email" || env.data()["error"] != "Too many requests. Please wait a minute before requesting another code." {
		t.Fatalf("unexpected flow in error response: %v", env.data())
	}
}

func TestRouter_RejectsUnknownJSONFields(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)

	rec, env := doRequest(t, h, http.MethodPost, "/v1/auth/otp", "", `{"email":"a@example.com","extra":1}`)
	if rec.Code != http.StatusBadRequest || env.Error == nil || env.Error.Errors[0].Reason != "invalidInput" {
		t.Fatalf("expected 400 invalidInput, got %d", rec.Code)
	}
}

func TestRouter_Catalog(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)

	rec, env := doRequest(t, h, http.MethodGet, "/v1/campaigns?search=%20acme%20", "token-creator", "")
	if rec.Code != http.StatusOK || env.data()["state"] != usecase.ViewStateResults {
		t.Fatalf("unexpected catalog response %d %v", rec.Code, env.data())
	}
	items, _ := env.data()["campaigns"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["brand_name"] != "Acme Corp" {
		t.Fatalf("expected only Acme Corp, got %v", items)
	}

	rec, env = doRequest(t, h, http.MethodGet, "/v1/campaigns?search=nothing-matches", "token-creator", "")
	if rec.Code != http.StatusOK || env.data()["state"] != usecase.ViewStateEmpty || env.data()["message"] != usecase.MessageNoCampaigns {
		t.Fatalf("expected empty state, got %d %v", rec.Code, env.data())
	}

	rec, _ = doRequest(t, h, http.MethodGet, "/v1/campaigns?category=Weapons", "token-creator", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", rec.Code)
	}

	rec, env = doRequest(t, h, http.MethodGet, "/v1/campaigns/categories", "", "")
	if rec.Code != http.StatusOK || env.data()["skeleton_count"] != float64(6) {
		t.Fatalf("unexpected catalog meta %d %v", rec.Code, env.data())
	}

	rec, env = doRequest(t, h, http.MethodGet, "/v1/campaigns/does-not-exist", "token-creator", "")
	if rec.Code != http.StatusOK || env.data()["state"] != usecase.ViewStateNotFound {
		t.Fatalf("expected not_found view, got %d %v", rec.Code, env.data())
	}
}

func TestRouter_ApplicationGateForIncompleteProfile(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)
	target := "/v1/campaigns/" + memory.CampaignIDGlowSerum

	rec, env := doRequest(t, h, http.MethodGet, target+"/application", "token-creator", "")
	if rec.Code != http.StatusOK || env.data()["state"] != usecase.ViewStateCompleteProfile || env.data()["redirect"] != "/onboarding" {
		t.Fatalf("expected complete_profile gate, got %d %v", rec.Code, env.data())
	}

	rec, env = doRequest(t, h, http.MethodPost, target+"/applications", "token-creator", `{"pitch":"hi"}`)
	if rec.Code != http.StatusPreconditionFailed || env.Error == nil || env.Error.Status != "FAILED_PRECONDITION" {
		t.Fatalf("expected 412, got %d", rec.Code)
	}
	if env.data()["redirect"] != "/onboarding" {
		t.Fatalf("expected onboarding redirect in error data, got %v", env.data())
	}
}

func TestRouter_OnboardingWizard(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)

	rec, env := doRequest(t, h, http.MethodPatch, "/v1/onboarding/draft", "token-creator", `{"first_name":"Ada","last_name":"Lovelace"}`)
	if rec.Code != http.StatusOK || env.data()["step"] != float64(1) || env.data()["progress"] != float64(33) {
		t.Fatalf("unexpected wizard after patch %d %v", rec.Code, env.data())
	}

	rec, env = doRequest(t, h, http.MethodPost, "/v1/onboarding/next", "token-creator", "")
	if rec.Code != http.StatusBadRequest || env.Error == nil {
		t.Fatalf("expected blocked advance, got %d", rec.Code)
	}
	if item := env.Error.Errors[0]; item.Reason != "stepIncomplete" || item.Location != "date_of_birth" {
		t.Fatalf("unexpected step error %+v", item)
	}

	doRequest(t, h, http.MethodPatch, "/v1/onboarding/draft", "token-creator", `{"date_of_birth":"1990-12-10"}`)
	rec, env = doRequest(t, h, http.MethodPost, "/v1/onboarding/next", "token-creator", "")
	if rec.Code != http.StatusOK || env.data()["step"] != float64(2) {
		t.Fatalf("expected step 2, got %d %v", rec.Code, env.data())
	}

	rec, env = doRequest(t, h, http.MethodPost, "/v1/onboarding/back", "token-creator", "")
	if rec.Code != http.StatusOK || env.data()["step"] != float64(1) {
		t.Fatalf("expected step 1 after back, got %d %v", rec.Code, env.data())
	}
	draft, _ := env.data()["draft"].(map[string]any)
	basic, _ := draft["basic"].(map[string]any)
	if basic["first_name"] != "Ada" || basic["date_of_birth"] != "1990-12-10" {
		t.Fatalf("back discarded fields: %v", basic)
	}

	rec, _ = doRequest(t, h, http.MethodDelete, "/v1/onboarding/accounts/0", "token-creator", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected first account to be required, got %d", rec.Code)
	}
	rec, _ = doRequest(t, h, http.MethodDelete, "/v1/onboarding/accounts/x", "token-creator", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric index, got %d", rec.Code)
	}

	rec, env = doRequest(t, h, http.MethodGet, "/v1/onboarding/niches", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("niches status=%d", rec.Code)
	}
}

func TestRouter_ResolveRoute(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t)

	cases := []struct {
		path     string
		token    string
		name     string
		redirect string
	}{
		{path: "/", name: "home"},
		{path: "/auth/creator", name: "creator_sign_in"},
		{path: "/dashboard", name: "dashboard", redirect: "/auth/creator"},
		{path: "/dashboard", token: "token-creator", name: "dashboard", redirect: "/onboarding"},
		{path: "/onboarding", token: "token-creator", name: "onboarding"},
		{path: "/dashboard/campaigns/abc/apply", token: "token-creator", name: "campaign_apply"},
		{path: "/nowhere", redirect: "/"},
	}

	for _, tc := range cases {
		rec, env := doRequest(t, h, http.MethodGet, "/v1/routes/resolve?path="+tc.path, tc.token, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status=%d", tc.path, rec.Code)
		}
		name, _ := env.data()["name"].(string)
		redirect, _ := env.data()["redirect"].(string)
		if name != tc.name || redirect != tc.redirect {
			t.Fatalf("%s (token=%q): got name=%q redirect=%q", tc.path, tc.token, name, redirect)
		}
	}
}
