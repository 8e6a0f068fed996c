package httpapi

import (
	"time"

	"github.com/riskibarqy/creator-hub/internal/domain/authflow"
	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
	"github.com/riskibarqy/creator-hub/internal/domain/dashboard"
	"github.com/riskibarqy/creator-hub/internal/domain/onboarding"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
	"github.com/riskibarqy/creator-hub/internal/domain/session"
	"github.com/riskibarqy/creator-hub/internal/usecase"
)

type requestCodeRequest struct {
	AttemptID string `json:"attempt_id" validate:"omitempty,max=64"`
	Email     string `json:"email" validate:"required,max=320"`
}

type verifyCodeRequest struct {
	AttemptID string `json:"attempt_id" validate:"required,max=64"`
	Code      string `json:"code" validate:"required"`
}

type refreshSessionRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type saveNameRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

type tiktokAccountPayload struct {
	URL   string `json:"url" validate:"max=2048"`
	Niche string `json:"niche" validate:"max=64"`
}

// updateDraftRequest mirrors onboarding.Patch: absent fields stay unchanged.
type updateDraftRequest struct {
	FirstName      *string                `json:"first_name" validate:"omitempty,max=100"`
	LastName       *string                `json:"last_name" validate:"omitempty,max=100"`
	DateOfBirth    *string                `json:"date_of_birth" validate:"omitempty,max=10"`
	TikTokAccounts []tiktokAccountPayload `json:"tiktok_accounts" validate:"omitempty,dive"`
	GMV            *string                `json:"gmv" validate:"omitempty,max=32"`
	GMVProofURL    *string                `json:"gmv_proof_url" validate:"omitempty,max=2048"`
	Instagram      *string                `json:"instagram" validate:"omitempty,max=2048"`
	ProfilePicture *string                `json:"profile_picture"`
	About          *string                `json:"about" validate:"omitempty,max=2000"`
}

func (r updateDraftRequest) toPatch() onboarding.Patch {
	patch := onboarding.Patch{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		DateOfBirth:    r.DateOfBirth,
		GMV:            r.GMV,
		GMVProofURL:    r.GMVProofURL,
		Instagram:      r.Instagram,
		ProfilePicture: r.ProfilePicture,
		About:          r.About,
	}
	if r.TikTokAccounts != nil {
		patch.TikTokAccounts = make([]onboarding.TikTokAccount, 0, len(r.TikTokAccounts))
		for _, item := range r.TikTokAccounts {
			patch.TikTokAccounts = append(patch.TikTokAccounts, onboarding.TikTokAccount{URL: item.URL, Niche: item.Niche})
		}
	}
	return patch
}

type applyRequest struct {
	Pitch string `json:"pitch"`
}

type authFlowDTO struct {
	AttemptID string `json:"attempt_id"`
	Stage     string `json:"stage"`
	Email     string `json:"email,omitempty"`
	Loading   bool   `json:"loading"`
	Error     string `json:"error,omitempty"`
}

type sessionDTO struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresAt    string       `json:"expires_at"`
	User         principalDTO `json:"user"`
}

type principalDTO struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
}

type verifyCodeResponseDTO struct {
	Session  sessionDTO  `json:"session"`
	Profile  *profileDTO `json:"profile,omitempty"`
	NextStep string      `json:"next_step"`
}

type saveNameResponseDTO struct {
	Profile  profileDTO `json:"profile"`
	NextStep string     `json:"next_step"`
}

type sessionStateDTO struct {
	State           string        `json:"state"`
	Principal       *principalDTO `json:"principal,omitempty"`
	ProfileComplete bool          `json:"profile_complete"`
	Reason          string        `json:"reason,omitempty"`
}

type profileDTO struct {
	ID                string             `json:"id"`
	UserID            string             `json:"user_id"`
	FirstName         string             `json:"first_name"`
	LastName          string             `json:"last_name"`
	DateOfBirth       string             `json:"date_of_birth,omitempty"`
	About             string             `json:"about,omitempty"`
	ProfilePictureURL string             `json:"profile_picture_url,omitempty"`
	InstagramURL      string             `json:"instagram_url,omitempty"`
	GMV               *float64           `json:"gmv,omitempty"`
	GMVProofURL       string             `json:"gmv_proof_url,omitempty"`
	Tier              string             `json:"tier,omitempty"`
	Completed         bool               `json:"completed"`
	TikTokAccounts    []tiktokAccountDTO `json:"tiktok_accounts"`
	UpdatedAtUTC      string             `json:"updated_at_utc,omitempty"`
}

type tiktokAccountDTO struct {
	URL   string `json:"url"`
	Niche string `json:"niche"`
}

type wizardDTO struct {
	Step     int              `json:"step"`
	StepName string           `json:"step_name"`
	Progress int              `json:"progress"`
	Draft    onboarding.Draft `json:"draft"`
	Save     saveStatusDTO    `json:"save"`
}

type saveStatusDTO struct {
	State      string `json:"state"`
	Error      string `json:"error,omitempty"`
	Generation uint64 `json:"generation"`
	SavedAtUTC string `json:"saved_at_utc,omitempty"`
}

type completeOnboardingResponseDTO struct {
	Profile  profileDTO `json:"profile"`
	Redirect string     `json:"redirect"`
}

type campaignDTO struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	BrandName            string           `json:"brand_name"`
	ProductName          string           `json:"product_name"`
	BrandShopLink        string           `json:"brand_shop_link,omitempty"`
	ProductImageURL      string           `json:"product_image_url,omitempty"`
	About                string           `json:"about,omitempty"`
	Category             string           `json:"category,omitempty"`
	Platform             string           `json:"platform,omitempty"`
	CampaignType         string           `json:"campaign_type,omitempty"`
	Amount               float64          `json:"amount"`
	BaseCommission       float64          `json:"base_commission"`
	CommissionBoost      float64          `json:"commission_boost"`
	RetainerMin          *float64         `json:"retainer_min,omitempty"`
	RetainerMax          *float64         `json:"retainer_max,omitempty"`
	GMVTarget            []float64        `json:"gmv_target,omitempty"`
	VideosPerDay         int              `json:"videos_per_day"`
	CampaignDurationDays int              `json:"campaign_duration_days"`
	FreeSamples          bool             `json:"free_samples"`
	Prizes               bool             `json:"prizes"`
	ApplicationStartUTC  string           `json:"application_start_date_utc,omitempty"`
	ApplicationEndUTC    string           `json:"application_end_date_utc,omitempty"`
	Status               string           `json:"status"`
	Deliverables         []deliverableDTO `json:"deliverables"`
	CreatedAtUTC         string           `json:"created_at_utc"`
}

type deliverableDTO struct {
	ID          string `json:"id"`
	CampaignID  string `json:"campaign_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDateUTC  string `json:"due_date_utc"`
	Status      string `json:"status"`
}

type catalogDTO struct {
	State     string        `json:"state"`
	Message   string        `json:"message,omitempty"`
	Search    string        `json:"search"`
	Category  string        `json:"category"`
	Campaigns []campaignDTO `json:"campaigns"`
}

type catalogMetaDTO struct {
	Categories    []string `json:"categories"`
	SkeletonCount int      `json:"skeleton_count"`
}

type campaignViewDTO struct {
	State    string       `json:"state"`
	Campaign *campaignDTO `json:"campaign,omitempty"`
}

type applicationViewDTO struct {
	State    string       `json:"state"`
	Redirect string       `json:"redirect,omitempty"`
	Campaign *campaignDTO `json:"campaign,omitempty"`
	Profile  *profileDTO  `json:"profile,omitempty"`
}

type applicationDTO struct {
	ID           string `json:"id"`
	CampaignID   string `json:"campaign_id"`
	ProfileID    string `json:"profile_id"`
	Pitch        string `json:"pitch,omitempty"`
	Status       string `json:"status"`
	CreatedAtUTC string `json:"created_at_utc"`
}

type redirectDTO struct {
	Redirect string `json:"redirect"`
}

type dashboardDTO struct {
	RetainerTotal   float64                `json:"retainer_total"`
	ActiveCampaigns int                    `json:"active_campaigns"`
	TotalCampaigns  int                    `json:"total_campaigns"`
	Overdue         []dashboardDeliverable `json:"overdue"`
	Upcoming        []dashboardDeliverable `json:"upcoming"`
	GeneratedAtUTC  string                 `json:"generated_at_utc"`
}

type dashboardDeliverable struct {
	Deliverable   deliverableDTO `json:"deliverable"`
	CampaignName  string         `json:"campaign_name,omitempty"`
	RelativeLabel string         `json:"relative_label"`
}

type routeResolutionDTO struct {
	Path        string            `json:"path"`
	Name        string            `json:"name,omitempty"`
	Params      map[string]string `json:"params,omitempty"`
	Placeholder bool              `json:"placeholder"`
	Redirect    string            `json:"redirect,omitempty"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatTimePtr(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}

func authFlowToDTO(v authflow.Flow) authFlowDTO {
	return authFlowDTO{
		AttemptID: v.AttemptID,
		Stage:     string(v.Stage),
		Email:     v.Email,
		Loading:   v.Loading,
		Error:     v.Error,
	}
}

func principalToDTO(v session.Principal) principalDTO {
	return principalDTO{UserID: v.UserID, Email: v.Email, Role: v.Role}
}

func sessionToDTO(v session.Session) sessionDTO {
	return sessionDTO{
		AccessToken:  v.AccessToken,
		RefreshToken: v.RefreshToken,
		TokenType:    v.TokenType,
		ExpiresAt:    formatTime(v.ExpiresAt),
		User:         principalToDTO(v.User),
	}
}

func sessionStateToDTO(v session.State) sessionStateDTO {
	out := sessionStateDTO{State: string(v.Kind), Reason: v.Reason}
	if v.IsAuthenticated() {
		principal := principalToDTO(v.Principal)
		out.Principal = &principal
		out.ProfileComplete = v.ProfileComplete
	}
	return out
}

func profileToDTO(v profile.Profile) profileDTO {
	accounts := make([]tiktokAccountDTO, 0, len(v.TikTokAccounts))
	for _, item := range v.TikTokAccounts {
		accounts = append(accounts, tiktokAccountDTO{URL: item.URL, Niche: item.Niche})
	}
	return profileDTO{
		ID:                v.ID,
		UserID:            v.UserID,
		FirstName:         v.FirstName,
		LastName:          v.LastName,
		DateOfBirth:       v.DateOfBirth,
		About:             v.About,
		ProfilePictureURL: v.ProfilePictureURL,
		InstagramURL:      v.InstagramURL,
		GMV:               v.GMV,
		GMVProofURL:       v.GMVProofURL,
		Tier:              string(v.Tier),
		Completed:         v.Completed,
		TikTokAccounts:    accounts,
		UpdatedAtUTC:      formatTime(v.UpdatedAt),
	}
}

func wizardToDTO(v onboarding.Wizard) wizardDTO {
	return wizardDTO{
		Step:     int(v.Step),
		StepName: v.Step.String(),
		Progress: v.Step.Progress(),
		Draft:    v.Draft,
		Save: saveStatusDTO{
			State:      v.Save.State,
			Error:      v.Save.Error,
			Generation: v.Save.Generation,
			SavedAtUTC: formatTimePtr(v.Save.SavedAt),
		},
	}
}

func campaignToDTO(v campaign.Campaign) campaignDTO {
	deliverables := make([]deliverableDTO, 0, len(v.Deliverables))
	for _, item := range v.Deliverables {
		deliverables = append(deliverables, deliverableToDTO(item))
	}
	return campaignDTO{
		ID:                   v.ID,
		Name:                 v.Name,
		BrandName:            v.BrandName,
		ProductName:          v.ProductName,
		BrandShopLink:        v.BrandShopLink,
		ProductImageURL:      v.ProductImageURL,
		About:                v.About,
		Category:             v.Category,
		Platform:             v.Platform,
		CampaignType:         v.CampaignType,
		Amount:               v.Amount,
		BaseCommission:       v.BaseCommission,
		CommissionBoost:      v.CommissionBoost,
		RetainerMin:          v.RetainerMin,
		RetainerMax:          v.RetainerMax,
		GMVTarget:            v.GMVTarget,
		VideosPerDay:         v.VideosPerDay,
		CampaignDurationDays: v.CampaignDurationDays,
		FreeSamples:          v.FreeSamples,
		Prizes:               v.Prizes,
		ApplicationStartUTC:  formatTimePtr(v.ApplicationStartDate),
		ApplicationEndUTC:    formatTimePtr(v.ApplicationEndDate),
		Status:               v.Status,
		Deliverables:         deliverables,
		CreatedAtUTC:         formatTime(v.CreatedAt),
	}
}

func deliverableToDTO(v campaign.Deliverable) deliverableDTO {
	return deliverableDTO{
		ID:          v.ID,
		CampaignID:  v.CampaignID,
		Title:       v.Title,
		Description: v.Description,
		DueDateUTC:  formatTime(v.DueDate),
		Status:      v.Status,
	}
}

func catalogToDTO(v usecase.CatalogView) catalogDTO {
	items := make([]campaignDTO, 0, len(v.Campaigns))
	for _, item := range v.Campaigns {
		items = append(items, campaignToDTO(item))
	}
	return catalogDTO{
		State:     v.State,
		Message:   v.Message,
		Search:    v.Search,
		Category:  v.Category,
		Campaigns: items,
	}
}

func applicationViewToDTO(v usecase.ApplicationView) applicationViewDTO {
	out := applicationViewDTO{State: v.State, Redirect: v.Redirect}
	if v.State == usecase.ViewStateReady {
		item := campaignToDTO(v.Campaign)
		summary := profileToDTO(v.Profile)
		out.Campaign = &item
		out.Profile = &summary
	}
	return out
}

func applicationToDTO(v campaign.Application) applicationDTO {
	return applicationDTO{
		ID:           v.ID,
		CampaignID:   v.CampaignID,
		ProfileID:    v.ProfileID,
		Pitch:        v.Pitch,
		Status:       v.Status,
		CreatedAtUTC: formatTime(v.CreatedAt),
	}
}

func dashboardToDTO(v dashboard.Summary) dashboardDTO {
	convert := func(items []dashboard.DeliverableItem) []dashboardDeliverable {
		out := make([]dashboardDeliverable, 0, len(items))
		for _, item := range items {
			out = append(out, dashboardDeliverable{
				Deliverable:   deliverableToDTO(item.Deliverable),
				CampaignName:  item.CampaignName,
				RelativeLabel: item.RelativeLabel,
			})
		}
		return out
	}
	return dashboardDTO{
		RetainerTotal:   v.RetainerTotal,
		ActiveCampaigns: v.ActiveCampaigns,
		TotalCampaigns:  v.TotalCampaigns,
		Overdue:         convert(v.Overdue),
		Upcoming:        convert(v.Upcoming),
		GeneratedAtUTC:  formatTime(v.GeneratedAt),
	}
}

func routeResolutionToDTO(v RouteResolution) routeResolutionDTO {
	return routeResolutionDTO{
		Path:        v.Path,
		Name:        v.Name,
		Params:      v.Params,
		Placeholder: v.Placeholder,
		Redirect:    v.Redirect,
	}
}
