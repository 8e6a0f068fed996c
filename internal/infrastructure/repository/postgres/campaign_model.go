package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
)

const campaignColumns = "id, profile_id, name, brand_name, product_name, brand_shop_link, product_image_url, about, category, platform, campaign_type, amount, base_commission, commission_boost, retainer_min, retainer_max, gmv_target, videos_per_day, campaign_duration_days, free_samples, prizes, tracking_link, application_start_date, application_end_date, status, created_at, updated_at"

const deliverableColumns = "id, campaign_id, profile_id, title, description, due_date, status, created_at, updated_at"

const applicationColumns = "id, campaign_id, profile_id, pitch, status, created_at"

type campaignTableModel struct {
	ID                   string          `db:"id"`
	ProfileID            sql.NullString  `db:"profile_id"`
	Name                 string          `db:"name"`
	BrandName            sql.NullString  `db:"brand_name"`
	ProductName          sql.NullString  `db:"product_name"`
	BrandShopLink        sql.NullString  `db:"brand_shop_link"`
	ProductImageURL      sql.NullString  `db:"product_image_url"`
	About                sql.NullString  `db:"about"`
	Category             sql.NullString  `db:"category"`
	Platform             sql.NullString  `db:"platform"`
	CampaignType         sql.NullString  `db:"campaign_type"`
	Amount               sql.NullFloat64 `db:"amount"`
	BaseCommission       sql.NullFloat64 `db:"base_commission"`
	CommissionBoost      sql.NullFloat64 `db:"commission_boost"`
	RetainerMin          sql.NullFloat64 `db:"retainer_min"`
	RetainerMax          sql.NullFloat64 `db:"retainer_max"`
	GMVTarget            pq.Float64Array `db:"gmv_target"`
	VideosPerDay         sql.NullInt64   `db:"videos_per_day"`
	CampaignDurationDays sql.NullInt64   `db:"campaign_duration_days"`
	FreeSamples          sql.NullBool    `db:"free_samples"`
	Prizes               sql.NullBool    `db:"prizes"`
	TrackingLink         sql.NullString  `db:"tracking_link"`
	ApplicationStartDate sql.NullTime    `db:"application_start_date"`
	ApplicationEndDate   sql.NullTime    `db:"application_end_date"`
	Status               string          `db:"status"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

type deliverableTableModel struct {
	ID          string         `db:"id"`
	CampaignID  string         `db:"campaign_id"`
	ProfileID   sql.NullString `db:"profile_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	DueDate     time.Time      `db:"due_date"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type applicationTableModel struct {
	ID         string         `db:"id"`
	CampaignID string         `db:"campaign_id"`
	ProfileID  string         `db:"profile_id"`
	Pitch      sql.NullString `db:"pitch"`
	Status     string         `db:"status"`
	CreatedAt  time.Time      `db:"created_at"`
}

type applicationInsertModel struct {
	CampaignID string  `db:"campaign_id"`
	ProfileID  string  `db:"profile_id"`
	Pitch      *string `db:"pitch"`
	Status     string  `db:"status"`
}

func campaignFromRow(row campaignTableModel) campaign.Campaign {
	return campaign.Campaign{
		ID:                   row.ID,
		ProfileID:            trimNull(row.ProfileID),
		Name:                 row.Name,
		BrandName:            trimNull(row.BrandName),
		ProductName:          trimNull(row.ProductName),
		BrandShopLink:        trimNull(row.BrandShopLink),
		ProductImageURL:      trimNull(row.ProductImageURL),
		About:                row.About.String,
		Category:             trimNull(row.Category),
		Platform:             trimNull(row.Platform),
		CampaignType:         trimNull(row.CampaignType),
		Amount:               row.Amount.Float64,
		BaseCommission:       row.BaseCommission.Float64,
		CommissionBoost:      row.CommissionBoost.Float64,
		RetainerMin:          nullFloatPtr(row.RetainerMin),
		RetainerMax:          nullFloatPtr(row.RetainerMax),
		GMVTarget:            append([]float64(nil), row.GMVTarget...),
		VideosPerDay:         int(row.VideosPerDay.Int64),
		CampaignDurationDays: int(row.CampaignDurationDays.Int64),
		FreeSamples:          row.FreeSamples.Bool,
		Prizes:               row.Prizes.Bool,
		TrackingLink:         trimNull(row.TrackingLink),
		ApplicationStartDate: nullTimePtr(row.ApplicationStartDate),
		ApplicationEndDate:   nullTimePtr(row.ApplicationEndDate),
		Status:               row.Status,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}

func deliverableFromRow(row deliverableTableModel) campaign.Deliverable {
	return campaign.Deliverable{
		ID:          row.ID,
		CampaignID:  row.CampaignID,
		ProfileID:   trimNull(row.ProfileID),
		Title:       row.Title,
		Description: row.Description.String,
		DueDate:     row.DueDate,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func applicationFromRow(row applicationTableModel) campaign.Application {
	return campaign.Application{
		ID:         row.ID,
		CampaignID: row.CampaignID,
		ProfileID:  row.ProfileID,
		Pitch:      row.Pitch.String,
		Status:     row.Status,
		CreatedAt:  row.CreatedAt,
	}
}
