package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
	qb "github.com/riskibarqy/creator-hub/internal/platform/querybuilder"
)

// profileUpsertSuffix keeps completed sticky and keeps the stored tier when
// the write carries none.
const profileUpsertSuffix = `ON CONFLICT (user_id)
DO UPDATE SET
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    date_of_birth = EXCLUDED.date_of_birth,
    about = EXCLUDED.about,
    profile_picture_url = EXCLUDED.profile_picture_url,
    instagram_url = EXCLUDED.instagram_url,
    gmv = EXCLUDED.gmv,
    gmv_proof_url = EXCLUDED.gmv_proof_url,
    tier = COALESCE(EXCLUDED.tier, profiles.tier),
    completed = profiles.completed OR EXCLUDED.completed,
    updated_at = NOW()
RETURNING ` + profileColumns

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select(profileColumns).
		From("profiles").
		Where(qb.Eq("user_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile by user id: %w", err)
	}

	item := profileFromRow(row)
	accounts, err := r.listTikTokAccounts(ctx, item.ID)
	if err != nil {
		return profile.Profile{}, false, err
	}
	item.TikTokAccounts = accounts

	return item, true, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, item profile.Profile) (profile.Profile, error) {
	insertModel := profileInsertModel{
		UserID:            strings.TrimSpace(item.UserID),
		FirstName:         optionalString(item.FirstName),
		LastName:          optionalString(item.LastName),
		DateOfBirth:       optionalString(item.DateOfBirth),
		About:             optionalString(item.About),
		ProfilePictureURL: optionalString(item.ProfilePictureURL),
		InstagramURL:      optionalString(item.InstagramURL),
		GMV:               item.GMV,
		GMVProofURL:       optionalString(item.GMVProofURL),
		Tier:              optionalString(string(item.Tier)),
		Completed:         item.Completed,
	}

	query, args, err := qb.InsertModel("profiles", insertModel, profileUpsertSuffix)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("build upsert profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return profile.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}

	return profileFromRow(row), nil
}

func (r *ProfileRepository) ReplaceTikTokAccounts(ctx context.Context, profileID string, accounts []profile.TikTokAccount) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace tiktok accounts: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("tiktok_accounts").
		Where(qb.Eq("profile_id", profileID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete tiktok accounts query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete tiktok accounts: %w", err)
	}

	insert := qb.InsertInto("tiktok_accounts").Columns("profile_id", "url", "niche")
	rows := 0
	for _, account := range accounts {
		url := strings.TrimSpace(account.URL)
		if url == "" {
			continue
		}
		insert.Values(profileID, url, optionalString(account.Niche))
		rows++
	}
	if rows > 0 {
		insertQuery, insertArgs, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert tiktok accounts query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert tiktok accounts: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tiktok accounts tx: %w", err)
	}
	return nil
}

func (r *ProfileRepository) listTikTokAccounts(ctx context.Context, profileID string) ([]profile.TikTokAccount, error) {
	query, args, err := qb.Select("id", "profile_id", "url", "niche", "created_at", "updated_at").
		From("tiktok_accounts").
		Where(qb.Eq("profile_id", profileID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tiktok accounts query: %w", err)
	}

	var rows []tiktokAccountTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tiktok accounts: %w", err)
	}

	out := make([]profile.TikTokAccount, 0, len(rows))
	for _, row := range rows {
		out = append(out, profile.TikTokAccount{
			ID:        row.ID,
			ProfileID: row.ProfileID,
			URL:       row.URL,
			Niche:     trimNull(row.Niche),
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

func profileFromRow(row profileTableModel) profile.Profile {
	tier, err := profile.ParseTier(row.Tier.String)
	if err != nil {
		tier = profile.TierBronze
	}
	return profile.Profile{
		ID:                row.ID,
		UserID:            row.UserID,
		FirstName:         trimNull(row.FirstName),
		LastName:          trimNull(row.LastName),
		DateOfBirth:       nullDate(row.DateOfBirth),
		About:             row.About.String,
		ProfilePictureURL: trimNull(row.ProfilePictureURL),
		InstagramURL:      trimNull(row.InstagramURL),
		GMV:               nullFloatPtr(row.GMV),
		GMVProofURL:       trimNull(row.GMVProofURL),
		Tier:              tier,
		Completed:         row.Completed,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
