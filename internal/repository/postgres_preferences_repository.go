package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"PerfectWalk-App/internal/domain/model"
	domainRepo "PerfectWalk-App/internal/domain/repository"
	"PerfectWalk-App/internal/infrastructure/database"
)

// PostgresPreferencesRepository PostgreSQLによるユーザー設定の永続化
// 設定全体を1ユーザー1行のJSONBとして保存する（項目単位のカラムは持たない）
type PostgresPreferencesRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresPreferencesRepository 新しいPostgresPreferencesRepositoryインスタンスを作成
func NewPostgresPreferencesRepository(client *database.PostgreSQLClient) domainRepo.PreferencesRepository {
	return &PostgresPreferencesRepository{
		client: client,
	}
}

// Get はユーザー設定を取得する（未保存の場合はデフォルト値を返す）
func (r *PostgresPreferencesRepository) Get(ctx context.Context, userID string) (*model.Preferences, error) {
	query := `SELECT preferences FROM user_preferences WHERE user_id = $1`

	var raw []byte
	err := r.client.DB.QueryRowContext(ctx, query, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.DefaultPreferences(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザー設定の取得失敗: %w", err)
	}

	var prefs model.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("ユーザー設定のJSONBパースエラー: %w", err)
	}

	// 古いデータに欠けているフィールドをデフォルト値で埋める
	prefs.Normalize()
	return &prefs, nil
}

// Save はユーザー設定を保存する（既存行は上書き）
func (r *PostgresPreferencesRepository) Save(ctx context.Context, userID string, prefs *model.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("ユーザー設定のJSONマーシャル失敗: %w", err)
	}

	query := `
		INSERT INTO user_preferences (user_id, preferences, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET preferences = EXCLUDED.preferences, updated_at = NOW()`

	if _, err := r.client.DB.ExecContext(ctx, query, userID, raw); err != nil {
		return fmt.Errorf("ユーザー設定の保存失敗: %w", err)
	}

	return nil
}
