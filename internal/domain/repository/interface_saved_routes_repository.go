package repository

import (
	"context"

	"PerfectWalk-App/internal/domain/model"
)

// SavedRoutesRepository 保存済みルートコレクションの抽象
type SavedRoutesRepository interface {
	// Create 保存済みルートを新規作成（作成後は削除以外不変）
	Create(ctx context.Context, route *model.SavedRoute) error

	// GetAll 保存済みルート一覧を取得
	GetAll(ctx context.Context) ([]model.SavedRoute, error)

	// GetByID 指定IDの保存済みルートを取得
	GetByID(ctx context.Context, id string) (*model.SavedRoute, error)

	// GetByBoundingBox 境界ボックス内の保存済みルートを取得
	GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.SavedRoute, error)

	// Delete 指定IDの保存済みルートを削除
	Delete(ctx context.Context, id string) error
}

// PreferencesRepository ユーザー設定の永続化抽象（単純なキーバリュー扱い）
type PreferencesRepository interface {
	// Get ユーザー設定を取得（未保存の場合はデフォルト値を返す）
	Get(ctx context.Context, userID string) (*model.Preferences, error)

	// Save ユーザー設定を保存（上書き）
	Save(ctx context.Context, userID string, prefs *model.Preferences) error
}

// RoutePlanRepository AI生成ルート案のTTL付きストアの抽象
type RoutePlanRepository interface {
	// SaveRoutePlan ルート案を保存してplan_idを返す
	SaveRoutePlan(ctx context.Context, plan *model.GeneratedRoutePlan, prompt string, ttlHours int) (string, error)

	// GetRoutePlan 指定plan_idのルート案を取得する
	GetRoutePlan(ctx context.Context, planID string) (*model.GeneratedRoutePlan, error)
}
