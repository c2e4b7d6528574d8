package usecase

import (
	"context"
	"fmt"
	"log"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/domain/repository"
)

// PreferencesUseCase はユーザー設定の取得・保存と探索カテゴリの導出を提供する
type PreferencesUseCase interface {
	// GetPreferences はユーザー設定を取得する（未保存の場合はデフォルト値）
	GetPreferences(ctx context.Context, userID string) (*model.PreferencesResponse, error)

	// SavePreferences はユーザー設定を正規化して保存する
	SavePreferences(ctx context.Context, userID string, prefs *model.Preferences) (*model.PreferencesResponse, error)
}

// preferencesUseCaseImpl はPreferencesUseCaseの実装
type preferencesUseCaseImpl struct {
	prefsRepo repository.PreferencesRepository
}

// NewPreferencesUseCase は新しいPreferencesUseCaseインスタンスを作成
func NewPreferencesUseCase(prefsRepo repository.PreferencesRepository) PreferencesUseCase {
	return &preferencesUseCaseImpl{
		prefsRepo: prefsRepo,
	}
}

// GetPreferences はユーザー設定を取得する
func (u *preferencesUseCaseImpl) GetPreferences(ctx context.Context, userID string) (*model.PreferencesResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_idを指定してください")
	}

	prefs, err := u.prefsRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザー設定の取得に失敗: %w", err)
	}

	return &model.PreferencesResponse{
		Preferences:      prefs,
		DiscoverCategory: prefs.DefaultDiscoverCategory(),
	}, nil
}

// SavePreferences はユーザー設定を正規化して保存する
func (u *preferencesUseCaseImpl) SavePreferences(ctx context.Context, userID string, prefs *model.Preferences) (*model.PreferencesResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_idを指定してください")
	}
	if prefs == nil {
		return nil, fmt.Errorf("設定内容を指定してください")
	}

	prefs.Normalize()

	if err := u.prefsRepo.Save(ctx, userID, prefs); err != nil {
		return nil, fmt.Errorf("ユーザー設定の保存に失敗: %w", err)
	}

	log.Printf("✅ ユーザー設定保存完了 (user: %s)", userID)
	return &model.PreferencesResponse{
		Preferences:      prefs,
		DiscoverCategory: prefs.DefaultDiscoverCategory(),
	}, nil
}
