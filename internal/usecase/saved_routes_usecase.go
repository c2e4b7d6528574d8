package usecase

import (
	"context"
	"fmt"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/domain/repository"
)

// SavedRoutesUseCase は保存済みルートコレクションの参照・削除を提供する
// 保存と読み込みはセッションと連動するためRouteSessionUseCaseが担う
type SavedRoutesUseCase interface {
	// GetSavedRoutes は保存済みルートの一覧を返す
	GetSavedRoutes(ctx context.Context) (*model.GetSavedRoutesResponse, error)

	// GetSavedRoutesByBoundingBox は境界ボックスと交差する保存済みルートを返す
	GetSavedRoutesByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) (*model.GetSavedRoutesResponse, error)

	// GetSavedRoute は指定IDの保存済みルートを返す
	GetSavedRoute(ctx context.Context, routeID string) (*model.SavedRoute, error)

	// DeleteSavedRoute は指定IDの保存済みルートを削除する
	DeleteSavedRoute(ctx context.Context, routeID string) error
}

// savedRoutesUseCaseImpl はSavedRoutesUseCaseの実装
type savedRoutesUseCaseImpl struct {
	savedRepo repository.SavedRoutesRepository
}

// NewSavedRoutesUseCase は新しいSavedRoutesUseCaseインスタンスを作成
func NewSavedRoutesUseCase(savedRepo repository.SavedRoutesRepository) SavedRoutesUseCase {
	return &savedRoutesUseCaseImpl{
		savedRepo: savedRepo,
	}
}

// GetSavedRoutes は保存済みルートの一覧を返す
func (u *savedRoutesUseCaseImpl) GetSavedRoutes(ctx context.Context) (*model.GetSavedRoutesResponse, error) {
	routes, err := u.savedRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("保存済みルート一覧の取得に失敗: %w", err)
	}
	return &model.GetSavedRoutesResponse{Routes: routes}, nil
}

// GetSavedRoutesByBoundingBox は境界ボックスと交差する保存済みルートを返す
func (u *savedRoutesUseCaseImpl) GetSavedRoutesByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) (*model.GetSavedRoutesResponse, error) {
	routes, err := u.savedRepo.GetByBoundingBox(ctx, minLng, minLat, maxLng, maxLat)
	if err != nil {
		return nil, err
	}
	return &model.GetSavedRoutesResponse{Routes: routes}, nil
}

// GetSavedRoute は指定IDの保存済みルートを返す
func (u *savedRoutesUseCaseImpl) GetSavedRoute(ctx context.Context, routeID string) (*model.SavedRoute, error) {
	route, err := u.savedRepo.GetByID(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("保存済みルートの取得に失敗: %w", err)
	}
	return route, nil
}

// DeleteSavedRoute は指定IDの保存済みルートを削除する
func (u *savedRoutesUseCaseImpl) DeleteSavedRoute(ctx context.Context, routeID string) error {
	return u.savedRepo.Delete(ctx, routeID)
}
