package usecase

import (
	"context"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/domain/service"
)

// SuggestionUseCase はカテゴリ別のおすすめスポット取得とプレイス詳細取得を提供する
type SuggestionUseCase interface {
	// GetSuggestions はカテゴリと位置に応じたおすすめスポット一覧を返す
	GetSuggestions(ctx context.Context, category string, location *model.LatLng, areaName string) (*model.GetSuggestionsResponse, error)

	// GetPlaceDetails は選択中スポットの詳細情報を返す
	GetPlaceDetails(ctx context.Context, placeID string) (*model.PlaceDetails, error)
}

// suggestionUseCaseImpl はSuggestionUseCaseの実装
type suggestionUseCaseImpl struct {
	suggestionService service.SuggestionService
}

// NewSuggestionUseCase は新しいSuggestionUseCaseインスタンスを作成
func NewSuggestionUseCase(suggestionService service.SuggestionService) SuggestionUseCase {
	return &suggestionUseCaseImpl{
		suggestionService: suggestionService,
	}
}

// GetSuggestions はカテゴリと位置に応じたおすすめスポット一覧を返す
func (u *suggestionUseCaseImpl) GetSuggestions(ctx context.Context, category string, location *model.LatLng, areaName string) (*model.GetSuggestionsResponse, error) {
	base := service.DefaultCenter
	if location != nil && location.IsValid() {
		base = *location
	}

	suggestions, err := u.suggestionService.GetSuggestions(ctx, category, base, areaName)
	if err != nil {
		return nil, err
	}

	return &model.GetSuggestionsResponse{
		Category:    category,
		Suggestions: suggestions,
	}, nil
}

// GetPlaceDetails は選択中スポットの詳細情報を返す
func (u *suggestionUseCaseImpl) GetPlaceDetails(ctx context.Context, placeID string) (*model.PlaceDetails, error) {
	return u.suggestionService.GetPlaceDetails(ctx, placeID)
}
