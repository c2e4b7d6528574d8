package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"PerfectWalk-App/internal/domain/helper"
	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/domain/repository"
	"PerfectWalk-App/internal/infrastructure/ai"
	repoimpl "PerfectWalk-App/internal/repository"
)

const (
	// nearbyRadiusMeters 周辺検索の半径
	nearbyRadiusMeters = 3500
)

// SuggestionService はカテゴリ別のおすすめスポット取得を行うサービス
// プレイス検索→AI推薦→静的リストの順でフォールバックし、結果はTTLキャッシュに保存する
type SuggestionService interface {
	GetSuggestions(ctx context.Context, category string, location model.LatLng, areaName string) ([]model.Suggestion, error)
	GetPlaceDetails(ctx context.Context, placeID string) (*model.PlaceDetails, error)
	ClearCache()
}

type suggestionService struct {
	places  repository.PlacesRepository
	textGen repository.TextGenerationRepository
	cache   *repoimpl.SuggestionCache
}

// NewSuggestionService 新しいSuggestionServiceインスタンスを作成
func NewSuggestionService(places repository.PlacesRepository, textGen repository.TextGenerationRepository, cache *repoimpl.SuggestionCache) SuggestionService {
	return &suggestionService{
		places:  places,
		textGen: textGen,
		cache:   cache,
	}
}

// GetSuggestions はカテゴリと位置に応じたおすすめスポットを取得する
// 同一キー（カテゴリ+丸め座標）への連続呼び出しはキャッシュから同じ結果を返す
func (s *suggestionService) GetSuggestions(ctx context.Context, category string, location model.LatLng, areaName string) ([]model.Suggestion, error) {
	if !isValidCategory(category) {
		return nil, fmt.Errorf("対応していないカテゴリです: %s", category)
	}

	key := helper.CacheCoordKey(category, location)
	if cached := s.cache.Get(key); cached != nil {
		log.Printf("💾 おすすめキャッシュヒット: %s", key)
		return cached, nil
	}

	suggestions, err := s.fetchSuggestions(ctx, category, location, areaName)
	if err != nil {
		return nil, err
	}

	s.annotateAndSort(suggestions, location)
	s.cache.Set(key, suggestions)
	return suggestions, nil
}

// ClearCache はおすすめキャッシュをすべて破棄する
func (s *suggestionService) ClearCache() {
	s.cache.Clear()
}

// isValidCategory 対応カテゴリかチェック
func isValidCategory(category string) bool {
	switch category {
	case model.CategoryCoffee, model.CategoryParks, model.CategoryFood, model.CategoryTrails:
		return true
	}
	return false
}

// fetchSuggestions はカテゴリに応じた検索戦略でスポットを取得する
// trailsカテゴリはプレイス検索のタイプに対応がないためAI推薦を使用する
func (s *suggestionService) fetchSuggestions(ctx context.Context, category string, location model.LatLng, areaName string) ([]model.Suggestion, error) {
	if !s.places.IsConfigured() || category == model.CategoryTrails {
		return s.aiSuggestions(ctx, category, location, areaName), nil
	}

	switch category {
	case model.CategoryCoffee:
		results, err := s.places.NearbySearch(ctx, location, nearbyRadiusMeters, "cafe", "coffee")
		if err != nil {
			return nil, fmt.Errorf("コーヒーショップの検索に失敗: %w", err)
		}
		return tagSuggestions(results, "coffee"), nil

	case model.CategoryParks:
		results, err := s.places.NearbySearch(ctx, location, nearbyRadiusMeters, "park", "")
		if err != nil {
			return nil, fmt.Errorf("公園の検索に失敗: %w", err)
		}
		return tagSuggestions(results, "park"), nil

	case model.CategoryFood:
		restaurants, err := s.places.NearbySearch(ctx, location, nearbyRadiusMeters, "restaurant", "")
		if err != nil {
			return nil, fmt.Errorf("レストランの検索に失敗: %w", err)
		}
		bakeries, err := s.places.NearbySearch(ctx, location, nearbyRadiusMeters, "bakery", "")
		if err != nil {
			return nil, fmt.Errorf("ベーカリーの検索に失敗: %w", err)
		}
		merged := dedupeByPlaceID(append(restaurants, bakeries...))
		return tagSuggestions(merged, "food"), nil
	}

	return s.aiSuggestions(ctx, category, location, areaName), nil
}

// tagSuggestions は検索結果にカテゴリ由来のタイプを付与する
func tagSuggestions(suggestions []model.Suggestion, typeTag string) []model.Suggestion {
	for i := range suggestions {
		suggestions[i].Type = typeTag
	}
	return suggestions
}

// dedupeByPlaceID は複数検索の結果をプレイスIDで重複排除する（先勝ち）
func dedupeByPlaceID(suggestions []model.Suggestion) []model.Suggestion {
	seen := make(map[string]bool, len(suggestions))
	deduped := make([]model.Suggestion, 0, len(suggestions))
	for _, suggestion := range suggestions {
		key := suggestion.PlaceID
		if key == "" {
			key = suggestion.ID
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, suggestion)
	}
	return deduped
}

// annotateAndSort は各スポットに基準位置からの距離を付与し、近い順に並べる
// 座標が不明なスポットは末尾に回す
func (s *suggestionService) annotateAndSort(suggestions []model.Suggestion, location model.LatLng) {
	for i := range suggestions {
		if !suggestions[i].HasCoordinates() {
			continue
		}
		target := model.LatLng{Lat: *suggestions[i].Lat, Lng: *suggestions[i].Lng}
		if d := helper.DistanceMeters(&location, &target); d != nil {
			meters := int(*d)
			suggestions[i].DistanceMeters = &meters
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		di, dj := suggestions[i].DistanceMeters, suggestions[j].DistanceMeters
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
}

// aiSuggestionPayload AI推薦のJSONをパースするための構造体
type aiSuggestionPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// aiSuggestions は生成AIによるテキストベースの推薦を取得する
// AIが使えない・出力が壊れている場合は静的なフォールバックリストを返す
func (s *suggestionService) aiSuggestions(ctx context.Context, category string, location model.LatLng, areaName string) []model.Suggestion {
	if !s.textGen.IsConfigured() {
		return staticFallback(category)
	}

	raw, err := s.textGen.GenerateContent(ctx, s.buildRecommendationPrompt(category, location, areaName))
	if err != nil {
		log.Printf("⚠️ AI推薦の取得に失敗、静的リスト使用: %v", err)
		return staticFallback(category)
	}

	jsonText := ai.ExtractJSONArray(raw)
	if jsonText == "" {
		return staticFallback(category)
	}

	var payloads []aiSuggestionPayload
	if err := json.Unmarshal([]byte(jsonText), &payloads); err != nil {
		log.Printf("⚠️ AI推薦のパースに失敗、静的リスト使用: %v", err)
		return staticFallback(category)
	}
	if len(payloads) == 0 {
		return staticFallback(category)
	}

	now := time.Now().UnixMilli()
	suggestions := make([]model.Suggestion, 0, len(payloads))
	for i, payload := range payloads {
		if strings.TrimSpace(payload.Name) == "" {
			continue
		}
		typeTag := payload.Type
		if typeTag == "" {
			typeTag = categoryTypeTag(category)
		}
		suggestions = append(suggestions, model.Suggestion{
			ID:      fmt.Sprintf("%s-%d-%d", category, now, i),
			Name:    payload.Name,
			Address: payload.Description,
			Type:    typeTag,
		})
	}
	if len(suggestions) == 0 {
		return staticFallback(category)
	}
	return suggestions
}

// buildRecommendationPrompt はカテゴリ別推薦のプロンプトを構築する
func (s *suggestionService) buildRecommendationPrompt(category string, location model.LatLng, areaName string) string {
	locationLabel := fmt.Sprintf("coordinates %.4f, %.4f", location.Lat, location.Lng)
	if areaName != "" {
		locationLabel = fmt.Sprintf("%s (%.4f, %.4f)", areaName, location.Lat, location.Lng)
	}

	return fmt.Sprintf(`Recommend 5 real %s spots for a walk near %s.

Return ONLY a valid JSON array with this exact shape:
[ { "name": "place name", "description": "one short sentence", "type": "%s" } ]

Do not wrap the JSON in code fences.`,
		categoryLabel(category), locationLabel, categoryTypeTag(category))
}

// categoryLabel プロンプト用のカテゴリ表示名
func categoryLabel(category string) string {
	switch category {
	case model.CategoryCoffee:
		return "coffee shop"
	case model.CategoryParks:
		return "park"
	case model.CategoryFood:
		return "food"
	case model.CategoryTrails:
		return "walking trail"
	}
	return category
}

// categoryTypeTag カテゴリに対応するスポットタイプ
func categoryTypeTag(category string) string {
	switch category {
	case model.CategoryCoffee:
		return "coffee"
	case model.CategoryParks:
		return "park"
	case model.CategoryFood:
		return "food"
	case model.CategoryTrails:
		return "trail"
	}
	return category
}

// staticFallback はすべての取得手段が失敗した場合の最小限のリストを返す
func staticFallback(category string) []model.Suggestion {
	switch category {
	case model.CategoryCoffee:
		return []model.Suggestion{
			{ID: "fb-coffee-1", Name: "Local Coffee Shop", Address: "A cozy neighborhood cafe", Type: "coffee"},
			{ID: "fb-coffee-2", Name: "Artisan Roastery", Address: "Small-batch roasts and pastries", Type: "coffee"},
		}
	case model.CategoryParks:
		return []model.Suggestion{
			{ID: "fb-parks-1", Name: "Central Park", Address: "Open lawns and shaded paths", Type: "park"},
			{ID: "fb-parks-2", Name: "Botanical Gardens", Address: "Seasonal flowers and quiet corners", Type: "park"},
		}
	case model.CategoryFood:
		return []model.Suggestion{
			{ID: "fb-food-1", Name: "Local Bakery", Address: "Fresh bread and sandwiches", Type: "food"},
			{ID: "fb-food-2", Name: "Healthy Bites Cafe", Address: "Light meals for a walking break", Type: "food"},
		}
	case model.CategoryTrails:
		return []model.Suggestion{
			{ID: "fb-trails-1", Name: "City Park Loop", Address: "An easy loop through the park", Type: "trail"},
			{ID: "fb-trails-2", Name: "Riverside Path", Address: "Flat path along the water", Type: "trail"},
		}
	}
	return []model.Suggestion{}
}

// GetPlaceDetails は選択中スポットの詳細（評価・営業状況・写真）を取得する
func (s *suggestionService) GetPlaceDetails(ctx context.Context, placeID string) (*model.PlaceDetails, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, fmt.Errorf("place_idを指定してください")
	}
	if !s.places.IsConfigured() {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEYが設定されていません")
	}
	return s.places.GetPlaceDetails(ctx, placeID)
}
