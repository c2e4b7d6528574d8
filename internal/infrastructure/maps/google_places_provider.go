package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/domain/repository"
)

// GooglePlacesProvider はGoogle Places APIを使用したプレイス検索の実装
// ZERO_RESULTSはエラーではなく空スライスとして返す
type GooglePlacesProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewGooglePlacesProvider は新しいプロバイダを生成する
func NewGooglePlacesProvider(apiKey string) *GooglePlacesProvider {
	return &GooglePlacesProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ repository.PlacesRepository = (*GooglePlacesProvider)(nil)

// IsConfigured はAPIキーが設定されているかどうかを返す
func (g *GooglePlacesProvider) IsConfigured() bool {
	return g.apiKey != ""
}

// NearbySearch は指定位置周辺のスポットを検索する
func (g *GooglePlacesProvider) NearbySearch(ctx context.Context, location model.LatLng, radiusMeters int, placeType, keyword string) ([]model.Suggestion, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", location.Lat, location.Lng))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	if placeType != "" {
		params.Set("type", placeType)
	}
	if keyword != "" {
		params.Set("keyword", keyword)
	}
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("https://maps.googleapis.com/maps/api/place/nearbysearch/json?%s", params.Encode())
	results, err := g.fetchPlaces(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("nearbySearchに失敗: %w", err)
	}

	suggestions := make([]model.Suggestion, 0, len(results))
	for _, place := range results {
		suggestions = append(suggestions, g.toSuggestion(place, placeType))
	}
	return suggestions, nil
}

// TextSearch はテキストクエリでスポットを検索する（位置バイアス付き）
func (g *GooglePlacesProvider) TextSearch(ctx context.Context, query string, location model.LatLng, radiusMeters int) ([]model.Suggestion, error) {
	if query == "" {
		return []model.Suggestion{}, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("location", fmt.Sprintf("%f,%f", location.Lat, location.Lng))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("https://maps.googleapis.com/maps/api/place/textsearch/json?%s", params.Encode())
	results, err := g.fetchPlaces(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("textSearchに失敗: %w", err)
	}

	suggestions := make([]model.Suggestion, 0, len(results))
	for _, place := range results {
		suggestions = append(suggestions, g.toSuggestion(place, "place"))
	}
	return suggestions, nil
}

// GetPlaceDetails はプレイスIDから評価・レビュー数・営業状況・写真URLを取得する
func (g *GooglePlacesProvider) GetPlaceDetails(ctx context.Context, placeID string) (*model.PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "rating,user_ratings_total,opening_hours,photos")
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("https://maps.googleapis.com/maps/api/place/details/json?%s", params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp googlePlaceDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if apiResp.Status != "OK" {
		return nil, fmt.Errorf("プレイス詳細の取得に失敗しました (status: %s)", apiResp.Status)
	}

	place := apiResp.Result
	details := &model.PlaceDetails{
		PlaceID:          placeID,
		Rating:           place.Rating,
		UserRatingsTotal: place.UserRatingsTotal,
	}
	if place.OpeningHours != nil {
		details.IsOpenNow = place.OpeningHours.OpenNow
	}
	if len(place.Photos) > 0 {
		url := g.photoURL(place.Photos[0].PhotoReference)
		details.PhotoURL = &url
	}
	return details, nil
}

// fetchPlaces は検索系エンドポイントを呼び出して結果一覧を返す共通処理
func (g *GooglePlacesProvider) fetchPlaces(ctx context.Context, reqURL string) ([]googlePlace, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp googlePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	switch apiResp.Status {
	case "OK":
		return apiResp.Results, nil
	case "ZERO_RESULTS":
		// ゼロ件は正常系として空を返す
		return []googlePlace{}, nil
	default:
		return nil, fmt.Errorf("プレイス検索に失敗しました (status: %s)", apiResp.Status)
	}
}

// toSuggestion はプロバイダ固有のレスポンスを正規化されたSuggestionに変換する
// 取得できなかったフィールドはnilのまま保持する（「不明」をfalse/0と区別するため）
func (g *GooglePlacesProvider) toSuggestion(place googlePlace, fallbackType string) model.Suggestion {
	if fallbackType == "" {
		fallbackType = "place"
	}

	address := place.Vicinity
	if address == "" {
		address = place.FormattedAddress
	}

	suggestion := model.Suggestion{
		ID:               place.PlaceID,
		PlaceID:          place.PlaceID,
		Name:             place.Name,
		Address:          address,
		Type:             fallbackType,
		Rating:           place.Rating,
		UserRatingsTotal: place.UserRatingsTotal,
	}

	if place.Geometry != nil {
		lat := place.Geometry.Location.Lat
		lng := place.Geometry.Location.Lng
		suggestion.Lat = &lat
		suggestion.Lng = &lng
	}
	if place.OpeningHours != nil {
		suggestion.IsOpenNow = place.OpeningHours.OpenNow
	}
	if len(place.Photos) > 0 {
		url := g.photoURL(place.Photos[0].PhotoReference)
		suggestion.PhotoURL = &url
	}

	return suggestion
}

// photoURL は写真リファレンスを表示用URLに解決する
func (g *GooglePlacesProvider) photoURL(photoReference string) string {
	params := url.Values{}
	params.Set("maxwidth", "640")
	params.Set("photo_reference", photoReference)
	params.Set("key", g.apiKey)
	return fmt.Sprintf("https://maps.googleapis.com/maps/api/place/photo?%s", params.Encode())
}

// --- Google Places APIのレスポンスをパースするための構造体 ---

type googlePlacesResponse struct {
	Results []googlePlace `json:"results"`
	Status  string        `json:"status"`
}

type googlePlaceDetailsResponse struct {
	Result googlePlace `json:"result"`
	Status string      `json:"status"`
}

type googlePlace struct {
	PlaceID          string              `json:"place_id"`
	Name             string              `json:"name"`
	Vicinity         string              `json:"vicinity"`
	FormattedAddress string              `json:"formatted_address"`
	Geometry         *googleGeometry     `json:"geometry"`
	Rating           *float64            `json:"rating"`
	UserRatingsTotal *int                `json:"user_ratings_total"`
	OpeningHours     *googleOpeningHours `json:"opening_hours"`
	Photos           []googlePhoto       `json:"photos"`
}

type googleGeometry struct {
	Location googleLatLng `json:"location"`
}

type googleLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type googleOpeningHours struct {
	OpenNow *bool `json:"open_now"`
}

type googlePhoto struct {
	PhotoReference string `json:"photo_reference"`
}
