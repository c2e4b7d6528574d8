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

// GoogleGeocodingProvider はGoogle Geocoding APIを使用した逆ジオコーディングの実装
type GoogleGeocodingProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewGoogleGeocodingProvider は新しいプロバイダを生成する
func NewGoogleGeocodingProvider(apiKey string) *GoogleGeocodingProvider {
	return &GoogleGeocodingProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ repository.GeocodingRepository = (*GoogleGeocodingProvider)(nil)

// ReverseGeocode は座標から住所付きPointをベストエフォートで生成する
// 取得に失敗しても座標のみのPointを返す（住所は空文字列）
func (g *GoogleGeocodingProvider) ReverseGeocode(ctx context.Context, location model.LatLng) (*model.Point, error) {
	point := &model.Point{Lat: location.Lat, Lng: location.Lng}

	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", location.Lat, location.Lng))
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("https://maps.googleapis.com/maps/api/geocode/json?%s", params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return point, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return point, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return point, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return point, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if apiResp.Status != "OK" || len(apiResp.Results) == 0 {
		return point, nil
	}

	first := apiResp.Results[0]
	point.Address = first.FormattedAddress
	point.PlaceID = first.PlaceID
	if len(first.AddressComponents) > 0 {
		point.Name = first.AddressComponents[0].ShortName
	}
	return point, nil
}

// --- Google Geocoding APIのレスポンスをパースするための構造体 ---

type googleGeocodeResponse struct {
	Results []googleGeocodeResult `json:"results"`
	Status  string                `json:"status"`
}

type googleGeocodeResult struct {
	FormattedAddress  string                   `json:"formatted_address"`
	PlaceID           string                   `json:"place_id"`
	AddressComponents []googleAddressComponent `json:"address_components"`
}

type googleAddressComponent struct {
	LongName  string `json:"long_name"`
	ShortName string `json:"short_name"`
}
