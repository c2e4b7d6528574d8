package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/domain/repository"
)

// GoogleDirectionsProvider はGoogle Maps Directions APIを使用した経路検索の実装
type GoogleDirectionsProvider struct {
	apiKey     string
	httpClient *http.Client
}

// NewGoogleDirectionsProvider は新しいプロバイダを生成する
func NewGoogleDirectionsProvider(apiKey string) *GoogleDirectionsProvider {
	return &GoogleDirectionsProvider{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ repository.DirectionsProvider = (*GoogleDirectionsProvider)(nil)

// GetWalkingRoute はGoogle Maps Directions APIを呼び出して徒歩ルート情報を取得する
// 全レグの距離と所要時間を合計し、概略ポリラインと合わせて返す
func (g *GoogleDirectionsProvider) GetWalkingRoute(ctx context.Context, origin, destination model.LatLng, waypoints []model.LatLng) (*model.RouteDetails, error) {
	reqURL := g.buildURL(origin, destination, waypoints)

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

	var apiResp googleRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if len(apiResp.Routes) == 0 {
		return nil, errors.New("APIから有効なルートが返されませんでした")
	}

	firstRoute := apiResp.Routes[0]
	var totalDistanceM, totalDurationSec int
	for _, leg := range firstRoute.Legs {
		totalDistanceM += leg.Distance.Value
		totalDurationSec += leg.Duration.Value
	}

	return &model.RouteDetails{
		DistanceMeters:  totalDistanceM,
		DurationSeconds: totalDurationSec,
		Polyline:        firstRoute.OverviewPolyline.Points,
	}, nil
}

func (g *GoogleDirectionsProvider) buildURL(origin, destination model.LatLng, waypoints []model.LatLng) string {
	baseURL := "https://maps.googleapis.com/maps/api/directions/json"
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))

	// 経由地を設定
	if len(waypoints) > 0 {
		viaPoints := make([]string, 0, len(waypoints))
		for _, wp := range waypoints {
			viaPoints = append(viaPoints, fmt.Sprintf("%f,%f", wp.Lat, wp.Lng))
		}
		params.Set("waypoints", strings.Join(viaPoints, "|"))
	}

	params.Set("mode", "walking")
	params.Set("key", g.apiKey)

	return fmt.Sprintf("%s?%s", baseURL, params.Encode())
}

// --- Google Maps APIのレスポンスをパースするための構造体 ---

type googleRouteResponse struct {
	Routes       []route `json:"routes"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
}
type route struct {
	Legs             []leg            `json:"legs"`
	OverviewPolyline overviewPolyline `json:"overview_polyline"`
}
type leg struct {
	Distance valueField `json:"distance"`
	Duration valueField `json:"duration"`
}
type valueField struct {
	Value int `json:"value"` // meters / seconds
}
type overviewPolyline struct {
	Points string `json:"points"`
}
