package repository

import (
	"context"

	"PerfectWalk-App/internal/domain/model"
)

// PlacesRepository プレイス検索プロバイダの抽象
// ゼロ件は空スライスを返し、エラーはプロバイダ自体の失敗のみ
type PlacesRepository interface {
	// NearbySearch は指定位置周辺のスポットを検索して正規化済みSuggestionを返す
	NearbySearch(ctx context.Context, location model.LatLng, radiusMeters int, placeType, keyword string) ([]model.Suggestion, error)

	// TextSearch はテキストクエリでスポットを検索する（位置バイアス付き）
	TextSearch(ctx context.Context, query string, location model.LatLng, radiusMeters int) ([]model.Suggestion, error)

	// GetPlaceDetails はプレイスIDから評価・レビュー数・営業状況・写真URLを取得する
	GetPlaceDetails(ctx context.Context, placeID string) (*model.PlaceDetails, error)

	// IsConfigured はプロバイダが利用可能かどうかを返す
	IsConfigured() bool
}

// GeocodingRepository 逆ジオコーディングプロバイダの抽象
type GeocodingRepository interface {
	// ReverseGeocode は座標からベストエフォートで住所付きPointを生成する
	// 失敗しても座標のみのPointとして利用可能（住所は空文字列）
	ReverseGeocode(ctx context.Context, location model.LatLng) (*model.Point, error)
}

// DirectionsProvider 徒歩経路検索プロバイダの抽象
type DirectionsProvider interface {
	// GetWalkingRoute は徒歩ルートのポリラインと距離・所要時間の合計を取得する
	GetWalkingRoute(ctx context.Context, origin, destination model.LatLng, waypoints []model.LatLng) (*model.RouteDetails, error)
}
