package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"PerfectWalk-App/internal/domain/model"
	domainRepo "PerfectWalk-App/internal/domain/repository"
	"PerfectWalk-App/internal/infrastructure/database"
)

// savedRoutesSelectColumns 一覧取得で使用するカラム（地理情報カラムは除く）
const savedRoutesSelectColumns = "id,name,start_point,end_point,stops,distance_meters,duration_seconds,created_at"

// SupabaseSavedRoutesRepository Supabaseによる保存済みルートリポジトリ
type SupabaseSavedRoutesRepository struct {
	client *database.SupabaseClient
}

// NewSupabaseSavedRoutesRepository 新しいSupabaseSavedRoutesRepositoryインスタンスを作成
func NewSupabaseSavedRoutesRepository(client *database.SupabaseClient) domainRepo.SavedRoutesRepository {
	return &SupabaseSavedRoutesRepository{
		client: client,
	}
}

// Create は保存済みルートを新規作成する
func (r *SupabaseSavedRoutesRepository) Create(ctx context.Context, route *model.SavedRoute) error {
	// 地理情報（境界ボックス）を含む保存用の形式に変換
	routeDB := SavedRouteToDB(route)

	data, err := json.Marshal(routeDB)
	if err != nil {
		return fmt.Errorf("ルートデータのJSONマーシャル失敗: %w", err)
	}

	_, _, err = r.client.GetClient().From("saved_routes").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("ルートデータの作成失敗: %w", err)
	}

	return nil
}

// GetAll は保存済みルートの一覧を作成日時の降順で取得する
func (r *SupabaseSavedRoutesRepository) GetAll(ctx context.Context) ([]model.SavedRoute, error) {
	data, count, err := r.client.GetClient().From("saved_routes").
		Select(savedRoutesSelectColumns, "exact", false).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("保存済みルート一覧の取得失敗: %w", err)
	}
	_ = count

	return unmarshalSavedRoutes(data)
}

// GetByID は指定IDの保存済みルートを取得する
func (r *SupabaseSavedRoutesRepository) GetByID(ctx context.Context, id string) (*model.SavedRoute, error) {
	data, count, err := r.client.GetClient().From("saved_routes").
		Select(savedRoutesSelectColumns, "exact", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("保存済みルートの取得失敗: %w", err)
	}
	_ = count

	routes, err := unmarshalSavedRoutes(data)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("ルートID %s が見つかりません", id)
	}

	return &routes[0], nil
}

// GetByBoundingBox は境界ボックスと交差する保存済みルートを検索する
func (r *SupabaseSavedRoutesRepository) GetByBoundingBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]model.SavedRoute, error) {
	// 入力値の検証
	if minLng >= maxLng || minLat >= maxLat {
		return nil, fmt.Errorf("無効な境界ボックス: min値がmax値以上です")
	}

	// 座標値の範囲チェック（経度: -180〜180, 緯度: -90〜90）
	if minLng < -180 || maxLng > 180 || minLat < -90 || maxLat > 90 {
		return nil, fmt.Errorf("座標値が有効範囲外です")
	}

	// orb.Bound を使用して境界ボックスを作成
	bound := orb.Bound{
		Min: orb.Point{minLng, minLat},
		Max: orb.Point{maxLng, maxLat},
	}

	// WKT文字列として出力（orb使用）
	wktString := wkt.MarshalString(bound.ToPolygon())

	// PostGIS ST_Intersects関数を使用して境界ボックス内のルートを検索
	data, count, err := r.client.GetClient().From("saved_routes").
		Select(savedRoutesSelectColumns, "exact", false).
		Filter("route_bounds", "st_intersects", fmt.Sprintf("ST_GeomFromText('%s', 4326)", wktString)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("境界ボックス検索エラー: %w", err)
	}
	_ = count

	return unmarshalSavedRoutes(data)
}

// Delete は指定IDの保存済みルートを削除する
func (r *SupabaseSavedRoutesRepository) Delete(ctx context.Context, id string) error {
	_, _, err := r.client.GetClient().From("saved_routes").
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("ルートデータの削除失敗: %w", err)
	}

	return nil
}

// unmarshalSavedRoutes はPostgRESTのレスポンスをSavedRouteのスライスに変換する
func unmarshalSavedRoutes(data []byte) ([]model.SavedRoute, error) {
	var rows []SavedRouteDB
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("ルートデータのJSONアンマーシャル失敗: %w", err)
	}

	routes := make([]model.SavedRoute, 0, len(rows))
	for i := range rows {
		routes = append(routes, *DBToSavedRoute(&rows[i]))
	}
	return routes, nil
}
