package repository

import (
	"time"

	"github.com/paulmach/orb"

	"PerfectWalk-App/internal/domain/helper"
	"PerfectWalk-App/internal/domain/model"
)

// GeoPoint PostGIS POINT 型の JSON 表現
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// PointToGeoPoint model.Point を PostGIS POINT 形式に変換
func PointToGeoPoint(point *model.Point) *GeoPoint {
	if point == nil {
		return nil
	}

	p := orb.Point{point.Lng, point.Lat}

	return &GeoPoint{
		Type:        "Point",
		Coordinates: []float64{p.Lon(), p.Lat()},
	}
}

// SavedRouteDB SavedRoute を DB 保存用の構造体に変換したもの（地理情報を含む）
type SavedRouteDB struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	StartPoint      *model.Point      `json:"start_point"`
	EndPoint        *model.Point      `json:"end_point"`
	Stops           []model.Stop      `json:"stops"`
	DistanceMeters  *int              `json:"distance_meters"`
	DurationSeconds *int              `json:"duration_seconds"`
	CreatedAt       time.Time         `json:"created_at"`
	StartLocation   *GeoPoint         `json:"start_location"`
	EndLocation     *GeoPoint         `json:"end_location"`
	RouteBounds     *model.GeoPolygon `json:"route_bounds"`
}

// SavedRouteToDB model.SavedRoute を DB 保存用に変換
func SavedRouteToDB(route *model.SavedRoute) *SavedRouteDB {
	startGeo := PointToGeoPoint(route.StartPoint)
	endGeo := PointToGeoPoint(route.EndPoint)

	// 境界ボックスを作成
	// 現在は開始・終了位置から計算（将来的には経由地点を含めて計算）
	routeBounds := helper.CreateBoundingBoxPolygon(route.StartPoint, route.EndPoint)

	return &SavedRouteDB{
		ID:              route.ID,
		Name:            route.Name,
		StartPoint:      route.StartPoint,
		EndPoint:        route.EndPoint,
		Stops:           route.Stops,
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		CreatedAt:       route.CreatedAt,
		StartLocation:   startGeo,
		EndLocation:     endGeo,
		RouteBounds:     routeBounds,
	}
}

// DBToSavedRoute DB の行を model.SavedRoute に戻す
func DBToSavedRoute(db *SavedRouteDB) *model.SavedRoute {
	stops := db.Stops
	if stops == nil {
		stops = []model.Stop{}
	}

	return &model.SavedRoute{
		ID:              db.ID,
		Name:            db.Name,
		StartPoint:      db.StartPoint,
		EndPoint:        db.EndPoint,
		Stops:           stops,
		DistanceMeters:  db.DistanceMeters,
		DurationSeconds: db.DurationSeconds,
		CreatedAt:       db.CreatedAt,
	}
}
