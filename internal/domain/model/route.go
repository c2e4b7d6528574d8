package model

import "time"

// Route 作成中のルートを表すセッションスコープのモデル
// RoutePolyline/DistanceMeters/DurationSeconds は外部の経路検索プロバイダから
// 取得した値のみを保持する（ローカルで推定しない）
type Route struct {
	StartPoint      *Point `json:"start_point"`
	EndPoint        *Point `json:"end_point"`
	Stops           []Stop `json:"stops"` // 挿入順 = 訪問順
	RoutePolyline   string `json:"route_polyline,omitempty"`
	DistanceMeters  *int   `json:"distance_meters"`
	DurationSeconds *int   `json:"duration_seconds"`
}

// HasValidRoute 開始地点と終了地点が両方設定されているかを判定する
func (r *Route) HasValidRoute() bool {
	return r.StartPoint != nil && r.EndPoint != nil
}

// RouteDetails 経路検索プロバイダから取得した徒歩ルート情報
type RouteDetails struct {
	DistanceMeters  int
	DurationSeconds int
	Polyline        string
}

// RouteSnapshot 保存用の読み取り専用プロジェクション
// 編集モードと一時的なポリラインは含まない
type RouteSnapshot struct {
	StartPoint      *Point `json:"start_point"`
	EndPoint        *Point `json:"end_point"`
	Stops           []Stop `json:"stops"`
	DistanceMeters  *int   `json:"distance_meters"`
	DurationSeconds *int   `json:"duration_seconds"`
}

// SavedRoute 永続化されたルート（作成後は削除以外不変）
type SavedRoute struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	StartPoint      *Point    `json:"start_point"`
	EndPoint        *Point    `json:"end_point"`
	Stops           []Stop    `json:"stops"`
	DistanceMeters  *int      `json:"distance_meters"`
	DurationSeconds *int      `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

// RouteSessionResponse セッション状態のレスポンス
type RouteSessionResponse struct {
	SessionID     string   `json:"session_id"`
	Route         *Route   `json:"route"`
	EditMode      EditMode `json:"edit_mode"`
	HasValidRoute bool     `json:"has_valid_route"`
}

// SetPointRequest 開始・終了地点設定リクエスト
type SetPointRequest struct {
	Point *Point `json:"point" validate:"required"`
}

// ReorderStopsRequest 経由地点の並び替えリクエスト
type ReorderStopsRequest struct {
	FromIndex int `json:"from_index"`
	ToIndex   int `json:"to_index"`
}

// SetEditModeRequest 編集モード設定リクエスト
type SetEditModeRequest struct {
	Mode EditMode `json:"mode"`
}

// MapClickRequest 地図クリック相当のイベント（座標のみ、編集モードに従って割り当てる）
type MapClickRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SaveRouteRequest ルート保存リクエスト
type SaveRouteRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

// LoadRouteRequest 保存済みルートの読み込みリクエスト
type LoadRouteRequest struct {
	RouteID string `json:"route_id" validate:"required"`
}

// GetSavedRoutesResponse 保存済みルート一覧のレスポンス
type GetSavedRoutesResponse struct {
	Routes []SavedRoute `json:"routes"`
}
