package service

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"PerfectWalk-App/internal/domain/model"
)

// RouteState はセッション1つ分のルート作成状態を一元管理するサービス
// ブラウザ版と異なりサーバーは複数goroutineからアクセスされるため、
// すべての操作をmutexで保護して呼び出しごとにアトミックにする
type RouteState struct {
	mu       sync.Mutex
	route    model.Route
	editMode model.EditMode
	revision uint64 // ルートを変えるたびに増える世代カウンタ（古い経路応答の破棄に使用）
}

// NewRouteState 空の初期状態を作成
func NewRouteState() *RouteState {
	return &RouteState{
		route: model.Route{Stops: []model.Stop{}},
	}
}

// SetStart 開始地点を設定して編集モードをリセットする
func (s *RouteState) SetStart(point model.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := point
	s.route.StartPoint = &p
	s.editMode = model.EditModeNone
	s.invalidateRouteInfoLocked()
}

// SetEnd 終了地点を設定して編集モードをリセットする
func (s *RouteState) SetEnd(point model.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := point
	s.route.EndPoint = &p
	s.editMode = model.EditModeNone
	s.invalidateRouteInfoLocked()
}

// AddStop 新しいIDを採番して経由地点を末尾に追加し、編集モードをリセットする
func (s *RouteState) AddStop(point model.Point) model.Stop {
	s.mu.Lock()
	defer s.mu.Unlock()
	stop := model.Stop{
		ID:    uuid.New().String(),
		Point: point,
	}
	s.route.Stops = append(s.route.Stops, stop)
	s.editMode = model.EditModeNone
	s.invalidateRouteInfoLocked()
	return stop
}

// RemoveStop 指定IDの経由地点を削除する（存在しない場合は何もしない）
func (s *RouteState) RemoveStop(stopID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := make([]model.Stop, 0, len(s.route.Stops))
	removed := false
	for _, stop := range s.route.Stops {
		if stop.ID == stopID {
			removed = true
			continue
		}
		filtered = append(filtered, stop)
	}
	if !removed {
		return
	}
	s.route.Stops = filtered
	s.invalidateRouteInfoLocked()
}

// ReorderStops fromIndexの経由地点を取り出してtoIndexに再挿入する
// 範囲外のインデックスはエラーとして明示的に拒否する
func (s *RouteState) ReorderStops(fromIndex, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.route.Stops)
	if fromIndex < 0 || fromIndex >= n {
		return errors.New("from_indexが範囲外です")
	}
	if toIndex < 0 || toIndex >= n {
		return errors.New("to_indexが範囲外です")
	}
	if fromIndex == toIndex {
		return nil
	}

	stops := make([]model.Stop, 0, n)
	stops = append(stops, s.route.Stops...)
	moved := stops[fromIndex]
	stops = append(stops[:fromIndex], stops[fromIndex+1:]...)

	tail := make([]model.Stop, 0, n)
	tail = append(tail, stops[toIndex:]...)
	stops = append(stops[:toIndex], moved)
	stops = append(stops, tail...)

	s.route.Stops = stops
	s.invalidateRouteInfoLocked()
	return nil
}

// SetEditMode 編集モードを設定する
func (s *RouteState) SetEditMode(mode model.EditMode) error {
	if !mode.IsValid() {
		return errors.New("無効な編集モードです")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editMode = mode
	return nil
}

// ApplyPoint 現在の編集モードに従って地点を割り当てる（地図クリック・検索選択のフロー）
// 割り当て後、編集モードはNoneにリセットされる
func (s *RouteState) ApplyPoint(point model.Point) (model.EditMode, error) {
	s.mu.Lock()
	mode := s.editMode
	s.mu.Unlock()

	switch mode {
	case model.EditModeStart:
		s.SetStart(point)
	case model.EditModeEnd:
		s.SetEnd(point)
	case model.EditModeStop:
		s.AddStop(point)
	default:
		return mode, errors.New("編集モードが設定されていません")
	}
	return mode, nil
}

// DirectionsQuery 経路検索に必要な地点一覧と現在の世代を取得する
// 開始・終了地点が揃っていない場合はエラー
func (s *RouteState) DirectionsQuery() (origin, destination model.LatLng, waypoints []model.LatLng, revision uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.route.HasValidRoute() {
		err = errors.New("開始地点と終了地点の両方が必要です")
		return
	}
	origin = s.route.StartPoint.ToLatLng()
	destination = s.route.EndPoint.ToLatLng()
	waypoints = make([]model.LatLng, len(s.route.Stops))
	for i, stop := range s.route.Stops {
		waypoints[i] = stop.ToLatLng()
	}
	revision = s.revision
	return
}

// UpdateRouteInfo 経路検索プロバイダの結果を反映する
// 発行時の世代が現在と一致しない場合（応答待ちの間にルートが変わった場合）は
// 古い応答として黙って破棄し、falseを返す
func (s *RouteState) UpdateRouteInfo(revision uint64, polyline string, distanceMeters, durationSeconds int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if revision != s.revision {
		return false
	}
	s.route.RoutePolyline = polyline
	s.route.DistanceMeters = &distanceMeters
	s.route.DurationSeconds = &durationSeconds
	return true
}

// Clear ルートを初期状態に戻して編集モードをリセットする
func (s *RouteState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = model.Route{Stops: []model.Stop{}}
	s.editMode = model.EditModeNone
	s.revision++
}

// LoadSnapshot 保存済み・生成済みルートの内容で状態を置き換える
// ポリラインと距離・所要時間はリセットされる（再計算が必要なため）
func (s *RouteState) LoadSnapshot(startPoint, endPoint *model.Point, stops []model.Stop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stops == nil {
		stops = []model.Stop{}
	}
	copied := make([]model.Stop, len(stops))
	copy(copied, stops)
	s.route = model.Route{
		StartPoint: copyPoint(startPoint),
		EndPoint:   copyPoint(endPoint),
		Stops:      copied,
	}
	s.editMode = model.EditModeNone
	s.revision++
}

// Snapshot 保存用の読み取り専用プロジェクションを取得する
func (s *RouteState) Snapshot() model.RouteSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	stops := make([]model.Stop, len(s.route.Stops))
	copy(stops, s.route.Stops)
	return model.RouteSnapshot{
		StartPoint:      copyPoint(s.route.StartPoint),
		EndPoint:        copyPoint(s.route.EndPoint),
		Stops:           stops,
		DistanceMeters:  copyInt(s.route.DistanceMeters),
		DurationSeconds: copyInt(s.route.DurationSeconds),
	}
}

// View 現在のルートと編集モードのコピーを取得する（レスポンス用）
func (s *RouteState) View() (model.Route, model.EditMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stops := make([]model.Stop, len(s.route.Stops))
	copy(stops, s.route.Stops)
	route := model.Route{
		StartPoint:      copyPoint(s.route.StartPoint),
		EndPoint:        copyPoint(s.route.EndPoint),
		Stops:           stops,
		RoutePolyline:   s.route.RoutePolyline,
		DistanceMeters:  copyInt(s.route.DistanceMeters),
		DurationSeconds: copyInt(s.route.DurationSeconds),
	}
	return route, s.editMode
}

// HasValidRoute 開始・終了地点が両方設定されているかを判定する
func (s *RouteState) HasValidRoute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route.HasValidRoute()
}

// invalidateRouteInfoLocked ルート変更時に計算済みの経路情報を破棄して世代を進める
func (s *RouteState) invalidateRouteInfoLocked() {
	s.route.RoutePolyline = ""
	s.route.DistanceMeters = nil
	s.route.DurationSeconds = nil
	s.revision++
}

func copyPoint(p *model.Point) *model.Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
