package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PerfectWalk-App/internal/domain/model"
)

func testPoint(lat, lng float64, name string) model.Point {
	return model.Point{Lat: lat, Lng: lng, Name: name}
}

// TestRouteState_SetStartEnd は開始・終了地点の設定と編集モードのリセットをテストする
func TestRouteState_SetStartEnd(t *testing.T) {
	state := NewRouteState()

	require.NoError(t, state.SetEditMode(model.EditModeStart))
	state.SetStart(testPoint(37.77, -122.41, "Start"))

	route, editMode := state.View()
	require.NotNil(t, route.StartPoint)
	assert.Equal(t, "Start", route.StartPoint.Name)
	assert.Equal(t, model.EditModeNone, editMode, "地点設定後は編集モードがリセットされる")
	assert.False(t, route.HasValidRoute())

	state.SetEnd(testPoint(37.78, -122.42, "End"))
	route, _ = state.View()
	require.NotNil(t, route.EndPoint)
	assert.True(t, route.HasValidRoute())
}

// TestRouteState_AddStop は経由地点の追加とID採番をテストする
func TestRouteState_AddStop(t *testing.T) {
	state := NewRouteState()

	first := state.AddStop(testPoint(37.77, -122.41, "Cafe"))
	second := state.AddStop(testPoint(37.78, -122.42, "Park"))

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID, "経由地点のIDは一意であること")

	route, _ := state.View()
	require.Len(t, route.Stops, 2)
	assert.Equal(t, "Cafe", route.Stops[0].Name)
	assert.Equal(t, "Park", route.Stops[1].Name)
}

// TestRouteState_RemoveStop は経由地点の削除をテストする
func TestRouteState_RemoveStop(t *testing.T) {
	state := NewRouteState()
	stop := state.AddStop(testPoint(37.77, -122.41, "Cafe"))
	state.AddStop(testPoint(37.78, -122.42, "Park"))

	state.RemoveStop(stop.ID)
	route, _ := state.View()
	require.Len(t, route.Stops, 1)
	assert.Equal(t, "Park", route.Stops[0].Name)

	// 存在しないIDの削除は何もしない
	state.RemoveStop("unknown-id")
	route, _ = state.View()
	assert.Len(t, route.Stops, 1)
}

// TestRouteState_ReorderStops は経由地点の並び替えをテストする
func TestRouteState_ReorderStops(t *testing.T) {
	state := NewRouteState()
	state.AddStop(testPoint(1, 1, "A"))
	state.AddStop(testPoint(2, 2, "B"))
	state.AddStop(testPoint(3, 3, "C"))

	// 先頭を末尾へ移動: [A,B,C] -> [B,C,A]
	require.NoError(t, state.ReorderStops(0, 2))
	route, _ := state.View()
	assert.Equal(t, []string{"B", "C", "A"}, stopNames(route.Stops))

	// 末尾を先頭へ移動: [B,C,A] -> [A,B,C]
	require.NoError(t, state.ReorderStops(2, 0))
	route, _ = state.View()
	assert.Equal(t, []string{"A", "B", "C"}, stopNames(route.Stops))

	// 同一インデックスは変化なし
	require.NoError(t, state.ReorderStops(1, 1))
	route, _ = state.View()
	assert.Equal(t, []string{"A", "B", "C"}, stopNames(route.Stops))
}

// TestRouteState_ReorderStops_OutOfRange は範囲外インデックスの拒否をテストする
func TestRouteState_ReorderStops_OutOfRange(t *testing.T) {
	state := NewRouteState()
	state.AddStop(testPoint(1, 1, "A"))
	state.AddStop(testPoint(2, 2, "B"))

	assert.Error(t, state.ReorderStops(-1, 0))
	assert.Error(t, state.ReorderStops(0, 2))
	assert.Error(t, state.ReorderStops(5, 0))

	// 失敗時は順序が変わらない
	route, _ := state.View()
	assert.Equal(t, []string{"A", "B"}, stopNames(route.Stops))
}

// TestRouteState_ApplyPoint は編集モードに従った地点の割り当てをテストする
func TestRouteState_ApplyPoint(t *testing.T) {
	state := NewRouteState()

	// 編集モード未設定ではエラー
	_, err := state.ApplyPoint(testPoint(1, 1, "X"))
	assert.Error(t, err)

	require.NoError(t, state.SetEditMode(model.EditModeStart))
	mode, err := state.ApplyPoint(testPoint(37.77, -122.41, "Start"))
	require.NoError(t, err)
	assert.Equal(t, model.EditModeStart, mode)

	require.NoError(t, state.SetEditMode(model.EditModeEnd))
	_, err = state.ApplyPoint(testPoint(37.78, -122.42, "End"))
	require.NoError(t, err)

	require.NoError(t, state.SetEditMode(model.EditModeStop))
	_, err = state.ApplyPoint(testPoint(37.79, -122.43, "Stop"))
	require.NoError(t, err)

	route, editMode := state.View()
	assert.Equal(t, model.EditModeNone, editMode, "割り当て後は編集モードがリセットされる")
	require.NotNil(t, route.StartPoint)
	require.NotNil(t, route.EndPoint)
	require.Len(t, route.Stops, 1)
}

// TestRouteState_UpdateRouteInfo_StaleRevision は古い経路応答の破棄をテストする
func TestRouteState_UpdateRouteInfo_StaleRevision(t *testing.T) {
	state := NewRouteState()
	state.SetStart(testPoint(37.77, -122.41, "Start"))
	state.SetEnd(testPoint(37.78, -122.42, "End"))

	_, _, _, revision, err := state.DirectionsQuery()
	require.NoError(t, err)

	// 経路応答を待つ間にルートが変更されたケース
	state.AddStop(testPoint(37.775, -122.415, "Cafe"))

	applied := state.UpdateRouteInfo(revision, "stale_polyline", 1000, 600)
	assert.False(t, applied, "古い世代の応答は破棄されること")

	route, _ := state.View()
	assert.Empty(t, route.RoutePolyline)
	assert.Nil(t, route.DistanceMeters)

	// 最新世代の応答は反映される
	_, _, _, revision, err = state.DirectionsQuery()
	require.NoError(t, err)
	applied = state.UpdateRouteInfo(revision, "fresh_polyline", 1200, 720)
	assert.True(t, applied)

	route, _ = state.View()
	assert.Equal(t, "fresh_polyline", route.RoutePolyline)
	require.NotNil(t, route.DistanceMeters)
	assert.Equal(t, 1200, *route.DistanceMeters)
}

// TestRouteState_InvalidateOnEdit はルート変更時の経路情報の破棄をテストする
func TestRouteState_InvalidateOnEdit(t *testing.T) {
	state := NewRouteState()
	state.SetStart(testPoint(37.77, -122.41, "Start"))
	state.SetEnd(testPoint(37.78, -122.42, "End"))

	_, _, _, revision, err := state.DirectionsQuery()
	require.NoError(t, err)
	require.True(t, state.UpdateRouteInfo(revision, "polyline", 1000, 600))

	// 経由地点を追加すると計算済みの経路情報は破棄される
	state.AddStop(testPoint(37.775, -122.415, "Cafe"))
	route, _ := state.View()
	assert.Empty(t, route.RoutePolyline)
	assert.Nil(t, route.DistanceMeters)
	assert.Nil(t, route.DurationSeconds)
}

// TestRouteState_DirectionsQuery_RequiresBothEndpoints は地点不足時のエラーをテストする
func TestRouteState_DirectionsQuery_RequiresBothEndpoints(t *testing.T) {
	state := NewRouteState()
	state.SetStart(testPoint(37.77, -122.41, "Start"))

	_, _, _, _, err := state.DirectionsQuery()
	assert.Error(t, err)
}

// TestRouteState_LoadSnapshot はスナップショットの読み込みをテストする
func TestRouteState_LoadSnapshot(t *testing.T) {
	state := NewRouteState()
	state.SetStart(testPoint(1, 1, "Old Start"))
	state.SetEnd(testPoint(2, 2, "Old End"))
	_, _, _, revision, err := state.DirectionsQuery()
	require.NoError(t, err)
	require.True(t, state.UpdateRouteInfo(revision, "old_polyline", 500, 300))

	start := testPoint(37.77, -122.41, "New Start")
	end := testPoint(37.78, -122.42, "New End")
	stops := []model.Stop{{ID: "stop-1", Point: testPoint(37.775, -122.415, "Cafe")}}

	state.LoadSnapshot(&start, &end, stops)

	route, editMode := state.View()
	assert.Equal(t, model.EditModeNone, editMode)
	assert.Equal(t, "New Start", route.StartPoint.Name)
	assert.Equal(t, "New End", route.EndPoint.Name)
	require.Len(t, route.Stops, 1)
	assert.Empty(t, route.RoutePolyline, "読み込み後は経路情報がリセットされる")
	assert.Nil(t, route.DistanceMeters)

	// 読み込み前に発行された世代の応答は破棄される
	assert.False(t, state.UpdateRouteInfo(revision, "stale", 1, 1))
}

// TestRouteState_Clear は初期状態への復帰をテストする
func TestRouteState_Clear(t *testing.T) {
	state := NewRouteState()
	state.SetStart(testPoint(1, 1, "Start"))
	state.SetEnd(testPoint(2, 2, "End"))
	state.AddStop(testPoint(3, 3, "Stop"))
	require.NoError(t, state.SetEditMode(model.EditModeStop))

	state.Clear()

	route, editMode := state.View()
	assert.Nil(t, route.StartPoint)
	assert.Nil(t, route.EndPoint)
	assert.Empty(t, route.Stops)
	assert.Equal(t, model.EditModeNone, editMode)
	assert.False(t, state.HasValidRoute())
}

// TestRouteState_ViewIsCopy はViewの結果が内部状態から独立していることをテストする
func TestRouteState_ViewIsCopy(t *testing.T) {
	state := NewRouteState()
	state.SetStart(testPoint(37.77, -122.41, "Start"))
	state.AddStop(testPoint(37.78, -122.42, "Cafe"))

	route, _ := state.View()
	route.StartPoint.Name = "mutated"
	route.Stops[0].Name = "mutated"

	fresh, _ := state.View()
	assert.Equal(t, "Start", fresh.StartPoint.Name)
	assert.Equal(t, "Cafe", fresh.Stops[0].Name)
}

func stopNames(stops []model.Stop) []string {
	names := make([]string, len(stops))
	for i, stop := range stops {
		names[i] = stop.Name
	}
	return names
}
