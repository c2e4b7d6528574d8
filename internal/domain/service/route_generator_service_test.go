package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PerfectWalk-App/internal/domain/helper"
	"PerfectWalk-App/internal/domain/model"
)

// TestRouteGenerator_EmptyPrompt は空のプロンプトの拒否をテストする
func TestRouteGenerator_EmptyPrompt(t *testing.T) {
	generator := NewRouteGeneratorService(&stubTextGen{}, &stubPlaces{})

	_, err := generator.Generate(context.Background(), "   ", nil, nil)
	assert.Error(t, err)
}

// TestRouteGenerator_FallbackWhenUnconfigured はAI未設定時のフォールバックをテストする
func TestRouteGenerator_FallbackWhenUnconfigured(t *testing.T) {
	generator := NewRouteGeneratorService(&stubTextGen{configured: false}, &stubPlaces{})

	plan, err := generator.Generate(context.Background(), "quiet morning walk", nil, nil)
	require.NoError(t, err)

	// デフォルト中心に固定された2地点ルート
	require.True(t, plan.Start.HasCoordinates())
	require.True(t, plan.End.HasCoordinates())
	assert.Equal(t, DefaultCenter.Lat, *plan.Start.Lat)
	assert.Equal(t, DefaultCenter.Lng, *plan.Start.Lng)
	assert.Equal(t, DefaultCenter.Lat+helper.FallbackEndOffsetDeg, *plan.End.Lat)
	assert.Equal(t, DefaultCenter.Lng+helper.FallbackEndOffsetDeg, *plan.End.Lng)
	assert.Empty(t, plan.Stops)
	assert.Contains(t, plan.Description, "quiet morning walk")
}

// TestRouteGenerator_FallbackAnchorPriority はフォールバックの基準位置の優先順位をテストする
func TestRouteGenerator_FallbackAnchorPriority(t *testing.T) {
	generator := NewRouteGeneratorService(&stubTextGen{configured: false}, &stubPlaces{})
	ctx := context.Background()

	area := &model.Area{Name: "Portland", Lat: 45.5152, Lng: -122.6784}
	userLocation := &model.LatLng{Lat: 40.7128, Lng: -74.0060}

	// ユーザー位置が最優先
	plan, err := generator.Generate(ctx, "walk", area, userLocation)
	require.NoError(t, err)
	assert.Equal(t, userLocation.Lat, *plan.Start.Lat)

	// ユーザー位置がなければエリア中心
	plan, err = generator.Generate(ctx, "walk", area, nil)
	require.NoError(t, err)
	assert.Equal(t, area.Lat, *plan.Start.Lat)

	// どちらもなければデフォルト中心
	plan, err = generator.Generate(ctx, "walk", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultCenter.Lat, *plan.Start.Lat)
}

// TestRouteGenerator_FallbackOnProviderError はAI呼び出し失敗時のフォールバックをテストする
func TestRouteGenerator_FallbackOnProviderError(t *testing.T) {
	textGen := &stubTextGen{configured: true, err: errors.New("quota exceeded")}
	generator := NewRouteGeneratorService(textGen, &stubPlaces{})

	plan, err := generator.Generate(context.Background(), "park loop", nil, nil)
	require.NoError(t, err, "プロバイダの失敗はフォールバックで吸収される")
	assert.True(t, plan.Start.HasCoordinates())
	assert.True(t, plan.End.HasCoordinates())
	assert.Empty(t, plan.Stops)
}

// TestRouteGenerator_FallbackOnBrokenOutput は壊れたAI出力のフォールバックをテストする
func TestRouteGenerator_FallbackOnBrokenOutput(t *testing.T) {
	textGen := &stubTextGen{configured: true, response: "Sure! Here is a nice route for you."}
	generator := NewRouteGeneratorService(textGen, &stubPlaces{})

	plan, err := generator.Generate(context.Background(), "walk", nil, nil)
	require.NoError(t, err)
	assert.True(t, plan.Start.HasCoordinates())
	assert.True(t, plan.End.HasCoordinates())
}

// TestRouteGenerator_ParsesFencedJSON はコードフェンス付きJSONのパースをテストする
func TestRouteGenerator_ParsesFencedJSON(t *testing.T) {
	textGen := &stubTextGen{configured: true, response: "```json\n" + `{
		"start": {"name": "Ferry Building", "lat": 37.7955, "lng": -122.3937},
		"stops": [{"name": "Exploratorium", "lat": 37.8017, "lng": -122.3973}],
		"end": {"name": "Pier 39", "lat": 37.8087, "lng": -122.4098},
		"totalDistance": "2.5 km",
		"description": "Waterfront stroll"
	}` + "\n```"}
	generator := NewRouteGeneratorService(textGen, &stubPlaces{})

	plan, err := generator.Generate(context.Background(), "waterfront walk", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ferry Building", plan.Start.Name)
	require.Len(t, plan.Stops, 1)
	assert.Equal(t, "Exploratorium", plan.Stops[0].Name)
	assert.Equal(t, "2.5 km", plan.TotalDistance)
	assert.Equal(t, "Waterfront stroll", plan.Description)
}

// TestRouteGenerator_ResolvesMissingCoordinates は座標未解決地点のプレイス検索解決をテストする
func TestRouteGenerator_ResolvesMissingCoordinates(t *testing.T) {
	textGen := &stubTextGen{configured: true, response: `{
		"start": {"name": "Start", "lat": 37.77, "lng": -122.41},
		"stops": [{"name": "Blue Bottle", "lat": null, "lng": null, "query": "Blue Bottle Coffee SF"}],
		"end": {"name": "End", "lat": 37.78, "lng": -122.42},
		"totalDistance": "3 km",
		"description": "Coffee walk"
	}`}
	places := &stubPlaces{
		configured: true,
		textResults: []model.Suggestion{
			{Name: "Blue Bottle Coffee", Lat: floatPtr(37.7763), Lng: floatPtr(-122.4233)},
		},
	}
	generator := NewRouteGeneratorService(textGen, places)

	plan, err := generator.Generate(context.Background(), "coffee walk", nil, nil)
	require.NoError(t, err)
	require.Len(t, plan.Stops, 1)
	require.True(t, plan.Stops[0].HasCoordinates())
	assert.Equal(t, 37.7763, *plan.Stops[0].Lat)
	assert.Equal(t, "Blue Bottle Coffee", plan.Stops[0].Name)
	assert.Contains(t, places.textQueries, "Blue Bottle Coffee SF")
}

// TestRouteGenerator_DeterministicOffsetWhenResolutionFails は解決失敗時の決定的オフセットをテストする
func TestRouteGenerator_DeterministicOffsetWhenResolutionFails(t *testing.T) {
	response := `{
		"start": {"name": "Start", "lat": 37.77, "lng": -122.41},
		"stops": [
			{"name": "Mystery Cafe", "lat": null, "lng": null, "query": "nowhere"},
			{"name": "Hidden Garden", "lat": null, "lng": null, "query": "nowhere"}
		],
		"end": {"name": "End", "lat": 37.78, "lng": -122.42},
		"totalDistance": "3 km",
		"description": "walk"
	}`
	textGen := &stubTextGen{configured: true, response: response}
	places := &stubPlaces{configured: true, textResults: []model.Suggestion{}}
	generator := NewRouteGeneratorService(textGen, places)

	userLocation := &model.LatLng{Lat: 37.77, Lng: -122.41}
	plan, err := generator.Generate(context.Background(), "walk", nil, userLocation)
	require.NoError(t, err)
	require.Len(t, plan.Stops, 2)

	// すべての地点に座標が埋まっている
	for _, stop := range plan.Stops {
		assert.True(t, stop.HasCoordinates())
	}

	// 序数ごとに異なる決定的な座標
	expectedFirst := helper.FallbackOffset(*userLocation, 1)
	expectedSecond := helper.FallbackOffset(*userLocation, 2)
	assert.Equal(t, expectedFirst.Lat, *plan.Stops[0].Lat)
	assert.Equal(t, expectedSecond.Lat, *plan.Stops[1].Lat)
	assert.NotEqual(t, *plan.Stops[0].Lat, *plan.Stops[1].Lat)

	// 同じ入力なら毎回同じ結果
	again, err := generator.Generate(context.Background(), "walk", nil, userLocation)
	require.NoError(t, err)
	assert.Equal(t, *plan.Stops[0].Lat, *again.Stops[0].Lat)
	assert.Equal(t, *plan.Stops[1].Lng, *again.Stops[1].Lng)
}

// TestRouteGenerator_ClampsStops は経由地点の最大数クランプをテストする
func TestRouteGenerator_ClampsStops(t *testing.T) {
	response := `{
		"start": {"name": "Start", "lat": 37.77, "lng": -122.41},
		"stops": [
			{"name": "S1", "lat": 1, "lng": 1},
			{"name": "S2", "lat": 2, "lng": 2},
			{"name": "S3", "lat": 3, "lng": 3},
			{"name": "S4", "lat": 4, "lng": 4},
			{"name": "S5", "lat": 5, "lng": 5},
			{"name": "S6", "lat": null, "lng": null, "query": "overflow"},
			{"name": "S7", "lat": null, "lng": null, "query": "overflow"}
		],
		"end": {"name": "End", "lat": 37.78, "lng": -122.42},
		"totalDistance": "9 km",
		"description": "long walk"
	}`
	textGen := &stubTextGen{configured: true, response: response}
	places := &stubPlaces{configured: true, textResults: []model.Suggestion{}}
	generator := NewRouteGeneratorService(textGen, places)

	plan, err := generator.Generate(context.Background(), "long walk", nil, nil)
	require.NoError(t, err)
	assert.Len(t, plan.Stops, MaxGeneratedStops)
	// クランプは解決前に行われるため、超過分のプレイス検索は発生しない
	assert.Empty(t, places.textQueries)
}

// TestRouteGenerator_DegenerateRouteNudged は開始・終了が一致する退化ルートの補正をテストする
func TestRouteGenerator_DegenerateRouteNudged(t *testing.T) {
	response := `{
		"start": {"name": "Plaza", "lat": 37.77, "lng": -122.41},
		"stops": [],
		"end": {"name": "Plaza", "lat": 37.77, "lng": -122.41},
		"totalDistance": "0 km",
		"description": "loop"
	}`
	textGen := &stubTextGen{configured: true, response: response}
	generator := NewRouteGeneratorService(textGen, &stubPlaces{})

	plan, err := generator.Generate(context.Background(), "loop", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 37.77+helper.FallbackEndOffsetDeg, *plan.End.Lat)
	assert.Equal(t, -122.41+helper.FallbackEndOffsetDeg, *plan.End.Lng)
	assert.Equal(t, 37.77, *plan.Start.Lat, "開始地点は変更しない")
}
