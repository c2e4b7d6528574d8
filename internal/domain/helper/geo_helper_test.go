package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PerfectWalk-App/internal/domain/model"
)

// TestDistanceMeters は2地点間の距離計算をテストする
func TestDistanceMeters(t *testing.T) {
	// サンフランシスコ フェリービルディング → ドロレスパーク（約4km）
	a := &model.LatLng{Lat: 37.7955, Lng: -122.3937}
	b := &model.LatLng{Lat: 37.7596, Lng: -122.4269}

	d := DistanceMeters(a, b)
	require.NotNil(t, d)
	assert.InDelta(t, 4900, *d, 500)

	// 同一地点はゼロ
	zero := DistanceMeters(a, a)
	require.NotNil(t, zero)
	assert.InDelta(t, 0, *zero, 0.001)

	// 地点が欠けている場合はnil
	assert.Nil(t, DistanceMeters(nil, b))
	assert.Nil(t, DistanceMeters(a, nil))
}

// TestMidpoint は中間点の計算をテストする
func TestMidpoint(t *testing.T) {
	mid := Midpoint(model.LatLng{Lat: 10, Lng: 20}, model.LatLng{Lat: 20, Lng: 40})
	assert.Equal(t, 15.0, mid.Lat)
	assert.Equal(t, 30.0, mid.Lng)
}

// TestFormatMetersShort は短い距離表示のフォーマットをテストする
func TestFormatMetersShort(t *testing.T) {
	m := func(v float64) *float64 { return &v }

	assert.Equal(t, "500 m", FormatMetersShort(m(500)))
	assert.Equal(t, "999 m", FormatMetersShort(m(999.4)))
	assert.Equal(t, "1.5 km", FormatMetersShort(m(1500)))
	assert.Equal(t, "", FormatMetersShort(nil))
}

// TestFormatDistance は距離表示のフォーマットをテストする
func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "800 m", FormatDistance(800))
	assert.Equal(t, "2.50 km", FormatDistance(2500))
	assert.Equal(t, "", FormatDistance(0))
	assert.Equal(t, "", FormatDistance(-10))
}

// TestFormatDuration は所要時間表示のフォーマットをテストする
func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "25 min", FormatDuration(1500))
	assert.Equal(t, "1h 15m", FormatDuration(4500))
	assert.Equal(t, "", FormatDuration(0))
}

// TestCacheCoordKey は座標丸めキーの生成をテストする
func TestCacheCoordKey(t *testing.T) {
	base := model.LatLng{Lat: 37.7749, Lng: -122.4194}

	key := CacheCoordKey("coffee", base)
	assert.Equal(t, "coffee-37.775--122.419", key)

	// 約110m以内の移動では同じキー
	nearby := model.LatLng{Lat: 37.7751, Lng: -122.4192}
	assert.Equal(t, key, CacheCoordKey("coffee", nearby))

	// カテゴリが違えば別キー
	assert.NotEqual(t, key, CacheCoordKey("parks", base))

	// 大きく移動すれば別キー
	far := model.LatLng{Lat: 37.80, Lng: -122.42}
	assert.NotEqual(t, key, CacheCoordKey("coffee", far))
}

// TestFallbackOffset は決定的なフォールバック座標の生成をテストする
func TestFallbackOffset(t *testing.T) {
	base := model.LatLng{Lat: 37.77, Lng: -122.41}

	first := FallbackOffset(base, 0)
	second := FallbackOffset(base, 1)

	// 序数ごとに異なる座標
	assert.NotEqual(t, first, second)

	// 同じ入力なら常に同じ結果
	assert.Equal(t, first, FallbackOffset(base, 0))
	assert.Equal(t, second, FallbackOffset(base, 1))

	// 基準位置からのずれは序数に比例する
	assert.InDelta(t, base.Lat+0.0008, first.Lat, 1e-9)
	assert.InDelta(t, base.Lat+0.0016, second.Lat, 1e-9)
}

// TestCreateBoundingBoxPolygon は境界ボックスポリゴンの生成をテストする
func TestCreateBoundingBoxPolygon(t *testing.T) {
	start := &model.Point{Lat: 37.77, Lng: -122.41}
	end := &model.Point{Lat: 37.78, Lng: -122.40}

	polygon := CreateBoundingBoxPolygon(start, end)
	require.NotNil(t, polygon)
	assert.Equal(t, "Polygon", polygon.Type)
	require.Len(t, polygon.Coordinates, 1)
	ring := polygon.Coordinates[0]
	require.Len(t, ring, 5)

	// リングが閉じている
	assert.Equal(t, ring[0], ring[4])

	// パディング込みで両地点を含む
	minLng, minLat := ring[0][0], ring[0][1]
	maxLng, maxLat := ring[2][0], ring[2][1]
	assert.Less(t, minLng, -122.41)
	assert.Greater(t, maxLng, -122.40)
	assert.Less(t, minLat, 37.77)
	assert.Greater(t, maxLat, 37.78)

	// 地点が欠けている場合はnil
	assert.Nil(t, CreateBoundingBoxPolygon(nil, end))
	assert.Nil(t, CreateBoundingBoxPolygon(start, nil))
}
