package helper

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"PerfectWalk-App/internal/domain/model"
)

// DistanceMeters は2地点間の大圏距離を計算する (m)
// 地点が欠けている場合はnilを返す
func DistanceMeters(p1, p2 *model.LatLng) *float64 {
	if p1 == nil || p2 == nil {
		return nil
	}
	d := geo.Distance(orb.Point{p1.Lng, p1.Lat}, orb.Point{p2.Lng, p2.Lat})
	return &d
}

// Midpoint は2地点の中間点を計算する
func Midpoint(a, b model.LatLng) model.LatLng {
	return model.LatLng{
		Lat: (a.Lat + b.Lat) / 2,
		Lng: (a.Lng + b.Lng) / 2,
	}
}

// FormatMetersShort は距離を短い表示用文字列に変換する（1km未満はm、以上はkm小数1桁）
func FormatMetersShort(meters *float64) string {
	if meters == nil || math.IsNaN(*meters) {
		return ""
	}
	if *meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(*meters)))
	}
	return fmt.Sprintf("%.1f km", *meters/1000)
}

// FormatDistance は距離を表示用文字列に変換する（1km未満はm、以上はkm小数2桁）
func FormatDistance(meters int) string {
	if meters <= 0 {
		return ""
	}
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	return fmt.Sprintf("%.2f km", float64(meters)/1000)
}

// FormatDuration は所要時間を表示用文字列に変換する（1時間以上は "Xh Ym"、未満は "Y min"）
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%d min", minutes)
}

// CacheCoordKey はキャッシュキー用に座標を小数3桁（約110m精度）へ丸めた文字列を返す
// 丸めが細かいとプロバイダ呼び出しが増え、粗いと移動中のユーザーに古い結果が返る
func CacheCoordKey(category string, location model.LatLng) string {
	return fmt.Sprintf("%s-%.3f-%.3f", category, location.Lat, location.Lng)
}

// フォールバック座標のオフセット定数
const (
	// FallbackEndOffsetDeg フォールバックルートの終了地点オフセット（約150m）
	FallbackEndOffsetDeg = 0.001
	// fallbackStepLatDeg / fallbackStepLngDeg 未解決地点の序数ごとのオフセット
	fallbackStepLatDeg = 0.0008
	fallbackStepLngDeg = 0.0005
)

// FallbackOffset は座標解決に失敗した地点の代替座標を決定的に計算する
// 基準位置を序数に応じてずらすことで、再現可能かつ重ならない座標を返す
func FallbackOffset(base model.LatLng, ordinal int) model.LatLng {
	step := float64(ordinal + 1)
	return model.LatLng{
		Lat: base.Lat + fallbackStepLatDeg*step,
		Lng: base.Lng + fallbackStepLngDeg*step,
	}
}

// CreateBoundingBoxPolygon は開始・終了位置からパディング付き境界ボックスを作成する
func CreateBoundingBoxPolygon(startPoint, endPoint *model.Point) *model.GeoPolygon {
	if startPoint == nil || endPoint == nil {
		return nil
	}

	start := orb.Point{startPoint.Lng, startPoint.Lat}
	end := orb.Point{endPoint.Lng, endPoint.Lat}

	bound := orb.Bound{Min: start, Max: start}
	bound = bound.Extend(start).Extend(end)

	// 少し余裕を持たせる（約100m程度）
	padding := 0.001
	bound = bound.Pad(padding)

	minLng := bound.Min.Lon()
	minLat := bound.Min.Lat()
	maxLng := bound.Max.Lon()
	maxLat := bound.Max.Lat()

	coordinates := [][][]float64{
		{
			{minLng, minLat},
			{maxLng, minLat},
			{maxLng, maxLat},
			{minLng, maxLat},
			{minLng, minLat},
		},
	}

	return &model.GeoPolygon{
		Type:        "Polygon",
		Coordinates: coordinates,
	}
}
