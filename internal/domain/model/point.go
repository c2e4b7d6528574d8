package model

// LatLng 緯度経度を表す基本的な型（経路検索などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsValid 緯度経度が有効範囲内かチェック
func (l LatLng) IsValid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// Point 地図上の地点を表すモデル（逆ジオコーディングや検索結果から生成される）
type Point struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"` // 住所（取得できない場合は空文字列）
	Name    string  `json:"name,omitempty"`    // 地点名
	PlaceID string  `json:"place_id,omitempty"`
	Type    string  `json:"type,omitempty"` // カテゴリタグ（coffee, park, food など）
}

// ToLatLng Pointの位置情報をLatLng型に変換
func (p *Point) ToLatLng() LatLng {
	return LatLng{Lat: p.Lat, Lng: p.Lng}
}

// GeoPolygon PostGIS GEOMETRY(Polygon) 型に対応する構造体
type GeoPolygon struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// Stop ルート上の経由地点（Point + セッション内で安定したID）
type Stop struct {
	ID string `json:"id"` // セッションローカルなユニークID
	Point
}

// EditMode 次の地点確定イベントをどのフィールドに割り当てるかを表す編集モード
type EditMode string

const (
	EditModeNone  EditMode = ""
	EditModeStart EditMode = "start"
	EditModeEnd   EditMode = "end"
	EditModeStop  EditMode = "stop"
)

// IsValid 編集モードが定義済みの値かチェック
func (m EditMode) IsValid() bool {
	switch m {
	case EditModeNone, EditModeStart, EditModeEnd, EditModeStop:
		return true
	}
	return false
}
