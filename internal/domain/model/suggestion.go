package model

// Suggestion プロバイダ非依存の正規化されたおすすめスポット
// 取得できなかったフィールドはnullのまま返す（省略しない）
// 消費側はnullを「不明」として扱うこと（false/0とは区別する）
type Suggestion struct {
	ID               string   `json:"id"`
	PlaceID          string   `json:"place_id,omitempty"`
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Lat              *float64 `json:"lat"`
	Lng              *float64 `json:"lng"`
	Type             string   `json:"type"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	IsOpenNow        *bool    `json:"is_open_now"`
	PhotoURL         *string  `json:"photo_url"`
	DistanceMeters   *int     `json:"distance_meters"`
}

// HasCoordinates 座標が解決済みかチェック
func (s *Suggestion) HasCoordinates() bool {
	return s.Lat != nil && s.Lng != nil
}

// GetSuggestionsResponse おすすめスポット一覧のレスポンス
type GetSuggestionsResponse struct {
	Category    string       `json:"category"`
	Suggestions []Suggestion `json:"suggestions"`
}

// PlaceDetails プレイス詳細（選択中マーカーの遅延エンリッチに使用）
type PlaceDetails struct {
	PlaceID          string   `json:"place_id"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	IsOpenNow        *bool    `json:"is_open_now"`
	PhotoURL         *string  `json:"photo_url"`
}

// PlaceQuery AIチャットが提案したプレイス検索クエリ
type PlaceQuery struct {
	Query string `json:"query"`
	Type  string `json:"type,omitempty"`
}

// ChatRequest チャットリクエスト
type ChatRequest struct {
	Message      string  `json:"message" validate:"required"`
	AreaName     string  `json:"area_name"`
	Location     *LatLng `json:"location"`
	SessionID    string  `json:"session_id"`
	UserLocation *LatLng `json:"user_location"`
}

// ChatResult チャット1ターンの結果
type ChatResult struct {
	Reply  string       `json:"reply"`
	Places []PlaceQuery `json:"places"`
}

// ResolvePlaceRequest プレイスクエリの座標解決リクエスト
type ResolvePlaceRequest struct {
	Query    string  `json:"query" validate:"required"`
	Type     string  `json:"type"`
	AreaName string  `json:"area_name"`
	Location *LatLng `json:"location" validate:"required"`
}

// AddPlacesRequest チャット提案プレイスの一括追加リクエスト
type AddPlacesRequest struct {
	Places   []PlaceQuery `json:"places" validate:"required"`
	AreaName string       `json:"area_name"`
	Location *LatLng      `json:"location"`
}

// AddPlaceResult 一括追加の個別結果（部分的な失敗を許容する）
type AddPlaceResult struct {
	Query    string `json:"query"`
	Resolved bool   `json:"resolved"`
	Stop     *Stop  `json:"stop,omitempty"`
}

// AddPlacesResponse 一括追加のレスポンス
type AddPlacesResponse struct {
	Results []AddPlaceResult `json:"results"`
}
