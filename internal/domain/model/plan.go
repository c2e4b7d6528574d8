package model

import "time"

// NamedPoint AIが提案した名前付き地点
// 座標が未解決の場合はQueryを使ってプレイス検索で解決する
type NamedPoint struct {
	Name  string   `json:"name"`
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Query string   `json:"query,omitempty"` // 座標解決用の検索クエリ
}

// HasCoordinates 座標が解決済みかチェック
func (p *NamedPoint) HasCoordinates() bool {
	return p.Lat != nil && p.Lng != nil
}

// GeneratedRoutePlan AIが生成したルート案（明示的に採用されるまでRouteには反映されない）
type GeneratedRoutePlan struct {
	Start         NamedPoint   `json:"start"`
	Stops         []NamedPoint `json:"stops"` // 最大5件
	End           NamedPoint   `json:"end"`
	TotalDistance string       `json:"total_distance"` // 表示用ラベル（例: "5.2 km"）
	Description   string       `json:"description"`
}

// FirestoreRoutePlan Firestoreに保存するルート案（TTL付き）
type FirestoreRoutePlan struct {
	Start         NamedPoint   `firestore:"start"`
	Stops         []NamedPoint `firestore:"stops"`
	End           NamedPoint   `firestore:"end"`
	TotalDistance string       `firestore:"total_distance"`
	Description   string       `firestore:"description"`
	Prompt        string       `firestore:"prompt"`
	ExpireAt      time.Time    `firestore:"expireAt"`
}

// ToFirestoreRoutePlan GeneratedRoutePlanをFirestore保存用に変換
func (p *GeneratedRoutePlan) ToFirestoreRoutePlan(prompt string, ttlHours int) *FirestoreRoutePlan {
	return &FirestoreRoutePlan{
		Start:         p.Start,
		Stops:         p.Stops,
		End:           p.End,
		TotalDistance: p.TotalDistance,
		Description:   p.Description,
		Prompt:        prompt,
		ExpireAt:      time.Now().Add(time.Duration(ttlHours) * time.Hour),
	}
}

// ToGeneratedRoutePlan Firestoreのデータを GeneratedRoutePlan に戻す
func (f *FirestoreRoutePlan) ToGeneratedRoutePlan() *GeneratedRoutePlan {
	return &GeneratedRoutePlan{
		Start:         f.Start,
		Stops:         f.Stops,
		End:           f.End,
		TotalDistance: f.TotalDistance,
		Description:   f.Description,
	}
}

// Area ユーザーが選択した地理的アンカー（都市・地域）
type Area struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// GenerateRouteRequest ルート生成リクエスト
type GenerateRouteRequest struct {
	Prompt       string  `json:"prompt" validate:"required"`
	Area         *Area   `json:"area"`
	UserLocation *LatLng `json:"user_location"`
}

// GenerateRouteResponse ルート生成レスポンス
type GenerateRouteResponse struct {
	PlanID string              `json:"plan_id"`
	Plan   *GeneratedRoutePlan `json:"plan"`
}

// AdoptPlanRequest ルート案をセッションに採用するリクエスト
type AdoptPlanRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}
