package model

// VibeConstants ユーザーが選択できる散歩の雰囲気タグ
const (
	VibeScenicNature    = "scenic-nature"
	VibeParksGreen      = "parks-green"
	VibeCoffeeStop      = "coffee-stop"
	VibeFoodBreak       = "food-break"
	VibeWaterfrontViews = "waterfront-views"
	VibeLandmarks       = "landmarks"
	VibeQuietStreets    = "quiet-streets"
	VibeSafetyWellLit   = "safety-well-lit"
	VibeFlatEasy        = "flat-easy"
	VibeHillsWorkout    = "hills-workout"
	VibeDogFriendly     = "dog-friendly"
	VibeAccessible      = "accessible"
)

// CategoryConstants おすすめスポットのカテゴリ
const (
	CategoryCoffee = "coffee"
	CategoryParks  = "parks"
	CategoryFood   = "food"
	CategoryTrails = "trails"
)

// Preferences ユーザーの散歩設定
type Preferences struct {
	HasCompletedOnboarding bool     `json:"has_completed_onboarding"`
	Area                   *Area    `json:"area"`
	Vibes                  []string `json:"vibes"`
	Activity               string   `json:"activity"`       // "walk", "run" など
	DistanceMeters         int      `json:"distance"`       // 目標距離
	RouteShape             string   `json:"route_shape"`    // "loop" or "point-to-point"
	TimeAvailableMinutes   int      `json:"time_available"` // 利用可能時間
}

// DefaultPreferences 初期状態の設定を返す
func DefaultPreferences() *Preferences {
	return &Preferences{
		HasCompletedOnboarding: false,
		Area:                   nil,
		Vibes:                  []string{},
		Activity:               "walk",
		DistanceMeters:         5000,
		RouteShape:             "loop",
		TimeAvailableMinutes:   30,
	}
}

// Normalize 欠けているフィールドをデフォルト値で埋める
func (p *Preferences) Normalize() {
	if p.Vibes == nil {
		p.Vibes = []string{}
	}
	if p.Activity == "" {
		p.Activity = "walk"
	}
	if p.DistanceMeters <= 0 {
		p.DistanceMeters = 5000
	}
	if p.RouteShape == "" {
		p.RouteShape = "loop"
	}
	if p.TimeAvailableMinutes <= 0 {
		p.TimeAvailableMinutes = 30
	}
}

// DefaultDiscoverCategory 選択された雰囲気タグからデフォルトの探索カテゴリを導出する
func (p *Preferences) DefaultDiscoverCategory() string {
	vibes := make(map[string]bool, len(p.Vibes))
	for _, v := range p.Vibes {
		vibes[v] = true
	}
	if vibes[VibeCoffeeStop] {
		return CategoryCoffee
	}
	if vibes[VibeParksGreen] || vibes[VibeScenicNature] {
		return CategoryParks
	}
	if vibes[VibeFoodBreak] {
		return CategoryFood
	}
	return CategoryCoffee
}

// PreferencesResponse 設定取得レスポンス（導出カテゴリを含む）
type PreferencesResponse struct {
	Preferences      *Preferences `json:"preferences"`
	DiscoverCategory string       `json:"discover_category"`
}
