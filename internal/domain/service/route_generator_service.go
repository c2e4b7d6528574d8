package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"PerfectWalk-App/internal/domain/helper"
	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/domain/repository"
	"PerfectWalk-App/internal/infrastructure/ai"
)

// DefaultCenter 位置情報が一切ない場合のフォールバック中心（サンフランシスコ）
var DefaultCenter = model.LatLng{Lat: 37.7749, Lng: -122.4194}

const (
	// MaxGeneratedStops AIルート案の経由地点の上限（外部呼び出し回数を抑えるため解決前に適用）
	MaxGeneratedStops = 5

	// resolveRadiusMeters 座標解決用テキスト検索の位置バイアス半径
	resolveRadiusMeters = 10000
)

// RouteGeneratorService は自由テキストのプロンプトからルート案を生成するサービス
// 生成AIが使えない・出力が壊れている場合でも、常に座標が埋まったルート案を返す
type RouteGeneratorService interface {
	Generate(ctx context.Context, prompt string, area *model.Area, userLocation *model.LatLng) (*model.GeneratedRoutePlan, error)
}

type routeGeneratorService struct {
	textGen repository.TextGenerationRepository
	places  repository.PlacesRepository
}

// NewRouteGeneratorService 新しいRouteGeneratorServiceインスタンスを作成
func NewRouteGeneratorService(textGen repository.TextGenerationRepository, places repository.PlacesRepository) RouteGeneratorService {
	return &routeGeneratorService{
		textGen: textGen,
		places:  places,
	}
}

// Generate はプロンプトと位置コンテキストからルート案を生成する
// 空のプロンプトのみエラーとし、それ以外の失敗は決定的なフォールバックで吸収する
func (s *routeGeneratorService) Generate(ctx context.Context, prompt string, area *model.Area, userLocation *model.LatLng) (*model.GeneratedRoutePlan, error) {
	cleaned := strings.TrimSpace(prompt)
	if cleaned == "" {
		return nil, errors.New("プロンプトを入力してください")
	}

	base := s.resolveBaseLocation(area, userLocation)

	if !s.textGen.IsConfigured() {
		log.Printf("⚠️ 生成AIが未設定のためフォールバックルートを返します")
		return s.fallbackPlan(cleaned, base), nil
	}

	raw, err := s.textGen.GenerateContent(ctx, s.buildPrompt(cleaned, area, base))
	if err != nil {
		log.Printf("⚠️ ルート生成のAI呼び出しに失敗、フォールバック使用: %v", err)
		return s.fallbackPlan(cleaned, base), nil
	}

	payload := s.parsePlan(raw)
	if payload == nil {
		log.Printf("⚠️ AI応答からルート案を抽出できず、フォールバック使用")
		return s.fallbackPlan(cleaned, base), nil
	}

	// 経由地点は解決前に最大数へクランプする
	stops := payload.Stops
	if len(stops) > MaxGeneratedStops {
		stops = stops[:MaxGeneratedStops]
	}

	plan := &model.GeneratedRoutePlan{
		Start:         s.resolvePoint(ctx, *payload.Start, base, 0, "Start"),
		End:           s.resolvePoint(ctx, *payload.End, base, len(stops)+1, "End"),
		TotalDistance: payload.TotalDistance,
		Description:   payload.Description,
	}
	plan.Stops = make([]model.NamedPoint, len(stops))
	for i, stop := range stops {
		plan.Stops[i] = s.resolvePoint(ctx, stop, base, i+1, fmt.Sprintf("Stop %d", i+1))
	}

	s.guardDegenerate(plan)
	return plan, nil
}

// resolveBaseLocation はユーザー位置→エリア→デフォルト中心の優先順で基準位置を決める
func (s *routeGeneratorService) resolveBaseLocation(area *model.Area, userLocation *model.LatLng) model.LatLng {
	if userLocation != nil && userLocation.IsValid() {
		return *userLocation
	}
	if area != nil {
		return model.LatLng{Lat: area.Lat, Lng: area.Lng}
	}
	return DefaultCenter
}

// buildPrompt はルート案のJSON出力を指示するプロンプトを構築する
func (s *routeGeneratorService) buildPrompt(prompt string, area *model.Area, base model.LatLng) string {
	locationLabel := fmt.Sprintf("coordinates %.4f, %.4f", base.Lat, base.Lng)
	if area != nil && area.Name != "" {
		locationLabel = fmt.Sprintf("%s (center %.4f, %.4f)", area.Name, base.Lat, base.Lng)
	}

	return fmt.Sprintf(`You are a walking route expert planning a route near %s.

User request:
%s

Task:
Plan a walking route with a start point, up to %d interesting stops, and an end point.

Output format:
Return ONLY valid JSON with this exact shape:
{
  "start": { "name": "string", "lat": number or null, "lng": number or null, "query": "search query" },
  "stops": [ { "name": "string", "lat": number or null, "lng": number or null, "query": "search query" } ],
  "end": { "name": "string", "lat": number or null, "lng": number or null, "query": "search query" },
  "totalDistance": "e.g. 5.2 km",
  "description": "1-2 sentence summary of the route"
}

Rules:
- Use real places near the given location.
- If you are not sure about exact coordinates, set lat/lng to null and provide a "query" that a places search can resolve (include neighborhood/city if needed).
- "stops" must contain at most %d entries.`,
		locationLabel, prompt, MaxGeneratedStops, MaxGeneratedStops)
}

// generatedPlanPayload はAI応答のJSONをパースするための構造体
type generatedPlanPayload struct {
	Start         *model.NamedPoint  `json:"start"`
	Stops         []model.NamedPoint `json:"stops"`
	End           *model.NamedPoint  `json:"end"`
	TotalDistance string             `json:"totalDistance"`
	Description   string             `json:"description"`
}

// parsePlan はAIの自由テキストからルート案を抽出する（失敗時はnil）
func (s *routeGeneratorService) parsePlan(raw string) *generatedPlanPayload {
	jsonText := ai.ExtractJSONObject(raw)
	if jsonText == "" {
		return nil
	}

	var payload generatedPlanPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return nil
	}
	if payload.Start == nil || payload.End == nil {
		return nil
	}
	return &payload
}

// resolvePoint は座標未解決の地点をプレイス検索で解決する
// 検索に失敗した場合は基準位置から序数に応じた決定的なオフセット座標を代入する
func (s *routeGeneratorService) resolvePoint(ctx context.Context, np model.NamedPoint, base model.LatLng, ordinal int, fallbackName string) model.NamedPoint {
	if strings.TrimSpace(np.Name) == "" {
		np.Name = fallbackName
	}
	if np.HasCoordinates() {
		return np
	}

	query := strings.TrimSpace(np.Query)
	if query == "" {
		query = np.Name
	}

	if s.places.IsConfigured() && query != "" {
		results, err := s.places.TextSearch(ctx, query, base, resolveRadiusMeters)
		if err != nil {
			log.Printf("⚠️ 地点「%s」の座標解決に失敗: %v", np.Name, err)
		} else if len(results) > 0 && results[0].HasCoordinates() {
			first := results[0]
			np.Lat = first.Lat
			np.Lng = first.Lng
			if first.Name != "" {
				np.Name = first.Name
			}
			return np
		}
	}

	offset := helper.FallbackOffset(base, ordinal)
	np.Lat = &offset.Lat
	np.Lng = &offset.Lng
	return np
}

// guardDegenerate は開始・終了が完全に一致し経由地点もない退化ルートを補正する
func (s *routeGeneratorService) guardDegenerate(plan *model.GeneratedRoutePlan) {
	if len(plan.Stops) > 0 {
		return
	}
	if !plan.Start.HasCoordinates() || !plan.End.HasCoordinates() {
		return
	}
	if *plan.Start.Lat == *plan.End.Lat && *plan.Start.Lng == *plan.End.Lng {
		lat := *plan.End.Lat + helper.FallbackEndOffsetDeg
		lng := *plan.End.Lng + helper.FallbackEndOffsetDeg
		plan.End.Lat = &lat
		plan.End.Lng = &lng
	}
}

// fallbackPlan はAIに頼らない2地点のみの決定的なフォールバックルートを生成する
func (s *routeGeneratorService) fallbackPlan(prompt string, base model.LatLng) *model.GeneratedRoutePlan {
	startLat := base.Lat
	startLng := base.Lng
	endLat := base.Lat + helper.FallbackEndOffsetDeg
	endLng := base.Lng + helper.FallbackEndOffsetDeg

	start := model.LatLng{Lat: startLat, Lng: startLng}
	end := model.LatLng{Lat: endLat, Lng: endLng}
	distance := helper.DistanceMeters(&start, &end)

	return &model.GeneratedRoutePlan{
		Start: model.NamedPoint{Name: "Start", Lat: &startLat, Lng: &startLng},
		Stops: []model.NamedPoint{},
		End:   model.NamedPoint{Name: "End", Lat: &endLat, Lng: &endLng},
		TotalDistance: helper.FormatMetersShort(distance),
		Description:   fmt.Sprintf("Simple out-and-back walk for \"%s\".", prompt),
	}
}
