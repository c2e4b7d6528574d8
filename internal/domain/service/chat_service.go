package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"PerfectWalk-App/internal/domain/helper"
	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/domain/repository"
	"PerfectWalk-App/internal/infrastructure/ai"
)

// chatResolveRadiusMeters チャット提案プレイスの座標解決に使う検索半径
const chatResolveRadiusMeters = 10000

// ChatContext チャット1ターンに付与する位置・ルートコンテキスト
type ChatContext struct {
	Location model.LatLng
	AreaName string
	Route    *model.Route // 編集中ルートがない場合はnil
}

// ResolvedPlace プレイスクエリの解決結果（解決できなかった場合Pointはnil）
type ResolvedPlace struct {
	Query string
	Point *model.Point
}

// ChatService はAIチャットによるルート相談と提案プレイスの座標解決を行うサービス
type ChatService interface {
	GetChatResponse(ctx context.Context, message string, chatCtx ChatContext) (*model.ChatResult, error)
	ResolvePlace(ctx context.Context, query, preferredType, areaName string, location model.LatLng) (*model.Point, error)
	ResolveAll(ctx context.Context, places []model.PlaceQuery, areaName string, location model.LatLng) []ResolvedPlace
	IsAvailable() bool
}

type chatService struct {
	textGen repository.TextGenerationRepository
	places  repository.PlacesRepository
}

// NewChatService 新しいChatServiceインスタンスを作成
func NewChatService(textGen repository.TextGenerationRepository, places repository.PlacesRepository) ChatService {
	return &chatService{
		textGen: textGen,
		places:  places,
	}
}

// IsAvailable はチャット機能が利用可能かを返す
func (s *chatService) IsAvailable() bool {
	return s.textGen.IsConfigured()
}

// GetChatResponse はユーザーメッセージに対する返答と提案プレイスを生成する
// 構造抽出に失敗してもターン全体は失敗させず、生テキストを返答として返す
func (s *chatService) GetChatResponse(ctx context.Context, message string, chatCtx ChatContext) (*model.ChatResult, error) {
	cleaned := strings.TrimSpace(message)
	if cleaned == "" {
		return nil, errors.New("メッセージを入力してください")
	}
	if !s.textGen.IsConfigured() {
		return nil, errors.New("GEMINI_API_KEYが設定されていません")
	}

	raw, err := s.textGen.GenerateContent(ctx, s.buildChatPrompt(cleaned, chatCtx))
	if err != nil {
		return nil, fmt.Errorf("チャット応答の生成に失敗: %w", err)
	}

	return s.parseChatResult(raw), nil
}

// buildChatPrompt は位置・ルートコンテキストを埋め込んだチャットプロンプトを構築する
func (s *chatService) buildChatPrompt(message string, chatCtx ChatContext) string {
	var sb strings.Builder

	sb.WriteString("You are a friendly walking route assistant helping a user plan a walk.\n\n")

	sb.WriteString(fmt.Sprintf("Current location: %.4f, %.4f\n", chatCtx.Location.Lat, chatCtx.Location.Lng))
	if chatCtx.AreaName != "" {
		sb.WriteString(fmt.Sprintf("Area: %s\n", chatCtx.AreaName))
	}
	if summary := s.routeSummary(chatCtx.Route); summary != "" {
		sb.WriteString("Current route:\n")
		sb.WriteString(summary)
	}

	sb.WriteString("\nUser message:\n")
	sb.WriteString(message)

	sb.WriteString(`

Respond ONLY with valid JSON in this exact shape:
{
  "reply": "conversational answer to the user (1-3 sentences)",
  "places": [ { "query": "search query for a concrete place", "type": "cafe|park|restaurant|attraction" } ]
}

Rules:
- "places" lists concrete places you are recommending as stops, with queries a places search can resolve (include the neighborhood or city in the query).
- If you are not recommending any specific places, return an empty "places" array.
- Do not wrap the JSON in code fences.`)

	return sb.String()
}

// routeSummary は編集中ルートをプロンプト用のテキストに要約する
func (s *chatService) routeSummary(route *model.Route) string {
	if route == nil || route.StartPoint == nil || route.EndPoint == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("- Start: %s\n", pointLabel(route.StartPoint)))
	for i := range route.Stops {
		sb.WriteString(fmt.Sprintf("- Stop %d: %s\n", i+1, pointLabel(&route.Stops[i].Point)))
	}
	sb.WriteString(fmt.Sprintf("- End: %s\n", pointLabel(route.EndPoint)))
	if route.DistanceMeters != nil {
		sb.WriteString(fmt.Sprintf("- Distance: %s", helper.FormatDistance(*route.DistanceMeters)))
		if route.DurationSeconds != nil {
			sb.WriteString(fmt.Sprintf(" (%s)", helper.FormatDuration(*route.DurationSeconds)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// pointLabel は地点の表示名を返す（名前→住所→座標の順で使用）
func pointLabel(p *model.Point) string {
	if p.Name != "" {
		return p.Name
	}
	if p.Address != "" {
		return p.Address
	}
	return fmt.Sprintf("%.4f, %.4f", p.Lat, p.Lng)
}

// parseChatResult はAI応答からreplyとplacesを抽出する
// JSONとして解釈できない場合は生テキストをそのまま返答とする
func (s *chatService) parseChatResult(raw string) *model.ChatResult {
	fallback := &model.ChatResult{
		Reply:  strings.TrimSpace(ai.StripCodeFences(raw)),
		Places: []model.PlaceQuery{},
	}

	jsonText := ai.ExtractJSONObject(raw)
	if jsonText == "" {
		return fallback
	}

	var result model.ChatResult
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return fallback
	}
	if strings.TrimSpace(result.Reply) == "" {
		return fallback
	}

	places := make([]model.PlaceQuery, 0, len(result.Places))
	for _, place := range result.Places {
		if strings.TrimSpace(place.Query) != "" {
			places = append(places, place)
		}
	}
	result.Places = places
	return &result
}

// ResolvePlace はプレイスクエリをテキスト検索で座標付きPointに解決する
// 検索結果ゼロ件はエラーではなく(nil, nil)を返す
func (s *chatService) ResolvePlace(ctx context.Context, query, preferredType, areaName string, location model.LatLng) (*model.Point, error) {
	cleaned := strings.TrimSpace(query)
	if cleaned == "" {
		return nil, errors.New("検索クエリを入力してください")
	}
	if !s.places.IsConfigured() {
		return nil, errors.New("GOOGLE_MAPS_API_KEYが設定されていません")
	}

	searchQuery := cleaned
	if areaName != "" && !strings.Contains(strings.ToLower(cleaned), strings.ToLower(areaName)) {
		searchQuery = cleaned + " " + areaName
	}

	results, err := s.places.TextSearch(ctx, searchQuery, location, chatResolveRadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("プレイス検索に失敗: %w", err)
	}
	if len(results) == 0 || !results[0].HasCoordinates() {
		return nil, nil
	}

	first := results[0]
	pointType := preferredType
	if pointType == "" {
		pointType = first.Type
	}

	name := first.Name
	if name == "" {
		name = cleaned
	}

	return &model.Point{
		Lat:     *first.Lat,
		Lng:     *first.Lng,
		Name:    name,
		Address: first.Address,
		PlaceID: first.PlaceID,
		Type:    pointType,
	}, nil
}

// ResolveAll は複数のプレイスクエリを並行して解決する
// 個別の失敗は結果に未解決として残し、全体は常に元の順序で返す
func (s *chatService) ResolveAll(ctx context.Context, places []model.PlaceQuery, areaName string, location model.LatLng) []ResolvedPlace {
	results := make([]ResolvedPlace, len(places))

	var wg sync.WaitGroup
	for i, place := range places {
		wg.Add(1)
		go func(index int, pq model.PlaceQuery) {
			defer wg.Done()

			point, err := s.ResolvePlace(ctx, pq.Query, pq.Type, areaName, location)
			if err != nil {
				log.Printf("⚠️ プレイス「%s」の解決に失敗: %v", pq.Query, err)
				results[index] = ResolvedPlace{Query: pq.Query}
				return
			}
			results[index] = ResolvedPlace{Query: pq.Query, Point: point}
		}(i, place)
	}
	wg.Wait()

	return results
}
