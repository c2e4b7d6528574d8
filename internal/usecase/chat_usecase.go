package usecase

import (
	"context"
	"log"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/domain/repository"
	"PerfectWalk-App/internal/domain/service"
)

// ChatUseCase はAIチャットによるルート相談と提案プレイスのルートへの反映を提供する
type ChatUseCase interface {
	// Chat はユーザーメッセージに対する返答と提案プレイスを返す
	Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResult, error)

	// ResolvePlace はプレイスクエリを座標付きの地点に解決する（解決不能な場合はnil）
	ResolvePlace(ctx context.Context, req *model.ResolvePlaceRequest) (*model.Point, error)

	// AddPlaces は提案プレイスを一括で解決してセッションの経由地点に追加する
	AddPlaces(ctx context.Context, sessionID string, req *model.AddPlacesRequest) (*model.AddPlacesResponse, error)

	// IsAvailable はチャット機能が利用可能かを返す
	IsAvailable() bool
}

// chatUseCaseImpl はChatUseCaseの実装
type chatUseCaseImpl struct {
	chatService service.ChatService
	sessions    *SessionManager
	directions  repository.DirectionsProvider
}

// NewChatUseCase は新しいChatUseCaseインスタンスを作成
func NewChatUseCase(chatService service.ChatService, sessions *SessionManager, directions repository.DirectionsProvider) ChatUseCase {
	return &chatUseCaseImpl{
		chatService: chatService,
		sessions:    sessions,
		directions:  directions,
	}
}

// IsAvailable はチャット機能が利用可能かを返す
func (u *chatUseCaseImpl) IsAvailable() bool {
	return u.chatService.IsAvailable()
}

// Chat はユーザーメッセージに対する返答と提案プレイスを返す
// session_idが指定されている場合、編集中ルートの内容をコンテキストとして渡す
func (u *chatUseCaseImpl) Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResult, error) {
	chatCtx := service.ChatContext{
		Location: resolveLocation(req.Location, req.UserLocation),
		AreaName: req.AreaName,
	}

	if req.SessionID != "" {
		if state, err := u.sessions.Get(req.SessionID); err == nil {
			route, _ := state.View()
			if route.HasValidRoute() {
				chatCtx.Route = &route
			}
		}
	}

	return u.chatService.GetChatResponse(ctx, req.Message, chatCtx)
}

// ResolvePlace はプレイスクエリを座標付きの地点に解決する
func (u *chatUseCaseImpl) ResolvePlace(ctx context.Context, req *model.ResolvePlaceRequest) (*model.Point, error) {
	location := service.DefaultCenter
	if req.Location != nil && req.Location.IsValid() {
		location = *req.Location
	}
	return u.chatService.ResolvePlace(ctx, req.Query, req.Type, req.AreaName, location)
}

// AddPlaces は提案プレイスを一括で解決してセッションの経由地点に追加する
// 一部のプレイスの解決に失敗しても残りは追加する（部分的な成功を許容）
func (u *chatUseCaseImpl) AddPlaces(ctx context.Context, sessionID string, req *model.AddPlacesRequest) (*model.AddPlacesResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	location := resolveLocation(req.Location, nil)
	resolved := u.chatService.ResolveAll(ctx, req.Places, req.AreaName, location)

	results := make([]model.AddPlaceResult, 0, len(resolved))
	added := 0
	for _, place := range resolved {
		if place.Point == nil {
			results = append(results, model.AddPlaceResult{Query: place.Query, Resolved: false})
			continue
		}
		stop := state.AddStop(*place.Point)
		results = append(results, model.AddPlaceResult{
			Query:    place.Query,
			Resolved: true,
			Stop:     &stop,
		})
		added++
	}

	if added > 0 {
		refreshRouteInfo(ctx, state, u.directions)
	}

	log.Printf("✅ 提案プレイス追加完了 (%d/%d件)", added, len(resolved))
	return &model.AddPlacesResponse{Results: results}, nil
}

// resolveLocation は指定された位置のうち有効なものを採用する（どちらも無効ならデフォルト中心）
func resolveLocation(primary, secondary *model.LatLng) model.LatLng {
	if primary != nil && primary.IsValid() {
		return *primary
	}
	if secondary != nil && secondary.IsValid() {
		return *secondary
	}
	return service.DefaultCenter
}
