package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/domain/repository"
	"PerfectWalk-App/internal/domain/service"
)

// RouteSessionUseCase はルート作成セッションに対するすべての編集操作を提供する
type RouteSessionUseCase interface {
	// CreateSession 新しい空のセッションを作成する
	CreateSession() *model.RouteSessionResponse

	// GetSession 現在のセッション状態を取得する
	GetSession(sessionID string) (*model.RouteSessionResponse, error)

	// DeleteSession セッションを破棄する
	DeleteSession(sessionID string)

	// SetStart 開始地点を設定する
	SetStart(ctx context.Context, sessionID string, point model.Point) (*model.RouteSessionResponse, error)

	// SetEnd 終了地点を設定する
	SetEnd(ctx context.Context, sessionID string, point model.Point) (*model.RouteSessionResponse, error)

	// AddStop 経由地点を末尾に追加する
	AddStop(ctx context.Context, sessionID string, point model.Point) (*model.RouteSessionResponse, error)

	// RemoveStop 指定IDの経由地点を削除する
	RemoveStop(ctx context.Context, sessionID, stopID string) (*model.RouteSessionResponse, error)

	// ReorderStops 経由地点を並び替える
	ReorderStops(ctx context.Context, sessionID string, fromIndex, toIndex int) (*model.RouteSessionResponse, error)

	// SetEditMode 地図クリックの割り当て先となる編集モードを設定する
	SetEditMode(sessionID string, mode model.EditMode) (*model.RouteSessionResponse, error)

	// HandleMapClick 地図クリック相当のイベントを編集モードに従って処理する
	HandleMapClick(ctx context.Context, sessionID string, lat, lng float64) (*model.RouteSessionResponse, error)

	// ClearRoute ルートを初期状態に戻す
	ClearRoute(sessionID string) (*model.RouteSessionResponse, error)

	// RefreshDirections 現在のルートの経路情報を明示的に再取得する
	RefreshDirections(ctx context.Context, sessionID string) (*model.RouteSessionResponse, error)

	// SaveRoute 現在のルートに名前を付けて永続化する
	SaveRoute(ctx context.Context, sessionID, name string) (*model.SavedRoute, error)

	// LoadSavedRoute 保存済みルートをセッションに読み込む
	LoadSavedRoute(ctx context.Context, sessionID, routeID string) (*model.RouteSessionResponse, error)
}

// routeSessionUseCaseImpl はRouteSessionUseCaseの実装
type routeSessionUseCaseImpl struct {
	sessions   *SessionManager
	directions repository.DirectionsProvider
	geocoder   repository.GeocodingRepository
	savedRepo  repository.SavedRoutesRepository
}

// NewRouteSessionUseCase は新しいRouteSessionUseCaseインスタンスを作成
func NewRouteSessionUseCase(
	sessions *SessionManager,
	directions repository.DirectionsProvider,
	geocoder repository.GeocodingRepository,
	savedRepo repository.SavedRoutesRepository,
) RouteSessionUseCase {
	return &routeSessionUseCaseImpl{
		sessions:   sessions,
		directions: directions,
		geocoder:   geocoder,
		savedRepo:  savedRepo,
	}
}

// refreshRouteInfo は経路検索プロバイダから最新のルート情報を取得して状態に反映する
// 取得中にルートが変更された場合、古い応答は世代チェックにより破棄される
// プロバイダの失敗はルート編集自体を失敗させない（ベストエフォート）
func refreshRouteInfo(ctx context.Context, state *service.RouteState, directions repository.DirectionsProvider) {
	if directions == nil || !state.HasValidRoute() {
		return
	}

	origin, destination, waypoints, revision, err := state.DirectionsQuery()
	if err != nil {
		return
	}

	details, err := directions.GetWalkingRoute(ctx, origin, destination, waypoints)
	if err != nil {
		log.Printf("⚠️ 徒歩ルートの取得に失敗: %v", err)
		return
	}

	if !state.UpdateRouteInfo(revision, details.Polyline, details.DistanceMeters, details.DurationSeconds) {
		log.Printf("⚠️ ルートが変更されたため古い経路応答を破棄")
	}
}

// response はセッション状態をレスポンスに変換する
func (u *routeSessionUseCaseImpl) response(sessionID string, state *service.RouteState) *model.RouteSessionResponse {
	route, editMode := state.View()
	return &model.RouteSessionResponse{
		SessionID:     sessionID,
		Route:         &route,
		EditMode:      editMode,
		HasValidRoute: route.HasValidRoute(),
	}
}

// CreateSession 新しい空のセッションを作成する
func (u *routeSessionUseCaseImpl) CreateSession() *model.RouteSessionResponse {
	sessionID, state := u.sessions.Create()
	log.Printf("🚀 ルートセッション作成: %s", sessionID)
	return u.response(sessionID, state)
}

// GetSession 現在のセッション状態を取得する
func (u *routeSessionUseCaseImpl) GetSession(sessionID string) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return u.response(sessionID, state), nil
}

// DeleteSession セッションを破棄する
func (u *routeSessionUseCaseImpl) DeleteSession(sessionID string) {
	u.sessions.Delete(sessionID)
	log.Printf("🗑️ ルートセッション削除: %s", sessionID)
}

// SetStart 開始地点を設定する
func (u *routeSessionUseCaseImpl) SetStart(ctx context.Context, sessionID string, point model.Point) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.SetStart(point)
	refreshRouteInfo(ctx, state, u.directions)
	return u.response(sessionID, state), nil
}

// SetEnd 終了地点を設定する
func (u *routeSessionUseCaseImpl) SetEnd(ctx context.Context, sessionID string, point model.Point) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.SetEnd(point)
	refreshRouteInfo(ctx, state, u.directions)
	return u.response(sessionID, state), nil
}

// AddStop 経由地点を末尾に追加する
func (u *routeSessionUseCaseImpl) AddStop(ctx context.Context, sessionID string, point model.Point) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.AddStop(point)
	refreshRouteInfo(ctx, state, u.directions)
	return u.response(sessionID, state), nil
}

// RemoveStop 指定IDの経由地点を削除する
func (u *routeSessionUseCaseImpl) RemoveStop(ctx context.Context, sessionID, stopID string) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.RemoveStop(stopID)
	refreshRouteInfo(ctx, state, u.directions)
	return u.response(sessionID, state), nil
}

// ReorderStops 経由地点を並び替える
func (u *routeSessionUseCaseImpl) ReorderStops(ctx context.Context, sessionID string, fromIndex, toIndex int) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := state.ReorderStops(fromIndex, toIndex); err != nil {
		return nil, err
	}
	refreshRouteInfo(ctx, state, u.directions)
	return u.response(sessionID, state), nil
}

// SetEditMode 地図クリックの割り当て先となる編集モードを設定する
func (u *routeSessionUseCaseImpl) SetEditMode(sessionID string, mode model.EditMode) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := state.SetEditMode(mode); err != nil {
		return nil, err
	}
	return u.response(sessionID, state), nil
}

// HandleMapClick 地図クリック相当のイベントを編集モードに従って処理する
// 逆ジオコーディングはベストエフォートで、失敗しても座標のみの地点で処理を続行する
func (u *routeSessionUseCaseImpl) HandleMapClick(ctx context.Context, sessionID string, lat, lng float64) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	point := model.Point{Lat: lat, Lng: lng}
	if u.geocoder != nil {
		resolved, geoErr := u.geocoder.ReverseGeocode(ctx, model.LatLng{Lat: lat, Lng: lng})
		if geoErr != nil {
			log.Printf("⚠️ 逆ジオコーディングに失敗、座標のみで続行: %v", geoErr)
		}
		if resolved != nil {
			point = *resolved
		}
	}

	if _, err := state.ApplyPoint(point); err != nil {
		return nil, err
	}
	refreshRouteInfo(ctx, state, u.directions)
	return u.response(sessionID, state), nil
}

// ClearRoute ルートを初期状態に戻す
func (u *routeSessionUseCaseImpl) ClearRoute(sessionID string) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state.Clear()
	return u.response(sessionID, state), nil
}

// RefreshDirections 現在のルートの経路情報を明示的に再取得する
func (u *routeSessionUseCaseImpl) RefreshDirections(ctx context.Context, sessionID string) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !state.HasValidRoute() {
		return nil, fmt.Errorf("開始地点と終了地点の両方が必要です")
	}
	refreshRouteInfo(ctx, state, u.directions)
	return u.response(sessionID, state), nil
}

// SaveRoute 現在のルートに名前を付けて永続化する
func (u *routeSessionUseCaseImpl) SaveRoute(ctx context.Context, sessionID, name string) (*model.SavedRoute, error) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return nil, fmt.Errorf("ルート名を入力してください")
	}

	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	snapshot := state.Snapshot()
	if snapshot.StartPoint == nil || snapshot.EndPoint == nil {
		return nil, fmt.Errorf("開始地点と終了地点の両方が必要です")
	}

	savedRoute := &model.SavedRoute{
		ID:              uuid.New().String(),
		Name:            cleaned,
		StartPoint:      snapshot.StartPoint,
		EndPoint:        snapshot.EndPoint,
		Stops:           snapshot.Stops,
		DistanceMeters:  snapshot.DistanceMeters,
		DurationSeconds: snapshot.DurationSeconds,
		CreatedAt:       time.Now(),
	}

	log.Printf("💾 ルート保存中: %s (%s)", cleaned, savedRoute.ID)
	if err := u.savedRepo.Create(ctx, savedRoute); err != nil {
		return nil, fmt.Errorf("ルートの保存に失敗: %w", err)
	}

	log.Printf("✅ ルート保存完了: %s", savedRoute.ID)
	return savedRoute, nil
}

// LoadSavedRoute 保存済みルートをセッションに読み込む
// ポリラインと距離・所要時間は読み込み後に再計算される
func (u *routeSessionUseCaseImpl) LoadSavedRoute(ctx context.Context, sessionID, routeID string) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	log.Printf("📖 保存済みルート読み込み開始 (ID: %s)", routeID)
	savedRoute, err := u.savedRepo.GetByID(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("保存済みルートの取得に失敗: %w", err)
	}

	state.LoadSnapshot(savedRoute.StartPoint, savedRoute.EndPoint, savedRoute.Stops)
	refreshRouteInfo(ctx, state, u.directions)

	log.Printf("✅ 保存済みルート読み込み完了 (ID: %s)", routeID)
	return u.response(sessionID, state), nil
}
