package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/domain/repository"
	"PerfectWalk-App/internal/domain/service"
)

// routePlanTTLHours Firestoreに保存するルート案の有効期限
const routePlanTTLHours = 2

// RoutePlanUseCase はAIによるルート案の生成・取得・セッションへの採用を提供する
type RoutePlanUseCase interface {
	// GenerateRoute はプロンプトからルート案を生成し、TTL付きで保存してplan_idと共に返す
	GenerateRoute(ctx context.Context, req *model.GenerateRouteRequest) (*model.GenerateRouteResponse, error)

	// GetRoutePlan は指定されたplan_idのルート案を取得する
	GetRoutePlan(ctx context.Context, planID string) (*model.GeneratedRoutePlan, error)

	// AdoptPlan はルート案をセッションの編集中ルートとして採用する
	AdoptPlan(ctx context.Context, sessionID, planID string) (*model.RouteSessionResponse, error)
}

// routePlanUseCaseImpl はRoutePlanUseCaseの実装
type routePlanUseCaseImpl struct {
	generator  service.RouteGeneratorService
	planRepo   repository.RoutePlanRepository
	sessions   *SessionManager
	directions repository.DirectionsProvider
}

// NewRoutePlanUseCase は新しいRoutePlanUseCaseインスタンスを作成
func NewRoutePlanUseCase(
	generator service.RouteGeneratorService,
	planRepo repository.RoutePlanRepository,
	sessions *SessionManager,
	directions repository.DirectionsProvider,
) RoutePlanUseCase {
	return &routePlanUseCaseImpl{
		generator:  generator,
		planRepo:   planRepo,
		sessions:   sessions,
		directions: directions,
	}
}

// GenerateRoute はプロンプトからルート案を生成し、TTL付きで保存してplan_idと共に返す
func (u *routePlanUseCaseImpl) GenerateRoute(ctx context.Context, req *model.GenerateRouteRequest) (*model.GenerateRouteResponse, error) {
	log.Printf("🚀 ルート生成開始 (プロンプト: %.40s)", req.Prompt)

	plan, err := u.generator.Generate(ctx, req.Prompt, req.Area, req.UserLocation)
	if err != nil {
		return nil, err
	}

	log.Printf("💾 Firestore保存中...")
	planID, err := u.planRepo.SaveRoutePlan(ctx, plan, req.Prompt, routePlanTTLHours)
	if err != nil {
		return nil, fmt.Errorf("Firestore保存に失敗: %w", err)
	}

	log.Printf("🎉 ルート生成完了 (ID: %s, 経由地点: %d件)", planID, len(plan.Stops))
	return &model.GenerateRouteResponse{
		PlanID: planID,
		Plan:   plan,
	}, nil
}

// GetRoutePlan は指定されたplan_idのルート案を取得する
func (u *routePlanUseCaseImpl) GetRoutePlan(ctx context.Context, planID string) (*model.GeneratedRoutePlan, error) {
	log.Printf("📖 ルート案取得開始 (ID: %s)", planID)

	plan, err := u.planRepo.GetRoutePlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("ルート案の取得に失敗: %w", err)
	}

	log.Printf("✅ ルート案取得完了 (ID: %s)", planID)
	return plan, nil
}

// AdoptPlan はルート案をセッションの編集中ルートとして採用する
// 採用後、ポリラインと距離・所要時間は経路検索プロバイダから再計算される
func (u *routePlanUseCaseImpl) AdoptPlan(ctx context.Context, sessionID, planID string) (*model.RouteSessionResponse, error) {
	state, err := u.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	plan, err := u.planRepo.GetRoutePlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("ルート案の取得に失敗: %w", err)
	}

	startPoint := namedPointToPoint(&plan.Start)
	endPoint := namedPointToPoint(&plan.End)
	if startPoint == nil || endPoint == nil {
		return nil, fmt.Errorf("ルート案の開始・終了地点に座標がありません")
	}

	stops := make([]model.Stop, 0, len(plan.Stops))
	for i := range plan.Stops {
		point := namedPointToPoint(&plan.Stops[i])
		if point == nil {
			continue
		}
		stops = append(stops, model.Stop{
			ID:    uuid.New().String(),
			Point: *point,
		})
	}

	state.LoadSnapshot(startPoint, endPoint, stops)
	refreshRouteInfo(ctx, state, u.directions)

	log.Printf("✅ ルート案をセッションに採用 (plan: %s, session: %s)", planID, sessionID)
	route, editMode := state.View()
	return &model.RouteSessionResponse{
		SessionID:     sessionID,
		Route:         &route,
		EditMode:      editMode,
		HasValidRoute: route.HasValidRoute(),
	}, nil
}

// namedPointToPoint は座標解決済みのNamedPointをPointに変換する（未解決はnil）
func namedPointToPoint(np *model.NamedPoint) *model.Point {
	if np == nil || !np.HasCoordinates() {
		return nil
	}
	return &model.Point{
		Lat:  *np.Lat,
		Lng:  *np.Lng,
		Name: np.Name,
	}
}
