package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/usecase"
)

// RoutePlanHandler はAIルート生成APIのハンドラー
type RoutePlanHandler struct {
	planUseCase usecase.RoutePlanUseCase
}

// NewRoutePlanHandler は新しいRoutePlanHandlerインスタンスを作成
func NewRoutePlanHandler(planUseCase usecase.RoutePlanUseCase) *RoutePlanHandler {
	return &RoutePlanHandler{
		planUseCase: planUseCase,
	}
}

// PostGenerateRoute はプロンプトからルート案を生成するエンドポイント
// POST /routes/generate
func (h *RoutePlanHandler) PostGenerateRoute(c *gin.Context) {
	var req model.GenerateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "プロンプトは必須です",
		})
		return
	}

	response, err := h.planUseCase.GenerateRoute(c.Request.Context(), &req)
	if err != nil {
		if strings.Contains(err.Error(), "入力してください") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "バリデーションエラー",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "ルートの生成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRoutePlan は特定のルート案を取得するエンドポイント
// GET /routes/plans/:id
func (h *RoutePlanHandler) GetRoutePlan(c *gin.Context) {
	planID := c.Param("id")
	if planID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "plan_idが指定されていません",
		})
		return
	}

	plan, err := h.planUseCase.GetRoutePlan(c.Request.Context(), planID)
	if err != nil {
		if strings.Contains(err.Error(), "見つかりません") || strings.Contains(err.Error(), "有効期限切れ") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "ルート案が見つかりません",
				"details": err.Error(),
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "ルート案の取得に失敗しました",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// PostAdoptPlan はルート案をセッションに採用するエンドポイント
// POST /sessions/:id/adopt-plan
func (h *RoutePlanHandler) PostAdoptPlan(c *gin.Context) {
	var req model.AdoptPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}
	if req.PlanID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "plan_idは必須です",
		})
		return
	}

	response, err := h.planUseCase.AdoptPlan(c.Request.Context(), c.Param("id"), req.PlanID)
	if err != nil {
		respondSessionError(c, err, "ルート案の採用に失敗しました")
		return
	}

	c.JSON(http.StatusOK, response)
}
