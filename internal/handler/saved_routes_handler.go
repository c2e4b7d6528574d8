package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/usecase"
)

// SavedRoutesHandler 保存済みルートに関するHTTPハンドラー
type SavedRoutesHandler struct {
	savedRoutesUseCase usecase.SavedRoutesUseCase
	sessionUseCase     usecase.RouteSessionUseCase
}

// NewSavedRoutesHandler SavedRoutesHandlerの新しいインスタンスを作成
func NewSavedRoutesHandler(savedRoutesUseCase usecase.SavedRoutesUseCase, sessionUseCase usecase.RouteSessionUseCase) *SavedRoutesHandler {
	return &SavedRoutesHandler{
		savedRoutesUseCase: savedRoutesUseCase,
		sessionUseCase:     sessionUseCase,
	}
}

// CreateRoute POST /routes - 現在のセッションのルートを保存
func (h *SavedRoutesHandler) CreateRoute(c *gin.Context) {
	var req model.SaveRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if req.SessionID == "" || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "session_idとnameは必須です",
		})
		return
	}

	savedRoute, err := h.sessionUseCase.SaveRoute(c.Request.Context(), req.SessionID, req.Name)
	if err != nil {
		respondSessionError(c, err, "ルートの保存に失敗しました")
		return
	}

	c.JSON(http.StatusCreated, savedRoute)
}

// GetRoutes GET /routes - 保存済みルート一覧を取得
func (h *SavedRoutesHandler) GetRoutes(c *gin.Context) {
	response, err := h.savedRoutesUseCase.GetSavedRoutes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "保存済みルート一覧の取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRoutesByBoundingBox GET /routes/bbox - 境界ボックス内の保存済みルートを取得
func (h *SavedRoutesHandler) GetRoutesByBoundingBox(c *gin.Context) {
	bbox := c.Query("bbox")
	if bbox == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "bboxパラメータは必須です（形式: min_lng,min_lat,max_lng,max_lat）",
		})
		return
	}

	coords := strings.Split(bbox, ",")
	if len(coords) != 4 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "bboxには4つの座標が必要です（min_lng,min_lat,max_lng,max_lat）",
		})
		return
	}

	values := make([]float64, 4)
	for i, coord := range coords {
		value, err := strconv.ParseFloat(strings.TrimSpace(coord), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "bboxの座標値の形式が正しくありません",
			})
			return
		}
		values[i] = value
	}

	response, err := h.savedRoutesUseCase.GetSavedRoutesByBoundingBox(c.Request.Context(), values[0], values[1], values[2], values[3])
	if err != nil {
		if strings.Contains(err.Error(), "無効な境界ボックス") || strings.Contains(err.Error(), "有効範囲外") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "バリデーションエラー",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "境界ボックス検索に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRoute GET /routes/:id - 保存済みルートの詳細を取得
func (h *SavedRoutesHandler) GetRoute(c *gin.Context) {
	routeID := c.Param("id")
	if routeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "route_idが指定されていません",
		})
		return
	}

	route, err := h.savedRoutesUseCase.GetSavedRoute(c.Request.Context(), routeID)
	if err != nil {
		if strings.Contains(err.Error(), "見つかりません") {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "保存済みルートが見つかりません",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "保存済みルートの取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, route)
}

// DeleteRoute DELETE /routes/:id - 保存済みルートを削除
func (h *SavedRoutesHandler) DeleteRoute(c *gin.Context) {
	routeID := c.Param("id")
	if routeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "route_idが指定されていません",
		})
		return
	}

	if err := h.savedRoutesUseCase.DeleteSavedRoute(c.Request.Context(), routeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "保存済みルートの削除に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// PostLoadRoute POST /sessions/:id/load - 保存済みルートをセッションに読み込む
func (h *SavedRoutesHandler) PostLoadRoute(c *gin.Context) {
	var req model.LoadRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}
	if req.RouteID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "route_idは必須です",
		})
		return
	}

	response, err := h.sessionUseCase.LoadSavedRoute(c.Request.Context(), c.Param("id"), req.RouteID)
	if err != nil {
		respondSessionError(c, err, "保存済みルートの読み込みに失敗しました")
		return
	}

	c.JSON(http.StatusOK, response)
}
