package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/usecase"
)

// RouteSessionHandler はルート作成セッションAPIのハンドラー
type RouteSessionHandler struct {
	sessionUseCase usecase.RouteSessionUseCase
}

// NewRouteSessionHandler は新しいRouteSessionHandlerインスタンスを作成
func NewRouteSessionHandler(sessionUseCase usecase.RouteSessionUseCase) *RouteSessionHandler {
	return &RouteSessionHandler{
		sessionUseCase: sessionUseCase,
	}
}

// respondSessionError はユースケースのエラーをHTTPステータスに変換する
func respondSessionError(c *gin.Context, err error, message string) {
	if strings.Contains(err.Error(), "見つかりません") {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   message,
			"details": err.Error(),
		})
		return
	}
	if strings.Contains(err.Error(), "範囲外") ||
		strings.Contains(err.Error(), "無効") ||
		strings.Contains(err.Error(), "編集モード") ||
		strings.Contains(err.Error(), "必要です") ||
		strings.Contains(err.Error(), "入力してください") {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   message,
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

// validatePoint は地点の緯度経度の範囲をチェックする
func validatePoint(point *model.Point) error {
	if point == nil {
		return &ValidationError{Field: "point", Message: "地点は必須です"}
	}
	if point.Lat < -90 || point.Lat > 90 {
		return &ValidationError{Field: "point.lat", Message: "緯度は-90から90の範囲で指定してください"}
	}
	if point.Lng < -180 || point.Lng > 180 {
		return &ValidationError{Field: "point.lng", Message: "経度は-180から180の範囲で指定してください"}
	}
	return nil
}

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// PostSession はルート作成セッションを開始するエンドポイント
// POST /sessions
func (h *RouteSessionHandler) PostSession(c *gin.Context) {
	c.JSON(http.StatusCreated, h.sessionUseCase.CreateSession())
}

// GetSession はセッション状態を取得するエンドポイント
// GET /sessions/:id
func (h *RouteSessionHandler) GetSession(c *gin.Context) {
	response, err := h.sessionUseCase.GetSession(c.Param("id"))
	if err != nil {
		respondSessionError(c, err, "セッションの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// DeleteSession はセッションを破棄するエンドポイント
// DELETE /sessions/:id
func (h *RouteSessionHandler) DeleteSession(c *gin.Context) {
	h.sessionUseCase.DeleteSession(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// PutStartPoint は開始地点を設定するエンドポイント
// PUT /sessions/:id/start
func (h *RouteSessionHandler) PutStartPoint(c *gin.Context) {
	var req model.SetPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}
	if err := validatePoint(req.Point); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	response, err := h.sessionUseCase.SetStart(c.Request.Context(), c.Param("id"), *req.Point)
	if err != nil {
		respondSessionError(c, err, "開始地点の設定に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// PutEndPoint は終了地点を設定するエンドポイント
// PUT /sessions/:id/end
func (h *RouteSessionHandler) PutEndPoint(c *gin.Context) {
	var req model.SetPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}
	if err := validatePoint(req.Point); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	response, err := h.sessionUseCase.SetEnd(c.Request.Context(), c.Param("id"), *req.Point)
	if err != nil {
		respondSessionError(c, err, "終了地点の設定に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// PostStop は経由地点を追加するエンドポイント
// POST /sessions/:id/stops
func (h *RouteSessionHandler) PostStop(c *gin.Context) {
	var req model.SetPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}
	if err := validatePoint(req.Point); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	response, err := h.sessionUseCase.AddStop(c.Request.Context(), c.Param("id"), *req.Point)
	if err != nil {
		respondSessionError(c, err, "経由地点の追加に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// DeleteStop は経由地点を削除するエンドポイント
// DELETE /sessions/:id/stops/:stopId
func (h *RouteSessionHandler) DeleteStop(c *gin.Context) {
	response, err := h.sessionUseCase.RemoveStop(c.Request.Context(), c.Param("id"), c.Param("stopId"))
	if err != nil {
		respondSessionError(c, err, "経由地点の削除に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// PutReorderStops は経由地点を並び替えるエンドポイント
// PUT /sessions/:id/stops/reorder
func (h *RouteSessionHandler) PutReorderStops(c *gin.Context) {
	var req model.ReorderStopsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	response, err := h.sessionUseCase.ReorderStops(c.Request.Context(), c.Param("id"), req.FromIndex, req.ToIndex)
	if err != nil {
		respondSessionError(c, err, "経由地点の並び替えに失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// PutEditMode は編集モードを設定するエンドポイント
// PUT /sessions/:id/edit-mode
func (h *RouteSessionHandler) PutEditMode(c *gin.Context) {
	var req model.SetEditModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	response, err := h.sessionUseCase.SetEditMode(c.Param("id"), req.Mode)
	if err != nil {
		respondSessionError(c, err, "編集モードの設定に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// PostMapClick は地図クリック相当のイベントを処理するエンドポイント
// POST /sessions/:id/map-click
func (h *RouteSessionHandler) PostMapClick(c *gin.Context) {
	var req model.MapClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}
	if err := validatePoint(&model.Point{Lat: req.Lat, Lng: req.Lng}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	response, err := h.sessionUseCase.HandleMapClick(c.Request.Context(), c.Param("id"), req.Lat, req.Lng)
	if err != nil {
		respondSessionError(c, err, "地図クリックの処理に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// PostRefreshDirections は経路情報を明示的に再取得するエンドポイント
// POST /sessions/:id/directions
func (h *RouteSessionHandler) PostRefreshDirections(c *gin.Context) {
	response, err := h.sessionUseCase.RefreshDirections(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSessionError(c, err, "経路情報の再取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}

// PostClearRoute はルートを初期状態に戻すエンドポイント
// POST /sessions/:id/clear
func (h *RouteSessionHandler) PostClearRoute(c *gin.Context) {
	response, err := h.sessionUseCase.ClearRoute(c.Param("id"))
	if err != nil {
		respondSessionError(c, err, "ルートのクリアに失敗しました")
		return
	}
	c.JSON(http.StatusOK, response)
}
