package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/usecase"
)

// PreferencesHandler はユーザー設定APIのハンドラー
type PreferencesHandler struct {
	preferencesUseCase usecase.PreferencesUseCase
}

// NewPreferencesHandler は新しいPreferencesHandlerインスタンスを作成
func NewPreferencesHandler(preferencesUseCase usecase.PreferencesUseCase) *PreferencesHandler {
	return &PreferencesHandler{
		preferencesUseCase: preferencesUseCase,
	}
}

// GetPreferences はユーザー設定を取得するエンドポイント
// GET /preferences/:userId
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "user_idが指定されていません",
		})
		return
	}

	response, err := h.preferencesUseCase.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "ユーザー設定の取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// PutPreferences はユーザー設定を保存するエンドポイント
// PUT /preferences/:userId
func (h *PreferencesHandler) PutPreferences(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "user_idが指定されていません",
		})
		return
	}

	var prefs model.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	response, err := h.preferencesUseCase.SavePreferences(c.Request.Context(), userID, &prefs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "ユーザー設定の保存に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
