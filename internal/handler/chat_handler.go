package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/usecase"
)

// ChatHandler はAIチャットAPIのハンドラー
type ChatHandler struct {
	chatUseCase usecase.ChatUseCase
}

// NewChatHandler は新しいChatHandlerインスタンスを作成
func NewChatHandler(chatUseCase usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

// PostChat はチャット1ターンを処理するエンドポイント
// POST /chat
func (h *ChatHandler) PostChat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "メッセージは必須です",
		})
		return
	}

	if !h.chatUseCase.IsAvailable() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "チャット機能は現在利用できません",
		})
		return
	}

	result, err := h.chatUseCase.Chat(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "チャット応答の生成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// PostResolvePlace はプレイスクエリを座標に解決するエンドポイント
// POST /chat/resolve-place
func (h *ChatHandler) PostResolvePlace(c *gin.Context) {
	var req model.ResolvePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "queryは必須です",
		})
		return
	}

	point, err := h.chatUseCase.ResolvePlace(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "プレイスの解決に失敗しました",
			"details": err.Error(),
		})
		return
	}
	if point == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "該当するプレイスが見つかりませんでした",
		})
		return
	}

	c.JSON(http.StatusOK, point)
}

// PostAddPlaces は提案プレイスをセッションの経由地点に一括追加するエンドポイント
// POST /sessions/:id/places
func (h *ChatHandler) PostAddPlaces(c *gin.Context) {
	var req model.AddPlacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if len(req.Places) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "placesは必須です",
		})
		return
	}

	response, err := h.chatUseCase.AddPlaces(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondSessionError(c, err, "プレイスの追加に失敗しました")
		return
	}

	c.JSON(http.StatusOK, response)
}
