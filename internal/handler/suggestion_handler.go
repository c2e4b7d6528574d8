package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"PerfectWalk-App/internal/domain/model"
	"PerfectWalk-App/internal/usecase"
)

// SuggestionHandler はおすすめスポットAPIのハンドラー
type SuggestionHandler struct {
	suggestionUseCase usecase.SuggestionUseCase
}

// NewSuggestionHandler は新しいSuggestionHandlerインスタンスを作成
func NewSuggestionHandler(suggestionUseCase usecase.SuggestionUseCase) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionUseCase: suggestionUseCase,
	}
}

// GetSuggestions はカテゴリ別のおすすめスポット一覧を取得するエンドポイント
// GET /suggestions?category=coffee&lat=37.77&lng=-122.41&area=San+Francisco
func (h *SuggestionHandler) GetSuggestions(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "categoryパラメータは必須です（coffee, parks, food, trails）",
		})
		return
	}

	var location *model.LatLng
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "lat/lngパラメータの形式が正しくありません",
			})
			return
		}
		location = &model.LatLng{Lat: lat, Lng: lng}
	}

	response, err := h.suggestionUseCase.GetSuggestions(c.Request.Context(), category, location, c.Query("area"))
	if err != nil {
		if strings.Contains(err.Error(), "対応していないカテゴリ") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "バリデーションエラー",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "おすすめスポットの取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPlaceDetails はプレイス詳細を取得するエンドポイント
// GET /places/:placeId/details
func (h *SuggestionHandler) GetPlaceDetails(c *gin.Context) {
	placeID := c.Param("placeId")
	if placeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "place_idが指定されていません",
		})
		return
	}

	details, err := h.suggestionUseCase.GetPlaceDetails(c.Request.Context(), placeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "プレイス詳細の取得に失敗しました",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, details)
}
