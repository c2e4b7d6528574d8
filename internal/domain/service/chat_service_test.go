package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PerfectWalk-App/internal/domain/model"
)

var testLocation = model.LatLng{Lat: 37.77, Lng: -122.41}

// TestChatService_ParsesStructuredResponse は構造化されたチャット応答のパースをテストする
func TestChatService_ParsesStructuredResponse(t *testing.T) {
	textGen := &stubTextGen{configured: true, response: `{
		"reply": "Try these two spots on your way.",
		"places": [
			{"query": "Ritual Coffee Hayes Valley", "type": "cafe"},
			{"query": "Patricia's Green San Francisco", "type": "park"}
		]
	}`}
	chatService := NewChatService(textGen, &stubPlaces{})

	result, err := chatService.GetChatResponse(context.Background(), "coffee on the way", ChatContext{Location: testLocation})
	require.NoError(t, err)
	assert.Equal(t, "Try these two spots on your way.", result.Reply)
	require.Len(t, result.Places, 2)
	assert.Equal(t, "cafe", result.Places[0].Type)
}

// TestChatService_FencedJSONResponse はコードフェンス付き応答のパースをテストする
func TestChatService_FencedJSONResponse(t *testing.T) {
	textGen := &stubTextGen{configured: true, response: "```json\n" + `{"reply": "Sounds good!", "places": []}` + "\n```"}
	chatService := NewChatService(textGen, &stubPlaces{})

	result, err := chatService.GetChatResponse(context.Background(), "hello", ChatContext{Location: testLocation})
	require.NoError(t, err)
	assert.Equal(t, "Sounds good!", result.Reply)
	assert.Empty(t, result.Places)
}

// TestChatService_RawTextFallback は非JSON応答がそのまま返答になることをテストする
func TestChatService_RawTextFallback(t *testing.T) {
	textGen := &stubTextGen{configured: true, response: "I recommend walking along the waterfront!"}
	chatService := NewChatService(textGen, &stubPlaces{})

	result, err := chatService.GetChatResponse(context.Background(), "any ideas?", ChatContext{Location: testLocation})
	require.NoError(t, err, "構造抽出の失敗はターン全体を失敗させない")
	assert.Equal(t, "I recommend walking along the waterfront!", result.Reply)
	assert.Empty(t, result.Places)
}

// TestChatService_FiltersEmptyQueries は空クエリのプレイス提案の除外をテストする
func TestChatService_FiltersEmptyQueries(t *testing.T) {
	textGen := &stubTextGen{configured: true, response: `{
		"reply": "Here you go.",
		"places": [{"query": "  "}, {"query": "Dolores Park"}]
	}`}
	chatService := NewChatService(textGen, &stubPlaces{})

	result, err := chatService.GetChatResponse(context.Background(), "parks?", ChatContext{Location: testLocation})
	require.NoError(t, err)
	require.Len(t, result.Places, 1)
	assert.Equal(t, "Dolores Park", result.Places[0].Query)
}

// TestChatService_EmptyMessage は空メッセージの拒否をテストする
func TestChatService_EmptyMessage(t *testing.T) {
	chatService := NewChatService(&stubTextGen{configured: true}, &stubPlaces{})

	_, err := chatService.GetChatResponse(context.Background(), "  ", ChatContext{Location: testLocation})
	assert.Error(t, err)
}

// TestChatService_RouteContextInPrompt は編集中ルートがプロンプトに含まれることをテストする
func TestChatService_RouteContextInPrompt(t *testing.T) {
	textGen := &stubTextGen{configured: true, response: `{"reply": "ok", "places": []}`}
	chatService := NewChatService(textGen, &stubPlaces{})

	distance := 2500
	route := &model.Route{
		StartPoint:     &model.Point{Lat: 37.77, Lng: -122.41, Name: "Ferry Building"},
		EndPoint:       &model.Point{Lat: 37.80, Lng: -122.44, Name: "Crissy Field"},
		Stops:          []model.Stop{{ID: "s1", Point: model.Point{Lat: 37.78, Lng: -122.42, Name: "Palace of Fine Arts"}}},
		DistanceMeters: &distance,
	}

	_, err := chatService.GetChatResponse(context.Background(), "make it longer", ChatContext{
		Location: testLocation,
		AreaName: "San Francisco",
		Route:    route,
	})
	require.NoError(t, err)

	require.Len(t, textGen.prompts, 1)
	prompt := textGen.prompts[0]
	assert.Contains(t, prompt, "Ferry Building")
	assert.Contains(t, prompt, "Palace of Fine Arts")
	assert.Contains(t, prompt, "Crissy Field")
	assert.Contains(t, prompt, "San Francisco")
	assert.Contains(t, prompt, "make it longer")
}

// TestChatService_ResolvePlace はプレイスクエリの座標解決をテストする
func TestChatService_ResolvePlace(t *testing.T) {
	places := &stubPlaces{
		configured: true,
		textResults: []model.Suggestion{
			{Name: "Dolores Park", Address: "Dolores St", PlaceID: "pid-1", Type: "park", Lat: floatPtr(37.7596), Lng: floatPtr(-122.4269)},
		},
	}
	chatService := NewChatService(&stubTextGen{configured: true}, places)

	point, err := chatService.ResolvePlace(context.Background(), "Dolores Park", "", "San Francisco", testLocation)
	require.NoError(t, err)
	require.NotNil(t, point)
	assert.Equal(t, 37.7596, point.Lat)
	assert.Equal(t, "pid-1", point.PlaceID)
	assert.Equal(t, "park", point.Type)

	// エリア名がクエリに含まれない場合は補完される
	assert.Contains(t, places.textQueries, "Dolores Park San Francisco")
}

// TestChatService_ResolvePlace_ZeroResults は検索ゼロ件がエラーでないことをテストする
func TestChatService_ResolvePlace_ZeroResults(t *testing.T) {
	places := &stubPlaces{configured: true, textResults: []model.Suggestion{}}
	chatService := NewChatService(&stubTextGen{configured: true}, places)

	point, err := chatService.ResolvePlace(context.Background(), "nowhere", "", "", testLocation)
	require.NoError(t, err)
	assert.Nil(t, point)
}

// TestChatService_ResolvePlace_PreferredType は指定タイプが優先されることをテストする
func TestChatService_ResolvePlace_PreferredType(t *testing.T) {
	places := &stubPlaces{
		configured: true,
		textResults: []model.Suggestion{
			{Name: "Sightglass", Type: "establishment", Lat: floatPtr(37.77), Lng: floatPtr(-122.40)},
		},
	}
	chatService := NewChatService(&stubTextGen{configured: true}, places)

	point, err := chatService.ResolvePlace(context.Background(), "Sightglass", "cafe", "", testLocation)
	require.NoError(t, err)
	require.NotNil(t, point)
	assert.Equal(t, "cafe", point.Type)
}

// TestChatService_ResolveAll は複数プレイスの並行解決と順序保持をテストする
func TestChatService_ResolveAll(t *testing.T) {
	places := &stubPlaces{
		configured: true,
		textResults: []model.Suggestion{
			{Name: "Resolved Spot", Lat: floatPtr(37.78), Lng: floatPtr(-122.42)},
		},
	}
	chatService := NewChatService(&stubTextGen{configured: true}, places)

	queries := []model.PlaceQuery{
		{Query: "First Cafe"},
		{Query: "Second Park"},
		{Query: "Third Bakery"},
	}

	results := chatService.ResolveAll(context.Background(), queries, "", testLocation)
	require.Len(t, results, 3)

	// 入力順が保持される
	assert.Equal(t, "First Cafe", results[0].Query)
	assert.Equal(t, "Second Park", results[1].Query)
	assert.Equal(t, "Third Bakery", results[2].Query)
	for _, result := range results {
		assert.NotNil(t, result.Point)
	}
}
