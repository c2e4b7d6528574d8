package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"PerfectWalk-App/internal/domain/service"
	"PerfectWalk-App/internal/handler"
	"PerfectWalk-App/internal/infrastructure/ai"
	"PerfectWalk-App/internal/infrastructure/database"
	"PerfectWalk-App/internal/infrastructure/firestore"
	"PerfectWalk-App/internal/infrastructure/maps"
	repoimpl "PerfectWalk-App/internal/repository"
	"PerfectWalk-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseAnonKey := os.Getenv("SUPABASE_ANON_KEY")
	firestoreProjectID := os.Getenv("FIRESTORE_PROJECT_ID")
	googleMapsAPIKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")

	if supabaseURL == "" || supabaseAnonKey == "" || firestoreProjectID == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数: SUPABASE_URL, SUPABASE_ANON_KEY, SUPABASE_DB_PASSWORD, FIRESTORE_PROJECT_ID")
		fmt.Println("任意の環境変数: GOOGLE_MAPS_API_KEY, GEMINI_API_KEY（未設定時はフォールバック動作）")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}
	if googleMapsAPIKey == "" {
		fmt.Println("⚠️  GOOGLE_MAPS_API_KEY未設定: プレイス検索・経路検索はフォールバック動作になります")
	}
	if geminiAPIKey == "" {
		fmt.Println("⚠️  GEMINI_API_KEY未設定: AIルート生成・チャットはフォールバック動作になります")
	}

	// Database connections
	fmt.Println("Initializing Supabase client...")
	supabaseClient, err := database.NewSupabaseClient()
	if err != nil {
		log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
	}
	if err := supabaseClient.HealthCheck(); err != nil {
		log.Fatalf("Supabaseヘルスチェック失敗: %v", err)
	}
	fmt.Println("✅ Supabase connection successful!")

	fmt.Println("Initializing PostgreSQL client...")
	postgresClient, err := database.NewPostgreSQLClient()
	if err != nil {
		log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
	}
	defer postgresClient.Close()
	fmt.Println("✅ PostgreSQL connection successful!")

	ctx := context.Background()
	firestoreClient, err := firestore.NewFirestoreClient(ctx, firestoreProjectID)
	if err != nil {
		log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
	}
	defer firestoreClient.Close()

	// Infrastructure providers
	directionsProvider := maps.NewGoogleDirectionsProvider(googleMapsAPIKey)
	placesProvider := maps.NewGooglePlacesProvider(googleMapsAPIKey)
	geocodingProvider := maps.NewGoogleGeocodingProvider(googleMapsAPIKey)
	geminiClient := ai.NewGeminiClient(geminiAPIKey)

	// Repositories
	savedRoutesRepo := repoimpl.NewSupabaseSavedRoutesRepository(supabaseClient)
	preferencesRepo := repoimpl.NewPostgresPreferencesRepository(postgresClient)
	routePlanRepo := repoimpl.NewFirestoreRoutePlanRepository(firestoreClient.GetClient())
	suggestionCache := repoimpl.NewSuggestionCache()

	// Domain services
	routeGeneratorService := service.NewRouteGeneratorService(geminiClient, placesProvider)
	chatService := service.NewChatService(geminiClient, placesProvider)
	suggestionService := service.NewSuggestionService(placesProvider, geminiClient, suggestionCache)

	// Usecases
	sessionManager := usecase.NewSessionManager()
	routeSessionUseCase := usecase.NewRouteSessionUseCase(sessionManager, directionsProvider, geocodingProvider, savedRoutesRepo)
	routePlanUseCase := usecase.NewRoutePlanUseCase(routeGeneratorService, routePlanRepo, sessionManager, directionsProvider)
	chatUseCase := usecase.NewChatUseCase(chatService, sessionManager, directionsProvider)
	suggestionUseCase := usecase.NewSuggestionUseCase(suggestionService)
	savedRoutesUseCase := usecase.NewSavedRoutesUseCase(savedRoutesRepo)
	preferencesUseCase := usecase.NewPreferencesUseCase(preferencesRepo)

	// Handlers
	routeSessionHandler := handler.NewRouteSessionHandler(routeSessionUseCase)
	routePlanHandler := handler.NewRoutePlanHandler(routePlanUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	suggestionHandler := handler.NewSuggestionHandler(suggestionUseCase)
	savedRoutesHandler := handler.NewSavedRoutesHandler(savedRoutesUseCase, routeSessionUseCase)
	preferencesHandler := handler.NewPreferencesHandler(preferencesUseCase)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "PerfectWalk-App"})
	})

	// ルート作成セッション API
	sessions := r.Group("/sessions")
	{
		sessions.POST("", routeSessionHandler.PostSession)
		sessions.GET("/:id", routeSessionHandler.GetSession)
		sessions.DELETE("/:id", routeSessionHandler.DeleteSession)
		sessions.PUT("/:id/start", routeSessionHandler.PutStartPoint)
		sessions.PUT("/:id/end", routeSessionHandler.PutEndPoint)
		sessions.POST("/:id/stops", routeSessionHandler.PostStop)
		sessions.DELETE("/:id/stops/:stopId", routeSessionHandler.DeleteStop)
		sessions.PUT("/:id/stops/reorder", routeSessionHandler.PutReorderStops)
		sessions.PUT("/:id/edit-mode", routeSessionHandler.PutEditMode)
		sessions.POST("/:id/map-click", routeSessionHandler.PostMapClick)
		sessions.POST("/:id/directions", routeSessionHandler.PostRefreshDirections)
		sessions.POST("/:id/clear", routeSessionHandler.PostClearRoute)
		sessions.POST("/:id/adopt-plan", routePlanHandler.PostAdoptPlan)
		sessions.POST("/:id/places", chatHandler.PostAddPlaces)
		sessions.POST("/:id/load", savedRoutesHandler.PostLoadRoute)
	}

	// AIルート生成・保存済みルート API
	routes := r.Group("/routes")
	{
		routes.POST("/generate", routePlanHandler.PostGenerateRoute)
		routes.GET("/plans/:id", routePlanHandler.GetRoutePlan)
		routes.POST("", savedRoutesHandler.CreateRoute)
		routes.GET("", savedRoutesHandler.GetRoutes)
		routes.GET("/bbox", savedRoutesHandler.GetRoutesByBoundingBox)
		routes.GET("/:id", savedRoutesHandler.GetRoute)
		routes.DELETE("/:id", savedRoutesHandler.DeleteRoute)
	}

	// AIチャット API
	chat := r.Group("/chat")
	{
		chat.POST("", chatHandler.PostChat)
		chat.POST("/resolve-place", chatHandler.PostResolvePlace)
	}

	// おすすめスポット API
	r.GET("/suggestions", suggestionHandler.GetSuggestions)
	r.GET("/places/:placeId/details", suggestionHandler.GetPlaceDetails)

	// ユーザー設定 API
	preferences := r.Group("/preferences")
	{
		preferences.GET("/:userId", preferencesHandler.GetPreferences)
		preferences.PUT("/:userId", preferencesHandler.PutPreferences)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("PerfectWalk-App server starting on :%s...\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}
