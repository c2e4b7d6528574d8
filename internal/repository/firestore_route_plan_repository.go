package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"PerfectWalk-App/internal/domain/model"
	domainRepo "PerfectWalk-App/internal/domain/repository"
)

// FirestoreRoutePlanRepository FirestoreによるAI生成ルート案のTTL付きストア
type FirestoreRoutePlanRepository struct {
	client *firestore.Client
}

// NewFirestoreRoutePlanRepository 新しいFirestoreRoutePlanRepositoryインスタンスを作成
func NewFirestoreRoutePlanRepository(client *firestore.Client) domainRepo.RoutePlanRepository {
	return &FirestoreRoutePlanRepository{
		client: client,
	}
}

// SaveRoutePlan はルート案をFirestoreに保存し、plan_idを生成して返す
// TTLポリシーはexpireAtフィールドに設定する想定
func (r *FirestoreRoutePlanRepository) SaveRoutePlan(ctx context.Context, plan *model.GeneratedRoutePlan, prompt string, ttlHours int) (string, error) {
	planID := fmt.Sprintf("plan_%s", uuid.New().String())

	firestoreData := plan.ToFirestoreRoutePlan(prompt, ttlHours)

	_, err := r.client.Collection("routePlans").Doc(planID).Set(ctx, firestoreData)
	if err != nil {
		log.Printf("❌ Failed to save route plan %s: %v", planID, err)
		return "", fmt.Errorf("ルート案の保存に失敗しました: %w", err)
	}

	log.Printf("✅ Route plan saved: %s (expires in %d hours)", planID, ttlHours)
	return planID, nil
}

// GetRoutePlan は指定されたplan_idのルート案をFirestoreから取得する
func (r *FirestoreRoutePlanRepository) GetRoutePlan(ctx context.Context, planID string) (*model.GeneratedRoutePlan, error) {
	doc, err := r.client.Collection("routePlans").Doc(planID).Get(ctx)
	if err != nil {
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, fmt.Errorf("ルート案が見つかりません（有効期限切れまたは無効なID）: %s", planID)
		}
		return nil, fmt.Errorf("ルート案の取得に失敗しました: %w", err)
	}

	var firestoreData model.FirestoreRoutePlan
	if err := doc.DataTo(&firestoreData); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	log.Printf("✅ Route plan retrieved: %s", planID)
	return firestoreData.ToGeneratedRoutePlan(), nil
}
