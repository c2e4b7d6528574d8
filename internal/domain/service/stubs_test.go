package service

import (
	"context"
	"sync"

	"PerfectWalk-App/internal/domain/model"
)

// stubTextGen テスト用のTextGenerationRepository実装
type stubTextGen struct {
	configured bool
	response   string
	err        error

	mu      sync.Mutex
	prompts []string
}

func (s *stubTextGen) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubTextGen) IsConfigured() bool {
	return s.configured
}

// stubPlaces テスト用のPlacesRepository実装
type stubPlaces struct {
	configured    bool
	textResults   []model.Suggestion
	textErr       error
	nearbyResults map[string][]model.Suggestion // placeTypeごとの結果
	nearbyErr     error
	details       *model.PlaceDetails

	mu           sync.Mutex
	textQueries  []string
	nearbyCalls  int
	detailsCalls int
}

func (s *stubPlaces) NearbySearch(ctx context.Context, location model.LatLng, radiusMeters int, placeType, keyword string) ([]model.Suggestion, error) {
	s.mu.Lock()
	s.nearbyCalls++
	s.mu.Unlock()
	if s.nearbyErr != nil {
		return nil, s.nearbyErr
	}
	return s.nearbyResults[placeType], nil
}

func (s *stubPlaces) TextSearch(ctx context.Context, query string, location model.LatLng, radiusMeters int) ([]model.Suggestion, error) {
	s.mu.Lock()
	s.textQueries = append(s.textQueries, query)
	s.mu.Unlock()
	if s.textErr != nil {
		return nil, s.textErr
	}
	return s.textResults, nil
}

func (s *stubPlaces) GetPlaceDetails(ctx context.Context, placeID string) (*model.PlaceDetails, error) {
	s.mu.Lock()
	s.detailsCalls++
	s.mu.Unlock()
	return s.details, nil
}

func (s *stubPlaces) IsConfigured() bool {
	return s.configured
}

func floatPtr(v float64) *float64 {
	return &v
}
