package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPreferences_Normalize は欠けているフィールドのデフォルト補完をテストする
func TestPreferences_Normalize(t *testing.T) {
	prefs := &Preferences{}
	prefs.Normalize()

	assert.NotNil(t, prefs.Vibes)
	assert.Equal(t, "walk", prefs.Activity)
	assert.Equal(t, 5000, prefs.DistanceMeters)
	assert.Equal(t, "loop", prefs.RouteShape)
	assert.Equal(t, 30, prefs.TimeAvailableMinutes)

	// 設定済みの値は変更しない
	custom := &Preferences{Activity: "run", DistanceMeters: 8000, RouteShape: "point-to-point", TimeAvailableMinutes: 60}
	custom.Normalize()
	assert.Equal(t, "run", custom.Activity)
	assert.Equal(t, 8000, custom.DistanceMeters)
}

// TestPreferences_DefaultDiscoverCategory は雰囲気タグからのカテゴリ導出をテストする
func TestPreferences_DefaultDiscoverCategory(t *testing.T) {
	cases := []struct {
		name     string
		vibes    []string
		expected string
	}{
		{"コーヒー優先", []string{VibeCoffeeStop, VibeParksGreen}, CategoryCoffee},
		{"公園", []string{VibeParksGreen}, CategoryParks},
		{"自然", []string{VibeScenicNature}, CategoryParks},
		{"食事", []string{VibeFoodBreak}, CategoryFood},
		{"該当なしはコーヒー", []string{VibeHillsWorkout}, CategoryCoffee},
		{"空もコーヒー", nil, CategoryCoffee},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prefs := &Preferences{Vibes: tc.vibes}
			assert.Equal(t, tc.expected, prefs.DefaultDiscoverCategory())
		})
	}
}
