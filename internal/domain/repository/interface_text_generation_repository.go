package repository

import "context"

// TextGenerationRepository 生成AIテキストサービスの抽象
// スキーマはサーバー側で強制されないため、呼び出し側が防御的にパースすること
type TextGenerationRepository interface {
	// GenerateContent はプロンプトからテキストを生成する
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// IsConfigured はAPIキーが設定されているかどうかを返す
	IsConfigured() bool
}
