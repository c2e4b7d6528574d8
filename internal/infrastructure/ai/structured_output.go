package ai

import "strings"

// 生成AIの自由テキストから構造化データをベストエフォートで抽出するヘルパー
// スキーマはサーバー側で強制されないため、Markdownのコードフェンスを除去した上で
// 最初に見つかったJSONオブジェクト・配列を取り出す

// StripCodeFences はMarkdownのコードフェンス（```json 等）を除去する
func StripCodeFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return cleaned
}

// ExtractJSONObject はテキストから最初の {...} ブロックを抽出する
// 見つからない場合は空文字列を返す（エラーにはしない）
func ExtractJSONObject(text string) string {
	return extractBalanced(StripCodeFences(text), '{', '}')
}

// ExtractJSONArray はテキストから最初の [...] ブロックを抽出する
func ExtractJSONArray(text string) string {
	return extractBalanced(StripCodeFences(text), '[', ']')
}

// extractBalanced は開き括弧から対応する閉じ括弧までを文字列リテラルを考慮して取り出す
func extractBalanced(text string, open, close byte) string {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
