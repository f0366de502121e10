package repositories

import (
	"context"
)

// 健康シミュレーション用の生成AIサービス
type SimulationAIService interface {
	// 標準シミュレーション
	Simulate(ctx context.Context, prompt string) (string, error)

	// 処方箋画像の解析。imageBase64 は標準Base64でエンコードされた画像
	AnalyzePrescription(ctx context.Context, prompt, imageBase64, mimeType string) (string, error)

	Close() error
}
