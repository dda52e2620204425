package srv

import (
	"github.com/aretacare/aretacare/pkg/ai"
	"github.com/aretacare/aretacare/pkg/ai/openai"
)

type AIConfig struct {
	Token    string `toml:"token"`
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
}

// AI 聚合文本生成驱动，当前只接 openai 协议
type AI struct {
	chat ai.Query
}

func ApplyAI(cfg AIConfig, usage func(promptTokens int)) ApplyFunc {
	return func(s *Srv) {
		s.ai = &AI{
			chat: openai.New(cfg.Token, cfg.Endpoint, ai.ModelName{
				ChatModel: cfg.Model,
			}).WithUsageObserver(usage),
		}
	}
}
