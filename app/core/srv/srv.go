package srv

import (
	"github.com/aretacare/aretacare/pkg/ai"
)

type Srv struct {
	ai *AI
}

type ApplyFunc func(*Srv)

func SetupSrvs(opts ...ApplyFunc) *Srv {
	a := &Srv{}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (s *Srv) AI() ai.Query {
	return s.ai.chat
}
