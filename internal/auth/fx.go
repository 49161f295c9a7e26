package auth

import (
	"github.com/smallbiznis/kahraba/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(New),
	fx.Provide(session.NewManager),
)
