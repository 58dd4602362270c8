package recovery

import (
	"go.uber.org/fx"

	"github.com/lunarpay/reclaim/internal/app/service/account"
	"github.com/lunarpay/reclaim/internal/app/service/ledger"
	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
	"github.com/lunarpay/reclaim/pkg/config"

	"go.uber.org/zap"
)

// Module exposes the recovery engine via Fx, binding the concrete account
// and ledger services to the engine's interfaces.
var Module = fx.Options(
	fx.Provide(func(cfg *config.Config, log *zap.SugaredLogger, accounts *account.Service, led *ledger.Service) Manager {
		return NewService(cfg, log, accounts, led, stripeapi.NewClient)
	}),
)
