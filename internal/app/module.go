package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/lunarpay/reclaim/internal/app/api/server"
	"github.com/lunarpay/reclaim/internal/app/service/account"
	"github.com/lunarpay/reclaim/internal/app/service/ledger"
	"github.com/lunarpay/reclaim/internal/app/service/recovery"
	"github.com/lunarpay/reclaim/internal/platform/db"
	"github.com/lunarpay/reclaim/pkg/config"
	"github.com/lunarpay/reclaim/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	account.Module,
	ledger.Module,
	recovery.Module,
)
