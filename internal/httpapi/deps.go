package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/events"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/poll"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub
	Log *logging.Logger

	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Ingest *poll.Runner

	// BaseCtx bounds work that outlives a request. Nil means background.
	BaseCtx context.Context
}

func (d Deps) baseCtx() context.Context {
	if d.BaseCtx == nil {
		return context.Background()
	}
	return d.BaseCtx
}

func (d Deps) config() config.Config {
	if d.CfgVal == nil {
		return config.Default()
	}
	if cfg, ok := d.CfgVal.Load().(config.Config); ok {
		return cfg
	}
	return config.Default()
}

func (d Deps) logger() *logging.Logger {
	if d.Log == nil {
		return logging.Nop()
	}
	return d.Log
}
