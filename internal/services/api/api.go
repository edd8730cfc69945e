// Package api provides the HTTP API for the application
package api

import (
	"scrutiny/internal/core/lexicon"
	core "scrutiny/internal/core/scrutiny"
	"scrutiny/internal/platform/config"
	"scrutiny/internal/platform/logger"
	"scrutiny/internal/platform/metrics"
	phttp "scrutiny/internal/platform/net/http"
	"scrutiny/internal/platform/store"

	"scrutiny/internal/modkit"
	"scrutiny/internal/modkit/httpkit"
	"scrutiny/internal/modkit/module"
	"scrutiny/internal/modkit/swaggerkit"

	auditdom "scrutiny/internal/services/audit/domain"
	auditrepo "scrutiny/internal/services/audit/repo"
	auditsvc "scrutiny/internal/services/audit/service"

	metamod "scrutiny/internal/services/api/meta/module"
	moderationmod "scrutiny/internal/services/api/moderation/module"
	scrutinymod "scrutiny/internal/services/api/scrutiny/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	lex := lexicon.MustLoad()
	engine := core.New(lex)

	// audit degrades to a no-op when Postgres is not configured
	var recorder auditdom.RecorderPort = auditsvc.Nop{}
	if deps.PG != nil {
		recorder = auditsvc.New(deps.PG, auditrepo.NewPG())
	}

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{
			Lexicon: lex,
		})),
		scrutinymod.New(deps, modkit.WithPorts(scrutinymod.Ports{
			Engine:   engine,
			Recorder: recorder,
		})),
		moderationmod.New(deps, modkit.WithPorts(moderationmod.Ports{
			Lexicon:  lex,
			Recorder: recorder,
		})),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		r.Handle("/metrics", metrics.Handler())

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
