// @title         Scrutiny API
// @version       0.1.0
// @description   Heuristic and classifier backed content moderation

package main

import (
	"context"

	"scrutiny/internal/platform/config"
	"scrutiny/internal/platform/logger"
	phttp "scrutiny/internal/platform/net/http"
	"scrutiny/internal/platform/store"

	auditrepo "scrutiny/internal/services/audit/repo"

	"scrutiny/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	// bring up logging early
	l := logger.Get()

	// the audit trail is optional: no DBURL means verdicts are not persisted
	var st *store.Store
	if dburl := pgCfg.MayString("DBURL", ""); dburl != "" {
		var err error
		st, err = store.Open(
			context.Background(),
			store.Config{
				PG: store.PGConfig{
					Enabled:  true,
					URL:      dburl,
					MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 4)),
				},
			},
		)
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()

		if err := auditrepo.EnsureSchema(context.Background(), st.PG); err != nil {
			l.Panic().Err(err).Msg("audit schema failed")
		}
	} else {
		l.Warn().Msg("SERVICE_PGSQL_DBURL not set, audit trail disabled")
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:        apiCfg,
			Store:         st,
			Logger:        l,
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
