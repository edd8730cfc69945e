// Package module wires moderation into the API using modkit
package module

import (
	"context"
	"net/http"
	"time"

	"scrutiny/internal/adapters/classifier"
	"scrutiny/internal/core/lexicon"
	modkit "scrutiny/internal/modkit"
	"scrutiny/internal/modkit/httpkit"

	mhttp "scrutiny/internal/services/api/moderation/http"
	msvc "scrutiny/internal/services/api/moderation/service"
	auditdom "scrutiny/internal/services/audit/domain"
)

// Module implements the moderation API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc msvc.Service
}

// Ports declares the injected dependencies for this API module
type Ports struct {
	Lexicon    *lexicon.Lexicon
	Classifier classifier.Port
	Recorder   auditdom.RecorderPort
}

// New constructs the moderation module (config-driven, parity with other API modules)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("moderation"),
		modkit.WithPrefix("/moderation"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Lexicon == nil {
		panic("moderation API module requires a Lexicon port")
	}
	cls := injected.Classifier
	if cls == nil {
		cfg := deps.Cfg.Prefix("MODERATION_")
		client := classifier.NewClient(classifier.Options{
			BaseURL:   cfg.MayString("CLASSIFIER_URL", ""),
			UserAgent: cfg.MayString("CLASSIFIER_UA", ""),
			Timeout:   cfg.MayDuration("CLASSIFIER_TIMEOUT", 15*time.Second),
		})
		// best effort so the first check does not pay the model load
		go client.Warmup(context.Background())
		cls = client
	}

	svc := msvc.New(injected.Lexicon, cls, injected.Recorder)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = svc

	external := b.Register
	m.register = func(r httpkit.Router) {
		mhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports exposes the service for cross wiring
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
