// Package module wires scrutiny into the API using modkit
package module

import (
	"net/http"

	core "scrutiny/internal/core/scrutiny"
	modkit "scrutiny/internal/modkit"
	"scrutiny/internal/modkit/httpkit"

	shttp "scrutiny/internal/services/api/scrutiny/http"
	ssvc "scrutiny/internal/services/api/scrutiny/service"
	auditdom "scrutiny/internal/services/audit/domain"
)

// Module implements the scrutiny API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc ssvc.Service
}

// Ports declares the injected dependencies for this API module
type Ports struct {
	Engine   *core.Engine
	Recorder auditdom.RecorderPort
}

// New constructs the scrutiny module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("scrutiny"),
		modkit.WithPrefix("/scrutiny"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Engine == nil {
		panic("scrutiny API module requires an Engine port")
	}

	svc := ssvc.New(injected.Engine, injected.Recorder)

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
		shttp.Register(r, m.svc)
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
