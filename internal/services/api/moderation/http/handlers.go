// Package http provides http transport for moderation
package http

import (
	stdhttp "net/http"

	"scrutiny/internal/modkit/httpkit"
	"scrutiny/internal/services/api/moderation/domain"
	svc "scrutiny/internal/services/api/moderation/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CheckInput](r, "/check", h.check)
}

type handlers struct{ svc svc.Service }

// @Summary Run a classifier-backed moderation check
// @Tags moderation
// @Accept json
// @Produce json
// @Param payload body domain.CheckInput true "Check"
// @Success 200 {object} domain.CheckOutput "ok"
// @Router /moderation/check [post]
func (h *handlers) check(r *stdhttp.Request, in domain.CheckInput) (any, error) {
	return h.svc.Check(r.Context(), in)
}
