// Package http provides http transport for scrutiny
package http

import (
	stdhttp "net/http"

	"scrutiny/internal/modkit/httpkit"
	"scrutiny/internal/services/api/scrutiny/domain"
	svc "scrutiny/internal/services/api/scrutiny/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.AnalyzeInput](r, "/analyze", h.analyze)
	httpkit.PostJSON[domain.AnalyzeInput](r, "/gate", h.gate)
}

type handlers struct{ svc svc.Service }

// @Summary Evaluate text against the heuristic pipeline
// @Tags scrutiny
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeInput true "Analyze"
// @Success 200 {object} domain.AnalyzeOutput "ok"
// @Router /scrutiny/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}

// @Summary Evaluate text and reject blocked submissions
// @Tags scrutiny
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeInput true "Gate"
// @Success 200 {object} domain.AnalyzeOutput "ok"
// @Failure 403 {object} httpkit.Envelope "blocked"
// @Router /scrutiny/gate [post]
func (h *handlers) gate(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Gate(r.Context(), in)
}
