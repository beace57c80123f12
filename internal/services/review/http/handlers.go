// Package http provides http transport for review
package http

import (
	stdhttp "net/http"

	"exhume/internal/modkit/httpkit"
	"exhume/internal/services/review/domain"
	svc "exhume/internal/services/review/service"
)

// Register mounts review endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RunsInput](r, "/runs", h.runs)
	httpkit.PostJSON[domain.ConversationsInput](r, "/conversations", h.conversations)
	httpkit.PostJSON[domain.MessagesInput](r, "/messages", h.messages)
	httpkit.PostJSON[domain.FindingsInput](r, "/findings", h.findings)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /review/runs Review reviewRuns
// @Summary Recently loaded carve runs
// @Tags Review
// @Accept json
// @Produce json
// @Param payload body domain.RunsInput true "Query"
// @Success 200 {array} domain.Run "ok"
// @Router /review/runs [post]
func (h *handlers) runs(r *stdhttp.Request, in domain.RunsInput) (any, error) {
	return h.svc.Runs(r.Context(), in)
}

// @Summary Conversation summaries for one run
// @Tags Review
// @Accept json
// @Produce json
// @Param payload body domain.ConversationsInput true "Query"
// @Success 200 {array} domain.Conversation "ok"
// @Router /review/conversations [post]
func (h *handlers) conversations(r *stdhttp.Request, in domain.ConversationsInput) (any, error) {
	items, total, err := h.svc.Conversations(r.Context(), in)
	if err != nil {
		return nil, err
	}
	limit, offset := in.Window()
	return httpkit.Paged(items, httpkit.Page{Total: total, Limit: limit, Offset: offset}), nil
}

// @Summary Messages for one conversation
// @Tags Review
// @Accept json
// @Produce json
// @Param payload body domain.MessagesInput true "Query"
// @Success 200 {array} domain.Message "ok"
// @Router /review/messages [post]
func (h *handlers) messages(r *stdhttp.Request, in domain.MessagesInput) (any, error) {
	return h.svc.Messages(r.Context(), in)
}

// @Summary Validation findings for one run
// @Tags Review
// @Accept json
// @Produce json
// @Param payload body domain.FindingsInput true "Query"
// @Success 200 {array} domain.Finding "ok"
// @Router /review/findings [post]
func (h *handlers) findings(r *stdhttp.Request, in domain.FindingsInput) (any, error) {
	return h.svc.Findings(r.Context(), in)
}
