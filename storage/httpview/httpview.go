// Package httpview exposes Storage's read-only front-end queries
// (AllThreadsFE, AllRepliesFE) as JSON over plain net/http, following the
// same map[string]http.Handler shape VM.CreateHandlers registers its
// service endpoints under.
package httpview

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/luxfi/log"

	"github.com/luxthread/rewardengine/logic"
	"github.com/luxthread/rewardengine/model"
	"github.com/luxthread/rewardengine/storage"
)

// Handler serves Storage's front-end read queries over HTTP, plus a single
// moderation write (ReportReply) that has no other externally reachable
// entry point. Any caller may report; no admin check is made.
type Handler struct {
	storage *storage.Storage
	logic   *logic.Logic
	log     log.Logger
}

// New returns a Handler backed by store and, for the moderation route, the
// Logic actor that owns the ReportReply operation.
func New(store *storage.Storage, logicActor *logic.Logic, logger log.Logger) *Handler {
	return &Handler{storage: store, logic: logicActor, log: logger.With("component", "httpview")}
}

// Routes returns the path-to-handler map, ready to mount on an http.ServeMux.
func (h *Handler) Routes() map[string]http.Handler {
	return map[string]http.Handler{
		"/threads":                 http.HandlerFunc(h.listThreads),
		"/thread/replies":          http.HandlerFunc(h.threadReplies),
		"/moderation/report-reply": http.HandlerFunc(h.reportReply),
	}
}

func (h *Handler) listThreads(w http.ResponseWriter, r *http.Request) {
	reply, err := h.storage.Send(r.Context(), storage.AllThreadsFE{})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, reply)
}

func (h *Handler) threadReplies(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("thread_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid thread_id %q: %w", raw, err))
		return
	}
	reply, err := h.storage.Send(r.Context(), storage.AllRepliesFE{ThreadId: model.PostId(id)})
	if err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	h.writeJSON(w, reply)
}

// reportReplyRequest is the JSON body of a POST /moderation/report-reply.
type reportReplyRequest struct {
	Caller   model.ActorId `json:"caller"`
	ThreadId model.PostId  `json:"thread_id"`
	ReplyId  model.PostId  `json:"reply_id"`
}

func (h *Handler) reportReply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}
	var body reportReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	reply, err := h.logic.Send(r.Context(), logic.ReportReply{Caller: body.Caller, ThreadId: body.ThreadId, ReplyId: body.ReplyId})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if le, isErr := reply.(logic.LogicError); isErr {
		h.writeError(w, http.StatusConflict, fmt.Errorf("%s: %s", le.Stage, le.Reason))
		return
	}
	h.writeJSON(w, reply)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response failed", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
