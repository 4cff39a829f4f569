package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/mensagens-api/internal/api/shared"
	"github.com/phrazzld/mensagens-api/internal/domain"
	"github.com/phrazzld/mensagens-api/internal/platform/logger"
	"github.com/phrazzld/mensagens-api/internal/store"
	"github.com/samber/lo"
)

// MessageHandler handles the /api/mensagens endpoints.
type MessageHandler struct {
	store  store.MessageStore
	logger *slog.Logger
}

// NewMessageHandler creates a new MessageHandler.
// It panics if messageStore or logger is nil.
func NewMessageHandler(messageStore store.MessageStore, logger *slog.Logger) *MessageHandler {
	if messageStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("messageStore cannot be nil")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil")
	}

	return &MessageHandler{
		store:  messageStore,
		logger: logger.With(slog.String("component", "message_handler")),
	}
}

// Index handles GET / by listing the available routes.
func (h *MessageHandler) Index(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, routeIndex)
}

// List handles GET /api/mensagens requests.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.store.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	response := lo.Map(messages, func(msg *domain.Message, _ int) MessageResponse {
		return messageToResponse(msg)
	})

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Get handles GET /api/mensagens/{id} requests.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	msg, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, messageToResponse(msg))
}

// Create handles POST /api/mensagens requests.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req messageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	msg := req.toMessage(0)
	if err := shared.ValidateRequest(msg); err != nil {
		HandleAPIError(w, r, err, MsgInvalidMessage)
		return
	}

	created, err := h.store.Create(r.Context(), msg)
	if err != nil {
		HandleAPIError(w, r, err, MsgInvalidMessage)
		return
	}

	log.Debug("message created via API", slog.Int64("message_id", created.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, messageToResponse(created))
}

// Replace handles PUT /api/mensagens/{id} requests. Every field is
// overwritten with the coerced values from the body.
func (h *MessageHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req messageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	msg := req.toMessage(id)
	if err := shared.ValidateRequest(msg); err != nil {
		HandleAPIError(w, r, err, MsgInvalidMessage)
		return
	}

	replaced, err := h.store.Replace(r.Context(), msg)
	if err != nil {
		HandleAPIError(w, r, err, MsgInvalidMessage)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, messageToResponse(replaced))
}

// Update handles PATCH /api/mensagens/{id} requests. Only the fields present
// in the body are changed.
func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req messageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	updated, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, messageToResponse(updated))
}

// Delete handles DELETE /api/mensagens/{id} requests.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondNoContent(w)
}
