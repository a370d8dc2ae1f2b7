// Package handler serves the read-only REST side of chat: history, room
// read state, unread counts and presence.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"famchat/internal/chat/service"
	"famchat/internal/common"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PresenceReader answers whether a user has an open session.
type PresenceReader interface {
	IsOnline(ctx context.Context, userID uint64) (bool, error)
}

type ChatHandler struct {
	history  service.HistoryService
	presence PresenceReader
	log      *zap.Logger
}

// NewChatHandler builds the handler. presence may be nil when presence
// tracking is disabled.
func NewChatHandler(history service.HistoryService, presence PresenceReader, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		history:  history,
		presence: presence,
		log:      log.Named("chat_handler"),
	}
}

// RegisterRoutes mounts the endpoints on r. r is expected to sit behind
// common.AuthMiddleware.
func (h *ChatHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/rooms/unread", h.UnreadCounts).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{roomID:[0-9]+}/messages", h.History).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{roomID:[0-9]+}/read-state", h.ReadState).Methods(http.MethodGet)
	r.HandleFunc("/presence/{userID:[0-9]+}", h.Presence).Methods(http.MethodGet)
}

type historyResponse struct {
	RoomID   uint64      `json:"room_id"`
	Messages interface{} `json:"messages"`
}

// History handles GET /rooms/{roomID}/messages?limit=&before=
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}
	roomID, err := pathID(r, "roomID")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			common.WriteError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
	}
	var before uint64
	if raw := q.Get("before"); raw != "" {
		before, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			common.WriteError(w, http.StatusBadRequest, "before must be a message id")
			return
		}
	}

	msgs, err := h.history.History(r.Context(), viewerID, roomID, before, limit)
	if err != nil {
		h.writeServiceError(w, err, "history")
		return
	}
	common.WriteJSON(w, http.StatusOK, historyResponse{RoomID: roomID, Messages: msgs})
}

// ReadState handles GET /rooms/{roomID}/read-state
func (h *ChatHandler) ReadState(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}
	roomID, err := pathID(r, "roomID")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	members, err := h.history.ReadState(r.Context(), viewerID, roomID)
	if err != nil {
		h.writeServiceError(w, err, "read_state")
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"room_id": roomID,
		"members": members,
	})
}

// UnreadCounts handles GET /rooms/unread
func (h *ChatHandler) UnreadCounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	counts, err := h.history.UnreadCounts(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err, "unread_counts")
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"rooms": counts})
}

// Presence handles GET /presence/{userID}
func (h *ChatHandler) Presence(w http.ResponseWriter, r *http.Request) {
	if _, ok := common.UserIDFromContext(r.Context()); !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}
	if h.presence == nil {
		common.WriteError(w, http.StatusServiceUnavailable, "presence tracking is disabled")
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	online, err := h.presence.IsOnline(r.Context(), userID)
	if err != nil {
		h.log.Error("presence lookup failed", zap.Uint64("user_id", userID), zap.Error(err))
		common.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"online":  online,
	})
}

func pathID(r *http.Request, name string) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, common.Invalidf("invalid %s", name)
	}
	return id, nil
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Store
// failures are logged and reported without detail.
func (h *ChatHandler) writeServiceError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		common.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrValidation):
		common.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUnauthorized):
		common.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrForbidden):
		common.WriteError(w, http.StatusForbidden, "not a member of this room")
	default:
		h.log.Error("request failed", zap.String("op", op), zap.Error(err))
		common.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
