package http

import (
	"net/http"
	"strconv"

	"eventhub-backend/internal/service"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32)

	notes, total, err := h.notifications.GetNotifications(
		r.Context(), UserIDFromContext(r.Context()),
		int32(page), int32(pageSize),
	)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, map[string]interface{}{
		"notifications": notes,
		"total":         total,
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.notifications.MarkAsRead(r.Context(), UserIDFromContext(r.Context()), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, nil)
}
