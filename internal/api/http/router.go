package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"eventhub-backend/internal/security"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth          *AuthHandler
	Orgs          *OrgHandler
	Events        *EventHandler
	Teams         *TeamHandler
	Invites       *InviteHandler
	JoinRequests  *JoinRequestHandler
	Notifications *NotificationHandler
}

// NewRouter builds the full route table. Everything under /api/v1 except
// the auth endpoints requires a valid access token.
func NewRouter(h Handlers, tm security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods("POST")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods("POST")

	// Authenticated
	auth := api.NewRoute().Subrouter()
	auth.Use(AuthMiddleware(tm))

	// Organizations
	auth.HandleFunc("/orgs", h.Orgs.Create).Methods("POST")
	auth.HandleFunc("/orgs/slug/{slug}", h.Orgs.GetBySlug).Methods("GET")
	auth.HandleFunc("/orgs/{id}", h.Orgs.Get).Methods("GET")
	auth.HandleFunc("/orgs/{id}", h.Orgs.Update).Methods("PUT")
	auth.HandleFunc("/orgs/{id}/members", h.Orgs.ListMembers).Methods("GET")
	auth.HandleFunc("/orgs/{id}/members/{userID}/role", h.Orgs.ChangeMemberRole).Methods("PUT")
	auth.HandleFunc("/orgs/{id}/members/{userID}", h.Orgs.RemoveMember).Methods("DELETE")
	auth.HandleFunc("/me/orgs", h.Orgs.ListMine).Methods("GET")

	// Events
	auth.HandleFunc("/orgs/{id}/events", h.Events.Create).Methods("POST")
	auth.HandleFunc("/orgs/{id}/events", h.Events.ListByOrg).Methods("GET")
	auth.HandleFunc("/events/{id}", h.Events.Get).Methods("GET")
	auth.HandleFunc("/events/{id}", h.Events.Update).Methods("PUT")
	auth.HandleFunc("/events/{id}/register", h.Events.Register).Methods("POST")
	auth.HandleFunc("/events/{id}/register", h.Events.CancelRegistration).Methods("DELETE")
	auth.HandleFunc("/events/{id}/staff", h.Events.AddStaff).Methods("POST")
	auth.HandleFunc("/events/{id}/staff", h.Events.ListStaff).Methods("GET")
	auth.HandleFunc("/events/{id}/staff/{userID}", h.Events.RemoveStaff).Methods("DELETE")

	// Teams
	auth.HandleFunc("/events/{id}/teams", h.Teams.Create).Methods("POST")
	auth.HandleFunc("/events/{id}/teams", h.Teams.ListByEvent).Methods("GET")
	auth.HandleFunc("/teams/{id}", h.Teams.Get).Methods("GET")
	auth.HandleFunc("/teams/{id}/members", h.Teams.ListMembers).Methods("GET")

	// Email invites
	auth.HandleFunc("/invites/email", h.Invites.CreateEmailInvite).Methods("POST")
	auth.HandleFunc("/invites/email", h.Invites.ListEmailInvites).Methods("GET")
	auth.HandleFunc("/invites/email/{token}/accept", h.Invites.AcceptEmailInvite).Methods("POST")
	auth.HandleFunc("/invites/email/{token}", h.Invites.CancelEmailInvite).Methods("DELETE")

	// Invite links
	auth.HandleFunc("/invites/links", h.Invites.CreateInviteLink).Methods("POST")
	auth.HandleFunc("/invites/links", h.Invites.ListInviteLinks).Methods("GET")
	auth.HandleFunc("/invites/links/{token}/accept", h.Invites.AcceptInviteLink).Methods("POST")
	auth.HandleFunc("/invites/links/{token}", h.Invites.RevokeInviteLink).Methods("DELETE")

	// Join requests
	auth.HandleFunc("/join-requests", h.JoinRequests.Create).Methods("POST")
	auth.HandleFunc("/join-requests", h.JoinRequests.ListPending).Methods("GET")
	auth.HandleFunc("/join-requests/{id}/review", h.JoinRequests.Review).Methods("POST")

	// Notifications
	auth.HandleFunc("/notifications", h.Notifications.List).Methods("GET")
	auth.HandleFunc("/notifications/{id}/read", h.Notifications.MarkAsRead).Methods("POST")

	return r
}
