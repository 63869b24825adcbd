// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"focuspit/internal/delivery/http/middleware"
	"focuspit/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	GroupHandler        *handler.GroupHandler
	MembershipHandler   *handler.MembershipHandler
	NotificationHandler *handler.NotificationHandler
	FeedHandler         *handler.FeedHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	groupHandler        *handler.GroupHandler
	membershipHandler   *handler.MembershipHandler
	notificationHandler *handler.NotificationHandler
	feedHandler         *handler.FeedHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		groupHandler:        params.GroupHandler,
		membershipHandler:   params.MembershipHandler,
		notificationHandler: params.NotificationHandler,
		feedHandler:         params.FeedHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// User routes
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.POST("/session", r.userHandler.Session)
		userGroup.PATCH("/profile", r.userHandler.UpdateProfile)
		userGroup.POST("/stamps/:stamp", r.userHandler.GrantStamp)
		userGroup.PUT("/presence", r.userHandler.Heartbeat)
		userGroup.DELETE("/presence", r.userHandler.GoOffline)
	}

	usersGroup := e.Group("/users")
	usersGroup.Use(r.authMiddleware.Authenticate)
	{
		usersGroup.GET("/:uid", r.userHandler.GetUser)
	}

	// Group and dashboard routes
	groupsGroup := e.Group("/groups")
	groupsGroup.Use(r.authMiddleware.Authenticate)
	{
		groupsGroup.POST("", r.groupHandler.CreateGroup)
		groupsGroup.GET("", r.groupHandler.ListGroups)
		groupsGroup.GET("/watch", r.groupHandler.WatchGroups)
		groupsGroup.GET("/:groupID", r.groupHandler.GetGroup)
		groupsGroup.PATCH("/:groupID", r.groupHandler.UpdateGroup)
		groupsGroup.PUT("/:groupID/order", r.groupHandler.SetGroupOrder)
		groupsGroup.POST("/:groupID/archive", r.groupHandler.ArchiveGroup)
		groupsGroup.DELETE("/:groupID", r.groupHandler.DeleteGroup)

		// Widgets
		groupsGroup.POST("/:groupID/widgets", r.groupHandler.AddWidget)
		groupsGroup.GET("/:groupID/widgets", r.groupHandler.ListWidgets)
		groupsGroup.PUT("/:groupID/widgets/:widgetID", r.groupHandler.UpdateWidget)
		groupsGroup.DELETE("/:groupID/widgets/:widgetID", r.groupHandler.RemoveWidget)

		// Members
		groupsGroup.GET("/:groupID/members", r.membershipHandler.ListMembers)
		groupsGroup.POST("/:groupID/members", r.membershipHandler.InviteMember)
		groupsGroup.DELETE("/:groupID/members/:uid", r.membershipHandler.RemoveMember)
		groupsGroup.PUT("/:groupID/members/:uid/admin", r.membershipHandler.SetAdmin)
		groupsGroup.POST("/:groupID/leave", r.membershipHandler.LeaveGroup)
		groupsGroup.GET("/:groupID/invite-qr", r.membershipHandler.InviteQR)
	}

	// Notification routes
	notificationsGroup := e.Group("/notifications")
	notificationsGroup.Use(r.authMiddleware.Authenticate)
	{
		notificationsGroup.POST("", r.notificationHandler.Send)
		notificationsGroup.GET("", r.notificationHandler.List)
		notificationsGroup.GET("/unread-count", r.notificationHandler.UnreadCount)
		notificationsGroup.POST("/read-all", r.notificationHandler.MarkAllAsRead)
		notificationsGroup.POST("/broadcast", r.notificationHandler.Broadcast)
		notificationsGroup.POST("/:id/read", r.notificationHandler.MarkAsRead)
		notificationsGroup.POST("/:id/accept", r.notificationHandler.AcceptInvite)
		notificationsGroup.POST("/:id/reject", r.notificationHandler.RejectInvite)
	}

	// Live feed
	feedGroup := e.Group("/feed")
	feedGroup.Use(r.authMiddleware.Authenticate)
	{
		feedGroup.GET("", r.feedHandler.Stream)
	}
}
