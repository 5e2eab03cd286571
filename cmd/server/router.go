package main

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/campusnet/internal/handlers"
)

type routeHandlers struct {
	auth          *handlers.AuthHandler
	users         *handlers.UserHandler
	notifications *handlers.NotificationHandler
	messages      *handlers.MessageHandler
	friends       *handlers.FriendHandler
	health        *handlers.HealthHandler
	websocket     *handlers.WebSocketHandler
}

func APIEndpoints(r *gin.Engine, h routeHandlers, authMW, wsAuthMW gin.HandlerFunc) {
	api := r.Group("/api")
	api.GET("/health", h.health.Health)

	// Дальше только с токеном
	protected := api.Group("", authMW)
	{
		protected.POST("/auth/logout", h.auth.Logout)

		protected.GET("/users/me", h.users.GetMe)
		protected.GET("/users/:id", h.users.GetUser)

		notifications := protected.Group("/notifications")
		notifications.GET("", h.notifications.List)
		notifications.GET("/unread-count", h.notifications.UnreadCount)
		notifications.PUT("/:id/read", h.notifications.MarkRead)
		notifications.DELETE("/:id", h.notifications.Delete)

		messages := protected.Group("/messages")
		messages.GET("/history/:userId", h.messages.History)
		messages.GET("/conversations", h.messages.Conversations)

		friends := protected.Group("/friends/requests")
		friends.GET("/sent", h.friends.ListSent)
		friends.POST("/:userId", h.friends.SendRequest)
		friends.PUT("/:id/accept", h.friends.Accept)
		friends.PUT("/:id/decline", h.friends.Decline)
	}

	r.GET("/ws", wsAuthMW, h.websocket.HandleWebSocket)
}
