package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes binds the HTTP surface to the router.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.POST("/participants", h.CreateParticipant)
	r.GET("/participants", h.ListParticipants)
	r.POST("/messages", h.CreateMessage)
	r.GET("/messages", h.ListMessages)
	r.POST("/status", h.UpdateStatus)
	r.GET("/events", h.ServeEvents)
}
