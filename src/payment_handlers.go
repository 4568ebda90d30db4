package main

import (
	"usatag/src/controllers"

	"github.com/gin-gonic/gin"
)

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/create-order", func(ctx *gin.Context) {
			id, status, err := controllers.CreateOrder(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"id": id})
		}).
		POST("/capture-order", func(ctx *gin.Context) {
			message, status, err := controllers.CaptureOrder(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"message": message})
		})
	return g
}
