package main

import (
	"net/http"
	"usatag/src/controllers"

	"github.com/gin-gonic/gin"
)

func purchaseHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/purchase/:id", func(ctx *gin.Context) {
			purchase, status, err := controllers.GetPurchase(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{
				"data":    purchase,
				"message": "Purchase fetched successfully",
				"success": true,
			})
		}).
		POST("/createPurchase", func(ctx *gin.Context) {
			purchase, status, err := controllers.CreatePurchase(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{
				"data":    purchase,
				"message": "Purchase created successfully",
				"success": true,
			})
		}).
		POST("/updatePurchase", func(ctx *gin.Context) {
			result, status, err := controllers.UpdatePurchase(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data":    result,
				"message": "Purchase updated successfully",
				"success": true,
			})
		})
	return g
}
