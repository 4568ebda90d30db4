package main

import (
	"net/http"
	"usatag/src/controllers"
	"usatag/src/middlewares"
	"usatag/src/types"

	"github.com/gin-gonic/gin"
)

func codesHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	codes := g.Group("/codes")
	codes.
		POST("/login", func(ctx *gin.Context) {
			token, status, err := controllers.Login(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{
				"data":    token,
				"message": "User logged in successfully",
				"success": true,
			})
		}).
		POST("/verify", func(ctx *gin.Context) {
			if !controllers.VerifyToken(ctx) {
				ctx.JSON(http.StatusOK, gin.H{
					"data":    false,
					"message": types.ErrInvalidToken.Error(),
					"success": false,
				})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data":    true,
				"message": "Token verified successfully",
				"success": true,
			})
		})

	codes.
		POST("/list", middlewares.RequireToken, func(ctx *gin.Context) {
			list, status, err := controllers.ListCodes(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{
				"data":    list,
				"message": "Codes fetched successfully",
				"success": true,
			})
		}).
		POST("/delete", middlewares.RequireToken, func(ctx *gin.Context) {
			status, err := controllers.DeleteCode(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{
				"data":    true,
				"message": "Code deleted successfully",
				"success": true,
			})
		}).
		POST("/update", middlewares.RequireToken, func(ctx *gin.Context) {
			status, err := controllers.UpdateCode(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{
				"data":    true,
				"message": "Code updated successfully",
				"success": true,
			})
		})
	return codes
}
