package main

import (
	"log"
	"net/http"
	"os"
	"usatag/src/controllers"

	"github.com/gin-gonic/gin"
)

func plateCodeHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/createPlateCode", func(ctx *gin.Context) {
			code, status, err := controllers.CreatePlateCode(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{
				"data":    code,
				"message": "Plate code created successfully",
				"success": true,
			})
		}).
		GET("/plateDetailsCodes", func(ctx *gin.Context) {
			codes, status, err := controllers.ListPlateDetailsCodes(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{
				"data":    codes,
				"message": "QR codes fetched successfully",
				"success": true,
			})
		}).
		GET("/plateDetailsCodes/:tagName", func(ctx *gin.Context) {
			code, status, err := controllers.FindPlateDetailsCode(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			res := gin.H{
				"message": "Plate code fetched successfully",
				"success": true,
			}
			if code != nil {
				res["data"] = code
			}
			ctx.JSON(http.StatusOK, res)
		}).
		GET("/plateDetailsCodes/:tagName/qrcode", func(ctx *gin.Context) {
			filepath, code, status, err := controllers.PlateDetailsCodeQR(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			defer func() {
				if err := os.Remove(filepath); err != nil {
					log.Printf("Could not remove qrcode file [%s]: %s\n", filepath, err.Error())
				}
			}()
			ctx.FileAttachment(filepath, code.TagName+".jpeg")
		})
	return g
}
