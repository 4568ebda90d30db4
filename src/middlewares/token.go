package middlewares

import (
	"log"
	"net/http"
	"usatag/src/types"
	"usatag/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// RequireToken guards admin routes. The token travels in the JSON body, so
// the body is cached for the handler to bind again.
func RequireToken(ctx *gin.Context) {
	var body types.TokenRequestBody
	if err := ctx.ShouldBindBodyWith(&body, binding.JSON); err != nil {
		log.Printf("[Token] bind error: %s\n", err.Error())
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": types.ErrInvalidToken.Error()})
		return
	}
	claims, err := utils.VerifyJWT(body.Token)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": types.ErrInvalidToken.Error()})
		return
	}
	ctx.Set("email", claims.Email)
	ctx.Set("name", claims.Name)
	ctx.Next()
}
