package middlewares

import (
	"errors"
	"log"
	"net/http"
	"syscall"
	"time"
	"usatag/src/types"

	"github.com/gin-gonic/gin"
)

const connectionResetMessage = "Connection was reset, please try again."

func RequestTimer(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()
	log.Printf("Request to %s took %dms\n", ctx.Request.URL.Path, time.Since(start).Milliseconds())
}

// ConnectionResetGuard turns a reset peer connection surfaced by any handler
// into a plain-text 500, as long as nothing has been written yet.
func ConnectionResetGuard(ctx *gin.Context) {
	ctx.Next()
	for _, e := range ctx.Errors {
		if !errors.Is(e.Err, syscall.ECONNRESET) {
			continue
		}
		log.Printf("[Request] connection reset: %s\n", e.Error())
		if !ctx.Writer.Written() {
			ctx.String(http.StatusInternalServerError, connectionResetMessage)
		}
		return
	}
}

// BodyLimit rejects declared oversize bodies up front and caps the rest while
// they are read.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.ContentLength > limit {
			ctx.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": types.ErrBodyTooLarge.Error()})
			return
		}
		if ctx.Request.Body != nil {
			ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)
		}
		ctx.Next()
	}
}
