package controllers

import (
	"errors"
	"log"
	"net/http"
	"usatag/src/lib"
	"usatag/src/lib/mailer"
	"usatag/src/types"
	"usatag/src/utils"

	"github.com/gin-gonic/gin"
)

var (
	errCreateOrder  = errors.New("Error creating PayPal order")
	errCaptureOrder = errors.New("Error capturing PayPal order")
)

const paymentCompletedMessage = "Payment completed and email sent"

func CreateOrder(ctx *gin.Context) (string, int, error) {
	var body types.CreateOrderRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		status, err := utils.BindError(err)
		return "", status, err
	}
	provider := lib.GetPaymentProvider()
	id, err := provider.CreateOrder(ctx.Request.Context(), body.Amount.String(), body.Currency)
	if err != nil {
		log.Printf("[Payment] Error creating order: %s\n", err.Error())
		return "", http.StatusInternalServerError, errCreateOrder
	}
	return id, http.StatusOK, nil
}

// CaptureOrder captures an approved order and, once completed, sends the
// receipt in the background.
func CaptureOrder(ctx *gin.Context) (string, int, error) {
	var body types.CaptureOrderRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		status, err := utils.BindError(err)
		return "", status, err
	}
	provider := lib.GetPaymentProvider()
	res, err := provider.CaptureOrder(ctx.Request.Context(), body.OrderID)
	if err != nil {
		log.Printf("[Payment] Error capturing order: %s\n", err.Error())
		return "", http.StatusInternalServerError, errCaptureOrder
	}
	if res.Amount == "" {
		return "", http.StatusBadRequest, types.ErrPaymentIncomplete
	}
	if res.Status != types.CAPTURE_COMPLETED {
		return "", http.StatusBadRequest, types.ErrPaymentNotDone
	}
	// DateSS is never sent by the checkout form, so the subject stays empty.
	receipt := mailer.Receipt{PurchaseDetails: body.PurchaseDetails}
	go mailer.SendReceipt(body.Email, res.Amount, receipt)
	return paymentCompletedMessage, http.StatusOK, nil
}
