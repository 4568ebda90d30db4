package controllers

import (
	"errors"
	"log"
	"net/http"
	"usatag/src/db"
	"usatag/src/jobs"
	"usatag/src/models"
	"usatag/src/types"
	"usatag/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const jobQueuedMessage = "Job added to the queue"

func GetPurchase(ctx *gin.Context) (*models.Purchase, int, error) {
	var params types.PurchaseURIParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return nil, http.StatusBadRequest, err
	}
	purchase, err := findPurchase(db.GetDb(), params.ID)
	if err != nil {
		if errors.Is(err, types.ErrPurchaseNotFound) {
			return nil, http.StatusNotFound, err
		}
		log.Printf("[Purchase] error: %s\n", err.Error())
		return nil, http.StatusInternalServerError, types.ErrInternal
	}
	return purchase, http.StatusOK, nil
}

func CreatePurchase(ctx *gin.Context) (*models.Purchase, int, error) {
	var body types.CreatePurchaseRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		status, err := utils.BindError(err)
		return nil, status, err
	}
	purchase := models.NewPurchase(body.PurchaseDetails, body.PaypalPaymentID)
	if err := purchase.Validate(); err != nil {
		return nil, http.StatusBadRequest, err
	}
	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		return tx.Create(purchase).Error
	})
	if err != nil {
		log.Printf("[Purchase] error creating purchase: %s\n", err.Error())
		return nil, http.StatusInternalServerError, types.ErrInternal
	}
	return purchase, http.StatusCreated, nil
}

// UpdatePurchase only queues the payment id change; the worker applies it.
func UpdatePurchase(ctx *gin.Context) (string, int, error) {
	var body types.UpdatePurchaseRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		status, err := utils.BindError(err)
		return "", status, err
	}
	purchase, err := findPurchase(db.GetDb(), body.PurchaseID)
	if err != nil {
		if errors.Is(err, types.ErrPurchaseNotFound) {
			return "", http.StatusNotFound, err
		}
		log.Printf("[Purchase] error: %s\n", err.Error())
		return "", http.StatusInternalServerError, types.ErrInternal
	}
	q, err := jobs.GetQueue(ctx.Request.Context())
	if err != nil {
		return "", http.StatusInternalServerError, types.ErrInternal
	}
	if _, err := jobs.EnqueuePurchaseUpdate(ctx.Request.Context(), q, purchase, body.PaypalPaymentID, body.From); err != nil {
		return "", http.StatusInternalServerError, types.ErrInternal
	}
	return jobQueuedMessage, http.StatusOK, nil
}

func findPurchase(tx *gorm.DB, id string) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := tx.Where("id = ?", id).First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}
