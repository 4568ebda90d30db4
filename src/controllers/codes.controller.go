package controllers

import (
	"errors"
	"log"
	"net/http"
	"usatag/src/db"
	"usatag/src/models"
	"usatag/src/types"
	"usatag/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Login(ctx *gin.Context) (string, int, error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		status, err := utils.BindError(err)
		return "", status, err
	}
	var user models.User
	if err := db.GetDb().
		Where("email = ?", body.Email).
		First(&user).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", http.StatusNotFound, types.ErrUserNotFound
		}
		log.Printf("[Auth] error: %s\n", err.Error())
		return "", http.StatusInternalServerError, types.ErrInternal
	}
	if !utils.CheckPassword(user.Password, body.Password) {
		return "", http.StatusBadRequest, types.ErrInvalidPassword
	}
	token, err := utils.GenerateJWT(user.Email, user.Username)
	if err != nil {
		log.Printf("[Auth] error: %s\n", err.Error())
		return "", http.StatusInternalServerError, types.ErrInternal
	}
	return token, http.StatusOK, nil
}

// VerifyToken never fails the request; the result is reported in the body.
func VerifyToken(ctx *gin.Context) bool {
	var body types.TokenRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return false
	}
	_, err := utils.VerifyJWT(body.Token)
	return err == nil
}
