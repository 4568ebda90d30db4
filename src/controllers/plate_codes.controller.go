package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"reflect"
	"strings"
	"usatag/src/config"
	"usatag/src/db"
	"usatag/src/models"
	"usatag/src/types"
	"usatag/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/gookit/goutil/dump"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

// fields that the update endpoint accepts but never writes
var readOnlyCodeFields = map[string]bool{
	"id":        true,
	"createdAt": true,
	"updatedAt": true,
}

func ListCodes(ctx *gin.Context) ([]models.PlateDetailsCode, int, error) {
	codes, err := allPlateCodes()
	if err != nil {
		log.Printf("[Codes] error: %s\n", err.Error())
		return nil, http.StatusInternalServerError, types.ErrInternal
	}
	return codes, http.StatusOK, nil
}

func DeleteCode(ctx *gin.Context) (int, error) {
	var body types.DeleteCodeRequestBody
	if err := ctx.ShouldBindBodyWith(&body, binding.JSON); err != nil {
		return utils.BindError(err)
	}
	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		code, err := findPlateCodeByID(tx, body.ID)
		if err != nil {
			return err
		}
		return tx.Delete(code).Error
	})
	if err != nil {
		if errors.Is(err, types.ErrCodeNotFound) {
			return http.StatusNotFound, err
		}
		log.Printf("[Codes] error deleting %s: %s\n", body.ID, err.Error())
		return http.StatusInternalServerError, types.ErrInternal
	}
	return http.StatusOK, nil
}

// UpdateCode merges the given JSON fields into an existing code.
func UpdateCode(ctx *gin.Context) (int, error) {
	var body types.UpdateCodeRequestBody
	if err := ctx.ShouldBindBodyWith(&body, binding.JSON); err != nil {
		return utils.BindError(err)
	}
	db := db.GetDb()
	code, err := findPlateCodeByID(db, body.ID)
	if err != nil {
		if errors.Is(err, types.ErrCodeNotFound) {
			return http.StatusNotFound, err
		}
		log.Printf("[Codes] error: %s\n", err.Error())
		return http.StatusInternalServerError, types.ErrInternal
	}
	updates, err := plateCodeUpdates(db, body.Data)
	if err != nil {
		return http.StatusBadRequest, err
	}
	if config.IsLocal() {
		dump.P(updates)
	}
	if len(updates) == 0 {
		return http.StatusOK, nil
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(code).Updates(updates).Error
	})
	if err != nil {
		log.Printf("[Codes] error updating %s: %s\n", body.ID, err.Error())
		return http.StatusInternalServerError, types.ErrInternal
	}
	return http.StatusOK, nil
}

func CreatePlateCode(ctx *gin.Context) (*models.PlateDetailsCode, int, error) {
	var body types.CreatePlateCodeRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		status, err := utils.BindError(err)
		return nil, status, err
	}
	code := models.NewPlateDetailsCode(body)
	status := http.StatusCreated
	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		var tagCount int64
		if err := tx.Model(&models.PlateDetailsCode{}).
			Where("tag_name = ?", body.TagName).
			Count(&tagCount).
			Error; err != nil {
			return err
		}
		duplicateTag := tagCount > 0
		if duplicateTag && !body.IsInsurance {
			status = http.StatusBadRequest
			return types.ErrPlateCodeExists
		}
		if !body.IsTexas && body.IsInsurance {
			var policyCount int64
			if err := tx.Model(&models.PlateDetailsCode{}).
				Where("policy_number = ?", body.PolicyNumber).
				Count(&policyCount).
				Error; err != nil {
				return err
			}
			if policyCount > 0 {
				status = http.StatusBadRequest
				return types.ErrPolicyExists
			}
		}
		return tx.Create(code).Error
	})
	if err != nil {
		if status == http.StatusBadRequest {
			return nil, status, err
		}
		log.Printf("[PlateCode] error creating %s: %s\n", body.TagName, err.Error())
		return nil, http.StatusInternalServerError, types.ErrInternal
	}
	return code, status, nil
}

func ListPlateDetailsCodes(ctx *gin.Context) ([]models.PlateDetailsCode, int, error) {
	codes, err := allPlateCodes()
	if err != nil {
		log.Printf("[PlateCode] error: %s\n", err.Error())
		return nil, http.StatusInternalServerError, types.ErrInternal
	}
	return codes, http.StatusOK, nil
}

// FindPlateDetailsCode looks the path value up as a tag name, then a VIN,
// then a policy number. A nil code with status 200 means nothing matched.
func FindPlateDetailsCode(ctx *gin.Context) (*models.PlateDetailsCode, int, error) {
	var params types.PlateCodeURIParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return nil, http.StatusBadRequest, err
	}
	code, err := lookupPlateCode(db.GetDb(), params.TagName)
	if err != nil {
		log.Printf("[PlateCode] error: %s\n", err.Error())
		return nil, http.StatusInternalServerError, types.ErrInternal
	}
	return code, http.StatusOK, nil
}

// PlateDetailsCodeQR writes a JPEG QR code pointing at the code's public page
// and returns its path. The caller removes the file.
func PlateDetailsCodeQR(ctx *gin.Context) (string, *models.PlateDetailsCode, int, error) {
	code, status, err := FindPlateDetailsCode(ctx)
	if err != nil {
		return "", nil, status, err
	}
	if code == nil {
		return "", nil, http.StatusNotFound, types.ErrPlateCodeNotFound
	}
	target := fmt.Sprintf("%s/plateDetailsCodes/%s", strings.TrimRight(config.ServerURL(), "/"), url.PathEscape(code.TagName))
	qrc, err := qrcode.New(target)
	if err != nil {
		log.Printf("[PlateCode] error encoding qrcode: %s\n", err.Error())
		return "", nil, http.StatusInternalServerError, types.ErrInternal
	}
	f, err := os.CreateTemp(config.TempDir(), "plate-*.jpeg")
	if err != nil {
		log.Printf("[PlateCode] error creating temp file: %s\n", err.Error())
		return "", nil, http.StatusInternalServerError, types.ErrInternal
	}
	filepath := f.Name()
	f.Close()
	if err := qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		os.Remove(filepath)
		return "", nil, http.StatusInternalServerError, types.ErrInternal
	}
	return filepath, code, http.StatusOK, nil
}

func allPlateCodes() ([]models.PlateDetailsCode, error) {
	codes := []models.PlateDetailsCode{}
	if err := db.GetDb().Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func findPlateCodeByID(tx *gorm.DB, id string) (*models.PlateDetailsCode, error) {
	var code models.PlateDetailsCode
	if err := tx.Where("id = ?", id).First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}

func lookupPlateCode(tx *gorm.DB, value string) (*models.PlateDetailsCode, error) {
	var matches []models.PlateDetailsCode
	for _, column := range []string{"tag_name", "vin", "policy_number"} {
		var found []models.PlateDetailsCode
		if err := tx.Where(column+" = ?", value).Find(&found).Error; err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// plateCodeUpdates maps JSON field names onto columns, coercing values to the
// column's Go kind.
func plateCodeUpdates(tx *gorm.DB, data map[string]any) (map[string]any, error) {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(&models.PlateDetailsCode{}); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	for key, value := range data {
		if readOnlyCodeFields[key] {
			continue
		}
		var column string
		var kind reflect.Kind
		for _, f := range stmt.Schema.Fields {
			jsonName, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if jsonName == key && f.DBName != "" {
				column = f.DBName
				kind = f.FieldType.Kind()
				break
			}
		}
		if column == "" {
			return nil, fmt.Errorf("Unknown field: %s", key)
		}
		switch kind {
		case reflect.Bool:
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("Invalid value for field: %s", key)
			}
			updates[column] = b
		case reflect.String:
			switch v := value.(type) {
			case nil:
				updates[column] = ""
			case string:
				updates[column] = v
			default:
				updates[column] = fmt.Sprint(v)
			}
		default:
			return nil, fmt.Errorf("Invalid value for field: %s", key)
		}
	}
	return updates, nil
}
