package models

import (
	"usatag/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlateDetailsCode struct {
	ID                  string `gorm:"primarykey" json:"id"`
	TagName             string `gorm:"index" json:"tagName"`
	Status              string `json:"status"`
	TagIssueDate        string `json:"tagIssueDate"`
	TagExpirationDate   string `json:"tagExpirationDate"`
	PurchasedOrLeased   string `json:"purchasedOrLeased"`
	CustomerType        string `json:"customerType"`
	TransferPlate       string `json:"transferPlate"`
	Vin                 string `gorm:"index" json:"vin"`
	VehicleYear         string `json:"vehicleYear"`
	VehicleMake         string `json:"vehicleMake"`
	VehicleModel        string `json:"vehicleModel"`
	VehicleBodyStyle    string `json:"vehicleBodyStyle"`
	VehicleColor        string `json:"vehicleColor"`
	VehicleGVW          string `json:"vehicleGVW"`
	TagType             string `json:"tagType"`
	DealerLicenseNumber string `json:"dealerLicenseNumber"`
	DealerName          string `json:"dealerName"`
	DealerAddress       string `json:"dealerAddress"`
	DealerPhone         string `json:"dealerPhone"`
	DealerType          string `json:"dealerType"`
	DealerGDN           string `json:"dealerGDN"`
	DealerDBA           string `json:"dealerDBA"`
	HasBarcode          bool   `json:"hasBarcode"`
	HasQRCode           bool   `json:"hasQRCode"`
	State               string `json:"State"`
	InsuranceProvider   string `gorm:"default:''" json:"insuranceProvider"`
	IsInsurance         bool   `gorm:"default:false" json:"isInsurance"`
	AgentName           string `json:"agentName"`
	PolicyNumber        string `gorm:"index" json:"policyNumber"`
	NameOwner           string `json:"nameOwner"`
	Address             string `json:"address"`
	EffectiveTimestamp  string `json:"effectiveTimestamp"`
	VerificationCode    string `json:"verificationCode"`
	CreateTimestamp     string `json:"createTimestamp"`
	EndTimestamp        string `json:"endTimestamp"`
	StatusCode          string `json:"statusCode"`

	types.Timestamps
}

func (c *PlateDetailsCode) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.HasBarcode = true
	c.HasQRCode = true
	return nil
}

// NewPlateDetailsCode copies the request into a record. Texas-only fields are
// carried only when the request is flagged isTexas.
func NewPlateDetailsCode(b types.CreatePlateCodeRequestBody) *PlateDetailsCode {
	code := &PlateDetailsCode{
		TagName:             b.TagName,
		Status:              b.Status,
		TagIssueDate:        b.TagIssueDate,
		TagExpirationDate:   b.TagExpirationDate,
		PurchasedOrLeased:   b.PurchasedOrLeased,
		CustomerType:        b.CustomerType,
		TransferPlate:       b.TransferPlate,
		Vin:                 b.Vin,
		VehicleYear:         b.VehicleYear,
		VehicleMake:         b.VehicleMake,
		VehicleModel:        b.VehicleModel,
		VehicleBodyStyle:    b.VehicleBodyStyle,
		VehicleColor:        b.VehicleColor,
		VehicleGVW:          b.VehicleGVW,
		TagType:             b.TagType,
		DealerLicenseNumber: b.DealerLicenseNumber,
		DealerName:          b.DealerName,
		DealerAddress:       b.DealerAddress,
		DealerPhone:         b.DealerPhone,
		DealerType:          b.DealerType,
		State:               b.State,
		InsuranceProvider:   b.InsuranceProvider,
		IsInsurance:         b.IsInsurance,
		AgentName:           b.AgentName,
		PolicyNumber:        b.PolicyNumber,
		NameOwner:           b.NameOwner,
		Address:             b.Address,
	}
	if b.IsTexas {
		code.EffectiveTimestamp = b.EffectiveTimestamp
		code.VerificationCode = b.VerificationCode
		code.CreateTimestamp = b.CreateTimestamp
		code.EndTimestamp = b.EndTimestamp
		code.StatusCode = b.StatusCode
		code.DealerGDN = b.DealerGDN
		code.DealerDBA = b.DealerDBA
	}
	return code
}
