package models

import (
	"strings"
	"usatag/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Purchase struct {
	ID                      string  `gorm:"primarykey" json:"id"`
	PurchaseType            string  `gorm:"default:'plate'" json:"purchaseType"`
	Vin                     string  `json:"vin"`
	Color                   string  `json:"color"`
	Email                   string  `json:"email"`
	State                   string  `json:"state"`
	Name                    string  `json:"name"`
	LastName                string  `json:"lastName"`
	Address                 string  `json:"address"`
	City                    string  `json:"city"`
	HouseType               string  `json:"houseType"`
	Zip                     string  `json:"zip"`
	Phone                   string  `json:"phone"`
	DriverLicense           string  `json:"driverLicense"`
	Details                 string  `json:"details"`
	PaypalPaymentID         string  `json:"paypalPaymentId"`
	HasFee                  bool    `json:"hasFee"`
	IsInsurance             bool    `json:"isInsurance"`
	Total                   float64 `json:"total"`
	OptionSelectedPlate     string  `json:"optionSelectedPlate"`
	OptionSelectedInsurance string  `json:"optionSelectedInsurance"`
	InsurancePrice          float64 `json:"insurancePrice"`
	InsuranceProvider       string  `json:"insuranceProvider"`
	VehicleInsurance        string  `json:"vehicleInsurance"`
	Image                   string  `json:"image"`
	VehicleType             string  `json:"vehicleType"`
	SaleBill                string  `json:"saleBill"`

	types.Timestamps
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PurchaseType == "" {
		p.PurchaseType = types.PURCHASE_TYPE_PLATE
	}
	return nil
}

// Validate enforces the two submission rules checked before any insert.
func (p *Purchase) Validate() error {
	if p.State != "" && !p.IsInsurance && p.VehicleInsurance == "" && p.InsuranceProvider == "" {
		return types.ErrMissingInsurance
	}
	if strings.Contains(p.VehicleType, types.TRAILER) && p.SaleBill == "" {
		return types.ErrMissingSaleBill
	}
	return nil
}

func NewPurchase(d types.PurchaseDetails, paypalPaymentID string) *Purchase {
	return &Purchase{
		PurchaseType:            d.PurchaseType,
		Vin:                     d.Vin,
		Color:                   d.Color,
		Email:                   d.Email,
		State:                   d.State,
		Name:                    d.Name,
		LastName:                d.LastName,
		Address:                 d.Address,
		City:                    d.City,
		HouseType:               d.HouseType,
		Zip:                     d.Zip,
		Phone:                   d.Phone,
		DriverLicense:           d.DriverLicense,
		Details:                 d.Details,
		PaypalPaymentID:         paypalPaymentID,
		HasFee:                  d.HasFee,
		IsInsurance:             d.IsInsurance,
		Total:                   float64(d.Total),
		OptionSelectedPlate:     d.OptionSelectedPlate,
		OptionSelectedInsurance: d.OptionSelectedInsurance,
		InsurancePrice:          float64(d.InsurancePrice),
		InsuranceProvider:       d.InsuranceProvider,
		VehicleInsurance:        d.VehicleInsurance,
		Image:                   d.Image,
		VehicleType:             d.VehicleType,
		SaleBill:                d.SaleBill,
	}
}
