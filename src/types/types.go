package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

// Amount is a monetary value that clients send either as a JSON number or as
// a numeric string. Empty strings and null decode to zero.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ErrInvalidAmount
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}

type Handler func(payload string)

type JobStatus string

const (
	JOB_PENDING JobStatus = "pending"
	JOB_DONE    JobStatus = "done"
	JOB_FAILED  JobStatus = "failed"
	JOB_EXPIRED JobStatus = "expired"
)

const (
	PURCHASE_TYPE_PLATE = "plate"
	CAPTURE_COMPLETED   = "COMPLETED"
	TRAILER             = "Trailer"
)

// PurchaseDetails is the purchase payload shared by /createPurchase and
// /capture-order.
type PurchaseDetails struct {
	PurchaseType            string `json:"purchaseType"`
	Vin                     string `json:"vin"`
	Color                   string `json:"color"`
	Email                   string `json:"email"`
	State                   string `json:"state"`
	Name                    string `json:"name"`
	LastName                string `json:"lastName"`
	Address                 string `json:"address"`
	City                    string `json:"city"`
	HouseType               string `json:"houseType"`
	Zip                     string `json:"zip"`
	Phone                   string `json:"phone"`
	DriverLicense           string `json:"driverLicense"`
	Details                 string `json:"details"`
	HasFee                  bool   `json:"hasFee"`
	IsInsurance             bool   `json:"isInsurance"`
	Total                   Amount `json:"total"`
	OptionSelectedPlate     string `json:"optionSelectedPlate"`
	OptionSelectedInsurance string `json:"optionSelectedInsurance"`
	InsurancePrice          Amount `json:"insurancePrice"`
	InsuranceProvider       string `json:"insuranceProvider"`
	VehicleInsurance        string `json:"vehicleInsurance"`
	Image                   string `json:"image"`
	VehicleType             string `json:"vehicleType"`
	SaleBill                string `json:"saleBill"`
}

type CreatePurchaseRequestBody struct {
	PurchaseDetails
	PaypalPaymentID string `json:"paypalPaymentId"`
}

type UpdatePurchaseRequestBody struct {
	PurchaseID      string `json:"purchaseID" binding:"required"`
	PaypalPaymentID string `json:"paypalPaymentId"`
	From            string `json:"pFrom"`
}

type CreateOrderRequestBody struct {
	Amount   json.Number `json:"amount" binding:"required,amount"`
	Currency string      `json:"currency" binding:"required,iso4217"` // upper-case code, sent to PayPal as is
}

type CaptureOrderRequestBody struct {
	OrderID string `json:"orderId" binding:"required"`
	PurchaseDetails
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenRequestBody struct {
	Token string `json:"token"`
}

type DeleteCodeRequestBody struct {
	ID string `json:"id" binding:"required"`
}

type UpdateCodeRequestBody struct {
	ID   string         `json:"id" binding:"required"`
	Data map[string]any `json:"data"`
}

type CreatePlateCodeRequestBody struct {
	TagName             string `json:"tagName"`
	Status              string `json:"status"`
	TagIssueDate        string `json:"tagIssueDate"`
	TagExpirationDate   string `json:"tagExpirationDate"`
	PurchasedOrLeased   string `json:"purchasedOrLeased"`
	CustomerType        string `json:"customerType"`
	TransferPlate       string `json:"transferPlate"`
	Vin                 string `json:"vin"`
	VehicleYear         string `json:"vehicleYear"`
	VehicleMake         string `json:"vehicleMake"`
	VehicleModel        string `json:"vehicleModel"`
	VehicleBodyStyle    string `json:"vehicleBodyStyle"`
	TagType             string `json:"tagType"`
	VehicleColor        string `json:"vehicleColor"`
	VehicleGVW          string `json:"vehicleGVW"`
	DealerLicenseNumber string `json:"dealerLicenseNumber"`
	DealerName          string `json:"dealerName"`
	DealerAddress       string `json:"dealerAddress"`
	DealerPhone         string `json:"dealerPhone"`
	DealerType          string `json:"dealerType"`
	State               string `json:"state"`
	InsuranceProvider   string `json:"insuranceProvider"`
	IsInsurance         bool   `json:"isInsurance"`
	AgentName           string `json:"agentName"`
	PolicyNumber        string `json:"policyNumber"`
	NameOwner           string `json:"nameOwner"`
	Address             string `json:"address"`
	IsTexas             bool   `json:"isTexas"`

	EffectiveTimestamp string `json:"effectiveTimestamp"`
	VerificationCode   string `json:"verificationCode"`
	CreateTimestamp    string `json:"createTimestamp"`
	EndTimestamp       string `json:"endTimestamp"`
	StatusCode         string `json:"statusCode"`
	DealerGDN          string `json:"dealerGDN"`
	DealerDBA          string `json:"dealerDBA"`
}

type PlateCodeURIParams struct {
	TagName string `uri:"tagName" binding:"required"`
}

type PurchaseURIParams struct {
	ID string `uri:"id" binding:"required"`
}
