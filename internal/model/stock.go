package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID             uint                `gorm:"primaryKey"`
	Name           string              `gorm:"type:varchar(255);not null"`
	ContactPerson  *string             `gorm:"type:varchar(255)"`
	Phone          *string             `gorm:"type:varchar(20)"`
	Email          *string             `gorm:"type:varchar(120)"`
	Address        *string             `gorm:"type:text"`
	AdditionalFees decimal.NullDecimal `gorm:"type:decimal(10,2)"`

	Stocks []Stock `gorm:"foreignKey:SupplierID"`
}

// Stock is one batch/lot of a product received from a supplier.
type Stock struct {
	ID                uint                `gorm:"primaryKey"`
	ProductID         uint                `gorm:"not null;index"`
	SupplierID        uint                `gorm:"not null;index"`
	Location          *string             `gorm:"type:varchar(255)"`
	Quantity          int                 `gorm:"not null"`
	CostPrice         decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	SellingPrice      decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	DepositedByUserID *uint               `gorm:"index"`
	DepositedAt       time.Time           `gorm:"autoCreateTime"`
	ExpirationDate    *time.Time          `gorm:"type:date"`

	// Relasi, used only for display fields
	Product   *Product  `gorm:"foreignKey:ProductID"`
	Supplier  *Supplier `gorm:"foreignKey:SupplierID"`
	Depositor *User     `gorm:"foreignKey:DepositedByUserID"`
}

type SupplierResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	ContactPerson  *string `json:"contact_person"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	Address        *string `json:"address"`
	AdditionalFees *string `json:"additional_fees"`
}

// StockResponse is the wire form of a Stock entry. product_name,
// supplier_name and depositor_username are derived at read time.
type StockResponse struct {
	ID                uint    `json:"id"`
	ProductID         uint    `json:"product_id"`
	SupplierID        uint    `json:"supplier_id"`
	Location          *string `json:"location"`
	Quantity          int     `json:"quantity"`
	CostPrice         *string `json:"cost_price"`
	SellingPrice      string  `json:"selling_price"`
	DepositedByUserID *uint   `json:"deposited_by_user_id"`
	DepositedAt       *string `json:"deposited_at"`
	ExpirationDate    *string `json:"expiration_date"`
	ProductName       *string `json:"product_name"`
	SupplierName      *string `json:"supplier_name"`
	DepositorUsername *string `json:"depositor_username"`
}

func (s *Supplier) ToResponse() SupplierResponse {
	return SupplierResponse{
		ID:             s.ID,
		Name:           s.Name,
		ContactPerson:  s.ContactPerson,
		Phone:          s.Phone,
		Email:          s.Email,
		Address:        s.Address,
		AdditionalFees: formatNullMoney(s.AdditionalFees),
	}
}

func (s *Stock) ToResponse() StockResponse {
	resp := StockResponse{
		ID:                s.ID,
		ProductID:         s.ProductID,
		SupplierID:        s.SupplierID,
		Location:          s.Location,
		Quantity:          s.Quantity,
		CostPrice:         formatNullMoney(s.CostPrice),
		SellingPrice:      formatMoney(s.SellingPrice),
		DepositedByUserID: s.DepositedByUserID,
		DepositedAt:       formatTimestamp(s.DepositedAt),
		ExpirationDate:    formatDate(s.ExpirationDate),
	}
	if s.Product != nil {
		resp.ProductName = &s.Product.Name
	}
	if s.Supplier != nil {
		resp.SupplierName = &s.Supplier.Name
	}
	if s.Depositor != nil {
		resp.DepositorUsername = &s.Depositor.Username
	}
	return resp
}
