package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is the buying side of a sale, with optional credit terms.
type Client struct {
	ID                 uint                `gorm:"primaryKey"`
	Name               string              `gorm:"type:varchar(255);not null"`
	ContactPhone       *string             `gorm:"type:varchar(20)"`
	ContactEmail       *string             `gorm:"type:varchar(120)"`
	Address            *string             `gorm:"type:text"`
	IsCreditClient     bool                `gorm:"not null;default:false"`
	CreditLimit        decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	CurrentMonthStatus *string             `gorm:"type:varchar(50)"` // PAID, PENDING

	Sales []Sale `gorm:"foreignKey:ClientID"`
}

type Sale struct {
	ID              uint                `gorm:"primaryKey"`
	ClientID        uint                `gorm:"not null;index"`
	UserID          uint                `gorm:"not null;index"` // Salesperson
	SaleDate        time.Time           `gorm:"autoCreateTime"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	DiscountApplied decimal.NullDecimal `gorm:"type:decimal(4,2)"`
	PaymentMethod   string              `gorm:"type:varchar(50);not null"`

	Client      *Client    `gorm:"foreignKey:ClientID"`
	Salesperson *User      `gorm:"foreignKey:UserID"`
	Items       []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem has a composite primary key: at most one line per (sale, stock).
type SaleItem struct {
	SaleID          uint            `gorm:"primaryKey;autoIncrement:false"`
	StockID         uint            `gorm:"primaryKey;autoIncrement:false;index"`
	QuantitySold    int             `gorm:"not null"`
	UnitPriceAtSale decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Stock *Stock `gorm:"foreignKey:StockID"`
}

type ClientResponse struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	ContactPhone       *string `json:"contact_phone"`
	ContactEmail       *string `json:"contact_email"`
	Address            *string `json:"address"`
	IsCreditClient     bool    `json:"is_credit_client"`
	CreditLimit        *string `json:"credit_limit"`
	CurrentMonthStatus *string `json:"current_month_status"`
}

type SaleItemResponse struct {
	SaleID          uint    `json:"sale_id"`
	StockID         uint    `json:"stock_id"`
	ProductName     *string `json:"product_name"`
	QuantitySold    int     `json:"quantity_sold"`
	UnitPriceAtSale string  `json:"unit_price_at_sale"`
	Subtotal        string  `json:"subtotal"`
}

type SaleResponse struct {
	ID              uint               `json:"id"`
	ClientID        uint               `json:"client_id"`
	ClientName      *string            `json:"client_name"`
	UserID          uint               `json:"user_id"`
	SalespersonName *string            `json:"salesperson_name"`
	SaleDate        *string            `json:"sale_date"`
	TotalAmount     string             `json:"total_amount"`
	DiscountApplied *string            `json:"discount_applied"`
	PaymentMethod   string             `json:"payment_method"`
	Items           []SaleItemResponse `json:"items"`
}

func (c *Client) ToResponse() ClientResponse {
	return ClientResponse{
		ID:                 c.ID,
		Name:               c.Name,
		ContactPhone:       c.ContactPhone,
		ContactEmail:       c.ContactEmail,
		Address:            c.Address,
		IsCreditClient:     c.IsCreditClient,
		CreditLimit:        formatNullMoney(c.CreditLimit),
		CurrentMonthStatus: c.CurrentMonthStatus,
	}
}

// Subtotal is unit price times quantity sold.
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPriceAtSale.Mul(decimal.NewFromInt(int64(i.QuantitySold)))
}

func (i *SaleItem) ToResponse() SaleItemResponse {
	resp := SaleItemResponse{
		SaleID:          i.SaleID,
		StockID:         i.StockID,
		QuantitySold:    i.QuantitySold,
		UnitPriceAtSale: formatMoney(i.UnitPriceAtSale),
		Subtotal:        formatMoney(i.Subtotal()),
	}
	if i.Stock != nil && i.Stock.Product != nil {
		name := i.Stock.Product.Name
		resp.ProductName = &name
	}
	return resp
}

func (s *Sale) ToResponse() SaleResponse {
	resp := SaleResponse{
		ID:              s.ID,
		ClientID:        s.ClientID,
		UserID:          s.UserID,
		SaleDate:        formatTimestamp(s.SaleDate),
		TotalAmount:     formatMoney(s.TotalAmount),
		DiscountApplied: formatNullMoney(s.DiscountApplied),
		PaymentMethod:   s.PaymentMethod,
		Items:           make([]SaleItemResponse, 0, len(s.Items)),
	}
	if s.Client != nil {
		name := s.Client.Name
		resp.ClientName = &name
	}
	if s.Salesperson != nil {
		// salesperson_name falls back to the username when no full name is set
		name := s.Salesperson.Username
		if s.Salesperson.FullName != nil && *s.Salesperson.FullName != "" {
			name = *s.Salesperson.FullName
		}
		resp.SalespersonName = &name
	}
	for i := range s.Items {
		resp.Items = append(resp.Items, s.Items[i].ToResponse())
	}
	return resp
}
