package model

// Category groups products. Name uniqueness is backed by a unique index.
type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

type Product struct {
	ID             uint    `gorm:"primaryKey"`
	Name           string  `gorm:"type:varchar(255);not null"`
	Brand          *string `gorm:"type:varchar(255)"`
	Description    *string `gorm:"type:text"`
	WarrantyMonths *int
	CategoryID     *uint `gorm:"index"`

	// Relasi
	Category *Category `gorm:"foreignKey:CategoryID"`
	Stocks   []Stock   `gorm:"foreignKey:ProductID"`
}

type CategoryResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ProductResponse carries category_name, resolved through Category at read time.
type ProductResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Brand          *string `json:"brand"`
	Description    *string `json:"description"`
	WarrantyMonths *int    `json:"warranty_months"`
	CategoryID     *uint   `json:"category_id"`
	CategoryName   *string `json:"category_name"`
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

func (p *Product) ToResponse() ProductResponse {
	resp := ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Brand:          p.Brand,
		Description:    p.Description,
		WarrantyMonths: p.WarrantyMonths,
		CategoryID:     p.CategoryID,
	}
	if p.Category != nil {
		name := p.Category.Name
		resp.CategoryName = &name
	}
	return resp
}
