// Package model holds the GORM entities of the ledger and their wire
// representations. Foreign keys are not enforced by the store; the
// service layer checks referenced rows before writing.
package model

// All returns every entity in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{}, &Auth{},
		&Category{}, &Product{}, &Supplier{}, &Stock{},
		&Client{}, &Sale{}, &SaleItem{},
	}
}
