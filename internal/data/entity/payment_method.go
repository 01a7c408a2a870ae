package entity

type PaymentMethod struct {
	Base
	Name                 string `db:"name"`
	VirtualAccountNumber string `db:"virtual_account_number"`
	VirtualAccountName   string `db:"virtual_account_name"`
	ImageURL             string `db:"image_url"`
	IsActive             bool   `db:"is_active"`
}
