package entity

type Banner struct {
	Base
	Name     string `db:"name"`
	ImageURL string `db:"image_url"`
}
