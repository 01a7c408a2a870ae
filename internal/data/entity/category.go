package entity

type Category struct {
	Base
	Name     string `db:"name"`
	ImageURL string `db:"image_url"`
}
