package models

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Sport struct {
	ID         int    `json:"id"`
	CategoryID int    `json:"category_id"`
	Name       string `json:"name"`

	Category *Category `json:"category,omitempty"`
}
