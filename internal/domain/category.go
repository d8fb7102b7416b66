package domain

import "encoding/json"

// Category is the top level of the catalog hierarchy.
type Category struct {
	ID          string `json:"id,omitempty" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	SortOrder   int    `json:"sortOrder"`
	IsActive    bool   `json:"isActive"`
}

// Subcategory belongs to exactly one Category through CategorySlug.
type Subcategory struct {
	ID           string `json:"id,omitempty" validate:"required"`
	CategorySlug string `json:"categorySlug" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Slug         string `json:"slug" validate:"required"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
	SortOrder    int    `json:"sortOrder"`
	IsActive     bool   `json:"isActive"`
}

// UnmarshalJSON accepts both "id" and the document-store style "_id".
func (c *Category) UnmarshalJSON(data []byte) error {
	type plain Category
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = aux.MongoID
	}
	return nil
}

func (s *Subcategory) UnmarshalJSON(data []byte) error {
	type plain Subcategory
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if s.ID == "" {
		s.ID = aux.MongoID
	}
	return nil
}
