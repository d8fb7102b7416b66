package domain

import "encoding/json"

// Collection is a curated marketing grouping of products. It is not part of
// the category hierarchy; a product belongs to a collection when its tags
// contain the collection slug.
type Collection struct {
	ID          string `json:"id,omitempty" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	IsActive    bool   `json:"isActive"`
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	type plain Collection
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
