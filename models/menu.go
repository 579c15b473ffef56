package models

import "time"

// Flavor is a named variant of a menu item carrying its own absolute price.
// When a customer picks an available flavor, its price replaces the item's
// base/size price entirely.
type Flavor struct {
	Name      string `json:"name" bson:"name"`
	Price     Cents  `json:"price" bson:"price"`
	Available bool   `json:"available" bson:"available"`
}

// MenuItem is one entry of the `menu` collection.
type MenuItem struct {
	MenuID      string           `json:"menuId" bson:"menuid"`
	CategoryID  string           `json:"categoryId" bson:"categoryid"`
	Name        string           `json:"name" bson:"name"`
	Description string           `json:"description,omitempty" bson:"description,omitempty"`
	Price       Cents            `json:"price" bson:"price"`
	Sizes       map[string]Cents `json:"sizes,omitempty" bson:"sizes,omitempty"`
	Flavors     []Flavor         `json:"flavors,omitempty" bson:"flavors,omitempty"`
	Borders     map[string]Cents `json:"borders,omitempty" bson:"borders,omitempty"`
	Extras      map[string]Cents `json:"extras,omitempty" bson:"extras,omitempty"`
	Available   bool             `json:"available" bson:"available"`
	Photo       string           `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// Category is one entry of the `categories` collection. Order is the
// persisted drag-reorder index the storefront sorts by.
type Category struct {
	CategoryID string    `json:"categoryId" bson:"categoryid"`
	Name       string    `json:"name" bson:"name"`
	Order      int       `json:"order" bson:"order"`
	Active     bool      `json:"active" bson:"active"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}
