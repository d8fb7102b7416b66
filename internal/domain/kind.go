package domain

// EntityKind names one of the catalog collections.
type EntityKind string

const (
	KindCategory    EntityKind = "category"
	KindSubcategory EntityKind = "subcategory"
	KindProduct     EntityKind = "product"
	KindCollection  EntityKind = "collection"
)

// Kinds lists every catalog collection in load order.
var Kinds = []EntityKind{KindCategory, KindSubcategory, KindProduct, KindCollection}

// Plural is the collection name used in routes and messages.
func (k EntityKind) Plural() string {
	switch k {
	case KindCategory:
		return "categories"
	case KindSubcategory:
		return "subcategories"
	case KindProduct:
		return "products"
	case KindCollection:
		return "collections"
	}
	return string(k) + "s"
}
