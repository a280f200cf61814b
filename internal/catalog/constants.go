package catalog

// Facet dimensions
const (
	FacetCollection = "collection"
	FacetModel      = "model"
	FacetBackdrop   = "backdrop"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Catalog loaded"
)

// Error messages
const (
	ErrMsgDuplicateItemFmt = "duplicate item id %q"
	ErrMsgItemPriceFmt     = "item %q: price must be positive"
	ErrMsgReadCatalogFmt   = "read catalog %s: %w"
	ErrMsgParseCatalogFmt  = "parse catalog %s: %w"
)
