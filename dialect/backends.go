package dialect

// RelationalCatalog is the type catalog of the relational (SQL) backend.
type RelationalCatalog struct{ types typeTable }

// Relational returns the SQL catalog.
func Relational() *RelationalCatalog {
	return &RelationalCatalog{types: typeTable{
		"String":        stringRules,
		"Integer":       numericRules,
		"Long":          numericRules,
		"BigDecimal":    numericRules,
		"Float":         numericRules,
		"Double":        numericRules,
		EnumType:        plainRules,
		"Boolean":       plainRules,
		"LocalDate":     plainRules,
		"ZonedDateTime": plainRules,
		"Blob":          blobRules,
		"AnyBlob":       blobRules,
		"ImageBlob":     blobRules,
		"TextBlob":      plainRules,
	}}
}

// Name implements Catalog.
func (*RelationalCatalog) Name() string { return SQL }

// SupportsType implements Catalog.
func (c *RelationalCatalog) SupportsType(name string) bool { return c.types.supports(name) }

// ValidationsFor implements Catalog.
func (c *RelationalCatalog) ValidationsFor(name string) []string { return c.types.validations(name) }

// IsValidationSupported implements Catalog.
func (c *RelationalCatalog) IsValidationSupported(name, validation string) bool {
	return c.types.allows(name, validation)
}

// DocumentCatalog is the type catalog of the document (MongoDB) backend.
type DocumentCatalog struct{ types typeTable }

// Document returns the MongoDB catalog.
func Document() *DocumentCatalog {
	return &DocumentCatalog{types: typeTable{
		"String":        stringRules,
		"Integer":       numericRules,
		"Long":          numericRules,
		"BigDecimal":    numericRules,
		"Float":         numericRules,
		"Double":        numericRules,
		EnumType:        plainRules,
		"Boolean":       plainRules,
		"LocalDate":     plainRules,
		"ZonedDateTime": plainRules,
		"Blob":          blobRules,
		"AnyBlob":       blobRules,
		"ImageBlob":     blobRules,
		"TextBlob":      plainRules,
	}}
}

// Name implements Catalog.
func (*DocumentCatalog) Name() string { return MongoDB }

// SupportsType implements Catalog.
func (c *DocumentCatalog) SupportsType(name string) bool { return c.types.supports(name) }

// ValidationsFor implements Catalog.
func (c *DocumentCatalog) ValidationsFor(name string) []string { return c.types.validations(name) }

// IsValidationSupported implements Catalog.
func (c *DocumentCatalog) IsValidationSupported(name, validation string) bool {
	return c.types.allows(name, validation)
}

// ColumnarCatalog is the type catalog of the wide-column (Cassandra) backend.
// It has no enumerations and uses Date instead of the java.time types.
type ColumnarCatalog struct{ types typeTable }

// Columnar returns the Cassandra catalog.
func Columnar() *ColumnarCatalog {
	return &ColumnarCatalog{types: typeTable{
		"UUID":       plainRules,
		"String":     stringRules,
		"Integer":    numericRules,
		"Long":       numericRules,
		"BigDecimal": numericRules,
		"Float":      numericRules,
		"Double":     numericRules,
		"Boolean":    plainRules,
		"Date":       plainRules,
		"Blob":       blobRules,
		"AnyBlob":    blobRules,
		"ImageBlob":  blobRules,
	}}
}

// Name implements Catalog.
func (*ColumnarCatalog) Name() string { return Cassandra }

// SupportsType implements Catalog.
func (c *ColumnarCatalog) SupportsType(name string) bool { return c.types.supports(name) }

// ValidationsFor implements Catalog.
func (c *ColumnarCatalog) ValidationsFor(name string) []string { return c.types.validations(name) }

// IsValidationSupported implements Catalog.
func (c *ColumnarCatalog) IsValidationSupported(name, validation string) bool {
	return c.types.allows(name, validation)
}

var (
	_ Catalog = (*RelationalCatalog)(nil)
	_ Catalog = (*DocumentCatalog)(nil)
	_ Catalog = (*ColumnarCatalog)(nil)
)
