// Package dialect provides the type catalogs of the storage backends
// umlgen can generate entities for.
//
// A catalog answers two questions for the extractor: is a primitive type
// available in the backend, and which validations may be attached to a
// field of that type.
//
// # Supported Backends
//
// Each backend is identified by a constant string:
//
//	dialect.SQL       = "sql"        // relational
//	dialect.MongoDB   = "mongodb"    // document store
//	dialect.Cassandra = "cassandra"  // wide-column
//
// # Usage
//
//	catalog, err := dialect.Open(dialect.SQL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	catalog.SupportsType("LocalDate")                   // true
//	catalog.IsValidationSupported("String", "pattern")  // true
//	catalog.IsValidationSupported("Boolean", "min")     // false
//
// Any other backend identifier is a configuration error.
package dialect
