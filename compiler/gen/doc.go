// Package gen turns the model extracted from an XMI document into entity
// descriptors and the order the entities must be created in.
//
// # Architecture
//
// The pipeline follows this flow:
//
//	load.Model (classes, fields, associations)
//	        ↓
//	   DeriveRelationships (cardinality, owner and mirror sides)
//	        ↓
//	   Assemble (one Entity per class)
//	        ↓
//	   Schedule (creation order)
//	        ↓
//	   Graph
//	        ↓
//	   DescriptorWriter / GoGenerator
//
// NewGraph runs the first three stages. Any error aborts the build and no
// partial graph is returned.
//
// # Key Types
//
//   - Graph: Entities in creation order with the config they were built with
//   - Entity: Descriptor of one class, with its aggregate flags
//   - Field: Regular field with its type, enum values and validations
//   - Relationship: One side of an association registered on an entity
//   - Cardinality: OneToOne, OneToMany, ManyToOne, ManyToMany, Reflexive
//   - Edge: Dependency between two classes, input of Schedule
//
// # Relationships
//
// Every injected field yields two relationships: the owner side on the
// declaring class and the mirror side on the target class. The cardinality
// follows from the collection flags of the two association ends:
//
//	near   far    cardinality
//	true   true   many-to-many
//	true   false  one-to-many
//	false  true   one-to-many
//	false  false  one-to-one
//
// The mirror of a one-to-many is a many-to-one. A reflexive association
// only registers the owner side.
//
// # Creation Order
//
// Schedule places a class once none of its open edges blocks it. One-to-one,
// many-to-one and many-to-many edges block their source, one-to-many edges
// block their destination, reflexive edges never block. A pass that closes
// no edge fails with a CircularDependencyError listing the open edges.
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithBackend("mongodb"),
//	    gen.WithTarget("./descriptors"),
//	    gen.WithFormat("yaml"),
//	)
//	graph, err := gen.NewGraph(config, model)
//
// Go models are written when a package is set:
//
//	config, err := gen.NewConfig(
//	    gen.WithPackage("model"),
//	    gen.WithFeatures(gen.FeatureValidator),
//	)
//
// # Error Handling
//
// Model errors (broken references, dangling associations, cycles,
// unsupported types and validations) are declared in the umlgen package.
// This package adds:
//
//   - SchemaError: Invalid entity or field names
//   - ConfigError: Invalid options
//   - GenerationError: Failures while writing files
//
// # Generated Output
//
//	{target}/
//	├── {Entity}.json       // One descriptor per entity (json, yaml or msgpack)
//	├── order.json          // Creation order, generation id and backend
//	└── {package}/
//	    ├── {entity}.go     // Go model struct
//	    └── enums.go        // Enumerations used by the models
package gen
