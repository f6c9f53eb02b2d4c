package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// GoGenerator renders the entities of a graph as Go model structs, one file
// per entity plus a file holding the enumerations.
type GoGenerator struct {
	graph   *Graph
	workers int
	outDir  string
	pkg     string
	header  string
}

// NewGoGenerator creates a generator for g. The package and the output
// directory are taken from the config of g.
func NewGoGenerator(g *Graph) *GoGenerator {
	out := g.Output()
	workers := g.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &GoGenerator{
		graph:   g,
		workers: workers,
		outDir:  out.GoTarget,
		pkg:     out.Package,
		header:  out.Header,
	}
}

// WithWorkers sets the number of parallel workers.
func (g *GoGenerator) WithWorkers(n int) *GoGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Generate writes the Go files.
func (g *GoGenerator) Generate(ctx context.Context) error {
	if g.pkg == "" {
		return NewConfigError("Package", nil, "no package set for Go models")
	}
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return NewGenerationError("model", g.outDir, "create output directory", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for _, e := range g.graph.Nodes {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				f, err := g.GenEntity(e)
				if err != nil {
					return err
				}
				return g.writeFile(f, fileName(e.Name)+".go")
			}
		})
	}
	if enums := g.GenEnums(); enums != nil {
		eg.Go(func() error {
			return g.writeFile(enums, "enums.go")
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	g.graph.logger().Info("go models written", "dir", g.outDir, "package", g.pkg, "entities", len(g.graph.Nodes))
	return nil
}

// GenEntity returns the file declaring the struct of e. It fails if a
// validation of e has no check the Validate method can express.
func (g *GoGenerator) GenEntity(e *Entity) (*jen.File, error) {
	f := g.newFile()
	name := pascal(e.Name)
	if e.Javadoc != "" {
		f.Comment(name + " " + e.Javadoc)
	} else {
		f.Commentf("%s is the model of the %s entity.", name, e.Name)
	}
	f.Type().Id(name).StructFunc(func(grp *jen.Group) {
		grp.Id("ID").Int64().Tag(map[string]string{"json": "id,omitempty"})
		for _, fd := range e.Fields {
			code := grp.Id(pascal(fd.FieldName)).Add(g.goType(fd)).Tag(map[string]string{
				"json": fd.FieldName + ",omitempty",
			})
			if fd.Javadoc != "" {
				code.Comment(fd.Javadoc)
			}
		}
		for _, r := range e.Relationships {
			grp.Id(pascal(r.RelationshipName)).Add(g.relationType(r)).Tag(map[string]string{
				"json": r.RelationshipFieldName + ",omitempty",
			})
		}
	})

	f.Line()
	f.Commentf("%sChangelogDate is the changelog date of the %s entity.", name, e.Name)
	f.Const().Id(name + "ChangelogDate").Op("=").Lit(e.ChangelogDate)

	if g.graph.HasFeature(FeatureValidator.Name) && e.Validation {
		f.Line()
		if err := g.genValidate(f, e); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// GenEnums returns the file declaring every enumeration used by a field,
// nil if there is none.
func (g *GoGenerator) GenEnums() *jen.File {
	enums := make(map[string][]string)
	for _, e := range g.graph.Nodes {
		for _, fd := range e.Fields {
			if fd.FieldIsEnum {
				enums[fd.FieldType] = fd.FieldValues
			}
		}
	}
	if len(enums) == 0 {
		return nil
	}
	f := g.newFile()
	names := make([]string, 0, len(enums))
	for name := range enums {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		typ := pascal(name)
		f.Commentf("%s is an enumeration of the model.", typ)
		f.Type().Id(typ).String()
		f.Line()
		f.Commentf("Values of %s.", typ)
		f.Const().DefsFunc(func(grp *jen.Group) {
			for _, v := range enums[name] {
				grp.Id(typ + pascal(strings.ToLower(v))).Id(typ).Op("=").Lit(v)
			}
		})
		f.Line()
		f.Commentf("Values returns the values of %s.", typ)
		f.Func().Params(jen.Id(typ)).Id("Values").Params().Index().String().Block(
			jen.Return(jen.Index().String().ValuesFunc(func(grp *jen.Group) {
				for _, v := range enums[name] {
					grp.Lit(v)
				}
			})),
		)
		f.Line()
	}
	return f
}

// genValidate adds a Validate method checking the field validations.
func (g *GoGenerator) genValidate(f *jen.File, e *Entity) error {
	name := pascal(e.Name)
	recv := strings.ToLower(name[:1])
	var checks []jen.Code
	for _, fd := range e.Fields {
		if !fd.FieldValidate {
			continue
		}
		for _, rule := range fd.FieldValidateRules {
			check, err := g.fieldCheck(recv, e, fd, rule)
			if err != nil {
				return err
			}
			checks = append(checks, check)
		}
	}
	checks = append(checks, jen.Return(jen.Nil()))
	f.Commentf("Validate checks the field validations of %s.", name)
	f.Func().Params(jen.Id(recv).Op("*").Id(name)).Id("Validate").Params().Error().Block(checks...)
	return nil
}

// fieldCheck returns the statement checking one validation of a field.
func (g *GoGenerator) fieldCheck(recv string, e *Entity, fd *Field, rule string) (jen.Code, error) {
	field := func() *jen.Statement { return jen.Id(recv).Dot(pascal(fd.FieldName)) }
	fail := func(format string, args ...any) jen.Code {
		msg := fmt.Sprintf("%s.%s: ", e.Name, fd.FieldName) + fmt.Sprintf(format, args...)
		return jen.Return(jen.Qual("errors", "New").Call(jen.Lit(msg)))
	}
	unsupported := func(reason string) (jen.Code, error) {
		return nil, NewGenerationError("model", fileName(e.Name)+".go",
			fmt.Sprintf("validation %q of field %s.%s (%s): %s", rule, e.Name, fd.FieldName, fd.FieldType, reason), nil)
	}
	v, _ := fd.Validation(rule)

	switch kind := g.kind(fd); {
	case rule == "required":
		switch kind {
		case kindString, kindBytes:
			return jen.If(jen.Len(field()).Op("==").Lit(0)).Block(fail("required")), nil
		case kindTime:
			return jen.If(field().Dot("IsZero").Call()).Block(fail("required")), nil
		case kindDecimal:
			return jen.If(field().Op("==").Nil()).Block(fail("required")), nil
		case kindNumber:
			return jen.If(field().Op("==").Lit(0)).Block(fail("required")), nil
		case kindBool:
			return jen.If(jen.Op("!").Add(field())).Block(fail("required")), nil
		case kindUUID:
			return jen.If(field().Op("==").Qual("github.com/google/uuid", "Nil")).Block(fail("required")), nil
		}
	case rule == "minlength" || rule == "maxlength" || rule == "minbytes" || rule == "maxbytes":
		if kind != kindString && kind != kindBytes {
			break
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return unsupported("length is not an integer")
		}
		if strings.HasPrefix(rule, "min") {
			return jen.If(jen.Len(field()).Op("<").Lit(n)).Block(fail("shorter than %s", v)), nil
		}
		return jen.If(jen.Len(field()).Op(">").Lit(n)).Block(fail("longer than %s", v)), nil
	case rule == "min" || rule == "max":
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return unsupported("bound is not a number")
		}
		op, msg := "<", "less than %s"
		if rule == "max" {
			op, msg = ">", "greater than %s"
		}
		switch kind {
		case kindNumber:
			return jen.If(jen.Float64().Call(field()).Op(op).Lit(n)).Block(fail(msg, v)), nil
		case kindDecimal:
			cmp := field().Dot("Cmp").Call(jen.Qual("math/big", "NewFloat").Call(jen.Lit(n)))
			return jen.If(field().Op("!=").Nil().Op("&&").Add(cmp).Op(op).Lit(0)).Block(fail(msg, v)), nil
		}
	case rule == "pattern":
		if kind != kindString || fd.FieldIsEnum {
			break
		}
		if _, err := regexp.Compile(v); err != nil {
			return unsupported("invalid pattern")
		}
		return jen.If(jen.Op("!").Qual("regexp", "MustCompile").Call(jen.Lit(v)).Dot("MatchString").Call(field())).
			Block(fail("does not match %s", v)), nil
	}
	return unsupported("no check for this type")
}

// valueKind groups field types by the Go checks they support.
type valueKind int

const (
	kindOther valueKind = iota
	kindString
	kindBytes
	kindTime
	kindNumber
	kindDecimal
	kindBool
	kindUUID
)

func (g *GoGenerator) kind(fd *Field) valueKind {
	if fd.FieldIsEnum {
		return kindString
	}
	switch fd.FieldType {
	case "String", "TextBlob":
		return kindString
	case "Blob", "AnyBlob", "ImageBlob":
		return kindBytes
	case "Integer", "Long", "Float", "Double":
		return kindNumber
	case "BigDecimal":
		return kindDecimal
	case "Boolean":
		return kindBool
	case "UUID":
		return kindUUID
	}
	if fd.IsTime() {
		return kindTime
	}
	return kindOther
}

// goType returns the Go type of a field.
func (g *GoGenerator) goType(fd *Field) jen.Code {
	if fd.FieldIsEnum {
		return jen.Id(pascal(fd.FieldType))
	}
	switch fd.FieldType {
	case "String", "TextBlob":
		return jen.String()
	case "Integer":
		return jen.Int32()
	case "Long":
		return jen.Int64()
	case "Float":
		return jen.Float32()
	case "Double":
		return jen.Float64()
	case "BigDecimal":
		return jen.Op("*").Qual("math/big", "Float")
	case "Boolean":
		return jen.Bool()
	case "LocalDate", "ZonedDateTime", "Date":
		return jen.Qual("time", "Time")
	case "UUID":
		return jen.Qual("github.com/google/uuid", "UUID")
	case "Blob", "AnyBlob", "ImageBlob":
		return jen.Index().Byte()
	default:
		return jen.Any()
	}
}

// relationType returns the Go type of a relationship: a pointer for to-one
// sides and a slice of pointers for to-many sides.
func (g *GoGenerator) relationType(r *Relationship) jen.Code {
	other := jen.Op("*").Id(pascal(r.OtherEntityNameCapitalized))
	if r.ToMany() {
		return jen.Index().Add(other)
	}
	return other
}

// writeFile renders f, formats it with goimports and writes it.
func (g *GoGenerator) writeFile(f *jen.File, name string) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError("model", name, "render", err)
	}
	path := filepath.Join(g.outDir, name)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output next to the target for debugging.
		_ = os.WriteFile(path+".error", buf.Bytes(), 0o644)
		return NewGenerationError("model", name, "format", err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return NewGenerationError("model", name, "write", err)
	}
	return nil
}

// newFile creates a new Jennifer file with the header comment.
func (g *GoGenerator) newFile() *jen.File {
	f := jen.NewFile(g.pkg)
	if g.header != "" {
		f.HeaderComment(g.header)
	}
	return f
}
