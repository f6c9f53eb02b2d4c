package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// LibraryXMI is a GenMyModel export with three classes: Author owns a
// one-to-many association to Book, Tag stands alone.
const LibraryXMI = `<?xml version="1.0" encoding="UTF-8"?>
<xmi:XMI xmi:version="2.0" xmlns:xmi="http://www.omg.org/XMI" xmlns:uml="http://www.eclipse.org/uml2/4.0.0/UML">
  <xmi:Documentation exporter="GenMyModel" exporterVersion="0.1"/>
  <uml:Model xmi:id="model" name="library">
    <packagedElement xmi:type="uml:Class" xmi:id="class_author" name="Author">
      <ownedAttribute xmi:id="author_name" name="name" type="type_string"/>
      <ownedAttribute xmi:id="author_books" name="books" type="class_book" association="assoc_author_books">
        <upperValue xmi:type="uml:LiteralUnlimitedNatural" xmi:id="uv_books" value="*"/>
      </ownedAttribute>
      <ownedRule xmi:type="uml:Constraint" xmi:id="rule_required" name="Required" constrainedElement="author_name"/>
    </packagedElement>
    <packagedElement xmi:type="uml:Class" xmi:id="class_book" name="Book">
      <ownedAttribute xmi:id="book_title" name="title" type="type_string"/>
    </packagedElement>
    <packagedElement xmi:type="uml:Association" xmi:id="assoc_author_books" memberEnd="author_books assoc_writer">
      <ownedEnd xmi:id="assoc_writer" name="writer" type="class_author" association="assoc_author_books"/>
    </packagedElement>
    <packagedElement xmi:type="uml:Class" xmi:id="class_tag" name="Tag"/>
    <packagedElement xmi:type="uml:PrimitiveType" xmi:id="type_string" name="String"/>
  </uml:Model>
</xmi:XMI>
`

// CycleXMI is a UML Designer export whose two classes own a one-to-one
// association to each other, which cannot be scheduled.
const CycleXMI = `<?xml version="1.0" encoding="UTF-8"?>
<uml:Model xmi:version="20131001" xmlns:xmi="http://www.omg.org/spec/XMI/20131001" xmlns:uml="http://www.eclipse.org/uml2/5.0.0/UML" xmi:id="model" name="cycle">
  <packagedElement xmi:type="uml:Class" xmi:id="a" name="A">
    <ownedAttribute xmi:id="a_b" name="b" type="b" association="assoc_a_b"/>
  </packagedElement>
  <packagedElement xmi:type="uml:Class" xmi:id="b" name="B">
    <ownedAttribute xmi:id="b_a" name="a" type="a" association="assoc_b_a"/>
  </packagedElement>
  <packagedElement xmi:type="uml:Association" xmi:id="assoc_a_b" memberEnd="a_b end_a">
    <ownedEnd xmi:id="end_a" name="owner" type="a" association="assoc_a_b"/>
  </packagedElement>
  <packagedElement xmi:type="uml:Association" xmi:id="assoc_b_a" memberEnd="b_a end_b">
    <ownedEnd xmi:id="end_b" name="partner" type="b" association="assoc_b_a"/>
  </packagedElement>
</uml:Model>
`

// WriteFile writes content to name under dir and returns its path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
