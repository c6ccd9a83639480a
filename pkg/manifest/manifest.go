// Package manifest renders member sets into the package.xml descriptor shape.
package manifest

import (
	"bytes"

	"github.com/beevik/etree"

	"github.com/deployfox/sfdelta/pkg/metadata"
)

// Namespace is the metadata API XML namespace.
const Namespace = "http://soap.sforce.com/2006/04/metadata"

// File names emitted by the materializer.
const (
	PackageFile     = "package.xml"
	DestructiveFile = "destructiveChanges.xml"
)

// Render serializes a member set into the fixed package descriptor XML.
// Types and members come out sorted, so output is byte-stable for a given
// set. An empty set yields a valid descriptor holding only the version.
func Render(set metadata.MemberSet, apiVersion string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	pkg := doc.CreateElement("Package")
	pkg.CreateAttr("xmlns", Namespace)

	for _, typeName := range set.TypeNames() {
		types := pkg.CreateElement("types")
		for _, member := range set.Members(typeName) {
			types.CreateElement("members").SetText(member)
		}
		types.CreateElement("name").SetText(typeName)
	}
	pkg.CreateElement("version").SetText(apiVersion)

	doc.Indent(4)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, err
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}
