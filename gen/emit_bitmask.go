package gen

import (
	"strings"

	"github.com/nebuladds/xcdr-core/idl"
)

type bitmaskBitData struct {
	GoName   string
	Position uint8
}

type bitmaskTemplateData struct {
	PackageName string
	GoName      string
	BitBound    int
	Bits        []bitmaskBitData
}

const bitmaskTemplate = `// Code generated by xcdrgen. DO NOT EDIT.

package {{.PackageName}}

import (
	"github.com/nebuladds/xcdr-core/cdr"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// {{.GoName}} was generated from an IDL bitmask definition: a named,
// positioned set of flags backed by its declared bit width.
type {{.GoName}} uint64

const (
{{- range .Bits}}
	{{$.GoName}}{{.GoName}} {{$.GoName}} = 1 << {{.Position}}
{{- end}}
)

// Has reports whether bit is set.
func (b {{.GoName}}) Has(bit {{.GoName}}) bool { return b&bit != 0 }

// Write serializes the bitmask onto s as a {{.BitBound}}-bit field.
func (b *{{.GoName}}) Write(s *cdr.Stream) bool {
	v := uint64(*b)
	return s.BitBound(&v, xtypes.Bits{{.BitBound}})
}

// Read deserializes the bitmask from s.
func (b *{{.GoName}}) Read(s *cdr.Stream) bool {
	var v uint64
	if !s.BitBound(&v, xtypes.Bits{{.BitBound}}) {
		return false
	}
	*b = {{.GoName}}(v)
	return true
}

// Move advances s's cursor by the bitmask's fixed encoded size.
func (b *{{.GoName}}) Move(s *cdr.Stream) bool { return b.Write(s) }

// Max advances s's cursor by the bitmask's fixed encoded size.
func (b *{{.GoName}}) Max(s *cdr.Stream) bool { return b.Write(s) }
`

func (g *Generator) emitBitmask(name string, bm idl.Bitmask) (string, error) {
	goName := GoTypeName(name)
	var bits []bitmaskBitData
	for _, bit := range bm.Bits {
		bitGoName := SanitizeIdentifier(strings.ToUpper(bit.Name[:1]) + bit.Name[1:])
		bits = append(bits, bitmaskBitData{GoName: bitGoName, Position: bit.Position})
	}
	bitBound := 32
	if bm.BitBound != 0 {
		bitBound = int(bm.BitBound)
	}
	data := bitmaskTemplateData{
		PackageName: g.opts.PackageName,
		GoName:      goName,
		BitBound:    bitBound,
		Bits:        bits,
	}
	return gofmt(mustRender(bitmaskTemplate, data))
}
