// Package sertype is the runtime bridge between the generated per-type
// streamers in package cdr/gen and a pub-sub middleware: one opaque
// sertype per topic type exposing serialize/deserialize/get_size/
// compute_key_hash/free_sample, the allowable-encoding set a writer may
// pick from, and the loaned-buffer handoff used for shared-memory
// transports.
package sertype

import "github.com/nebuladds/xcdr-core/pkg/xtypes"

// TopicTypeTraits describes the static, type-level facts a sertype needs
// to pick an encoding and frame a payload without inspecting a sample:
// its name, whether it carries a key, whether its Max size is finite
// (self-contained), its top-level extensibility, and which CDR versions
// it may legally be sent as.
type TopicTypeTraits struct {
	TypeName           string
	Keyless            bool
	SelfContained      bool
	Extensibility      xtypes.Extensibility
	AllowableEncodings xtypes.AllowableEncodings
}

// RequiresDelimitedFraming reports whether the top-level extensibility
// forces a DHEADER/EMHEADER wrapper under XCDR2 (spec §4.C: appendable
// and mutable types both get delimited framing, final types never do).
func (t TopicTypeTraits) RequiresDelimitedFraming() bool {
	return t.Extensibility != xtypes.Final
}
