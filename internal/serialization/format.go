// Package serialization implements the binary checkpoint format for graph
// node state: a magic/version header followed by each persistent node's
// fields in a fixed order, little-endian, with length-prefixed strings.
package serialization

// Format constants.
const (
	MagicBytes = "LTCK"

	// ModelVersion1 is the original layout. TraceNode state ends after the
	// formatting options block.
	ModelVersion1 = 1

	// ModelVersion2 adds the onlyUpToRow/onlyUpToT bounds to TraceNode
	// state. Readers must tolerate version 1 files lacking them.
	ModelVersion2 = 2

	// CurrentModelVersion is written by this release.
	CurrentModelVersion = ModelVersion2

	// MinModelVersion is the oldest layout this release can read.
	MinModelVersion = ModelVersion1

	// MaxStringLen bounds length-prefixed strings; anything larger is
	// treated as a corrupt stream rather than allocated.
	MaxStringLen = 1 << 20
)
