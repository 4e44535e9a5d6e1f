package res

// Structure signatures. Each is a fixed 4-byte magic compared byte-for-byte
// against the stream.
const (
	ArchiveSignature       = "FRES"
	ShaderArchiveSignature = "BNSH"
	ModelSignature         = "FMDL"
	SkeletonSignature      = "FSKL"
	ShapeSignature         = "FSHP"
	MaterialSignature      = "FMAT"
)

const (
	// SignatureSize is the byte length of a structure signature.
	SignatureSize = 4

	// OffsetSize is the byte length of a pointer field. Pointer fields hold
	// absolute byte addresses; a stored value of 0 means "no value".
	OffsetSize = 8
)

// UserData value kinds. The kind selects how the payload behind the value
// offset is parsed.
const (
	UserDataInt32 uint8 = iota
	UserDataString
)
