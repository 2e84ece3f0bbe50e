package chunk

// Framing sizes in bytes.
const (
	SignatureSize = 8
	LengthSize    = 4
	TypeSize      = 4
	CRCSize       = 4

	// Overhead is the framing added to every payload.
	Overhead = LengthSize + TypeSize + CRCSize
	// MaxLength is the largest legal payload length.
	MaxLength = 1<<31 - 1
	// MinFileSize is the signature plus framed IHDR, IDAT and IEND records.
	MinFileSize = SignatureSize + 3*Overhead + 13
)

// Signature is the fixed 8-byte PNG file signature.
var Signature = [SignatureSize]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Well-known record types.
var (
	TypeIHDR = Type{'I', 'H', 'D', 'R'}
	TypePLTE = Type{'P', 'L', 'T', 'E'}
	TypeIDAT = Type{'I', 'D', 'A', 'T'}
	TypeIEND = Type{'I', 'E', 'N', 'D'}
	TypeTRNS = Type{'t', 'R', 'N', 'S'}
	TypeBKGD = Type{'b', 'K', 'G', 'D'}
	TypeSBIT = Type{'s', 'B', 'I', 'T'}
	TypeHIST = Type{'h', 'I', 'S', 'T'}
)
