package chunk

import (
	"hash/crc32"
	"iter"

	"github.com/arloliu/pngmin/endian"
	"github.com/arloliu/pngmin/errs"
)

// Type is a 4-byte ASCII record type tag.
type Type [TypeSize]byte

func (t Type) String() string {
	return string(t[:])
}

// IsCritical reports whether decoders must understand the record (uppercase first letter).
func (t Type) IsCritical() bool {
	return t[0]&0x20 == 0
}

// Record is one framed unit of the container.
//
// Records produced by Records alias the source buffer and must not be modified.
type Record struct {
	// Type is the record type tag.
	Type Type
	// Data is the payload without framing.
	Data []byte
	// CRC is the checksum as stored in the source (or computed by New).
	CRC uint32
	// Offset is the byte offset of the length field in the source buffer, or -1.
	Offset int

	raw []byte
}

// New creates a record with a freshly computed checksum.
func New(t Type, data []byte) Record {
	return Record{
		Type:   t,
		Data:   data,
		CRC:    Checksum(t, data),
		Offset: -1,
	}
}

// Length returns the payload length.
func (r Record) Length() int {
	return len(r.Data)
}

// Valid reports whether the stored checksum matches the type and payload.
func (r Record) Valid() bool {
	return r.CRC == Checksum(r.Type, r.Data)
}

// Bytes returns the framed record.
//
// For records decoded from a buffer this is the original byte range, including the
// original checksum even if it is wrong.
func (r Record) Bytes() []byte {
	if r.raw != nil {
		return r.raw
	}

	return AppendRecord(make([]byte, 0, Overhead+len(r.Data)), r)
}

// Checksum computes the CRC-32 of a record type and payload.
func Checksum(t Type, data []byte) uint32 {
	crc := crc32.ChecksumIEEE(t[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}

// Append frames data as a record of type t and appends it to dst.
func Append(dst []byte, t Type, data []byte) []byte {
	engine := endian.GetNetworkEngine()

	dst = engine.AppendUint32(dst, uint32(len(data))) //nolint: gosec
	dst = append(dst, t[:]...)
	dst = append(dst, data...)

	return engine.AppendUint32(dst, Checksum(t, data))
}

// AppendRecord appends the framed record to dst.
//
// Decoded records are copied byte-for-byte; records created with New are framed
// with their stored checksum.
func AppendRecord(dst []byte, r Record) []byte {
	if r.raw != nil {
		return append(dst, r.raw...)
	}

	engine := endian.GetNetworkEngine()

	dst = engine.AppendUint32(dst, uint32(len(r.Data))) //nolint: gosec
	dst = append(dst, r.Type[:]...)
	dst = append(dst, r.Data...)

	return engine.AppendUint32(dst, r.CRC)
}

// Records decodes the records of buf starting at offset start.
//
// Iteration stops after the first error. Offsets reported in records and errors are
// relative to buf.
func Records(buf []byte, start int) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		engine := endian.GetNetworkEngine()

		pos := start
		for pos < len(buf) {
			if pos+Overhead > len(buf) {
				yield(Record{}, errs.NewFormatError(pos, errs.ErrIncompleteRecord))
				return
			}

			length := engine.Uint32(buf[pos : pos+LengthSize])
			if length > MaxLength {
				yield(Record{}, errs.NewFormatError(pos, errs.ErrRecordTooLong))
				return
			}

			end := pos + Overhead + int(length)
			if end > len(buf) {
				yield(Record{}, errs.NewFormatError(pos, errs.ErrIncompleteRecord))
				return
			}

			var t Type
			copy(t[:], buf[pos+LengthSize:pos+LengthSize+TypeSize])
			dataStart := pos + LengthSize + TypeSize

			rec := Record{
				Type:   t,
				Data:   buf[dataStart : end-CRCSize : end-CRCSize],
				CRC:    engine.Uint32(buf[end-CRCSize : end]),
				Offset: pos,
				raw:    buf[pos:end:end],
			}
			if !yield(rec, nil) {
				return
			}

			pos = end
		}
	}
}

// Split decodes every record of buf after the signature.
//
// The signature itself is not checked; see HasSignature.
func Split(buf []byte) ([]Record, error) {
	if len(buf) < SignatureSize {
		return nil, errs.NewFormatError(0, errs.ErrTooShort)
	}

	var records []Record
	for rec, err := range Records(buf, SignatureSize) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// HasSignature reports whether buf starts with the PNG signature.
func HasSignature(buf []byte) bool {
	return len(buf) >= SignatureSize && [SignatureSize]byte(buf[:SignatureSize]) == Signature
}
