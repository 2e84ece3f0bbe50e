package container

import (
	"github.com/arloliu/pngmin/chunk"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/section"
)

// Rebuild writes a PNG file from the records of a parsed file and a new compressed
// pixel stream.
//
// The first IDAT record is replaced by payload split into records of at most
// maxRecordPayloadSize bytes (0 means chunk.MaxLength); later IDAT records are
// dropped. If header differs from the parsed IHDR, IHDR is re-emitted and
// color-dependent ancillary records are translated. All other records, IEND
// included, are copied byte-for-byte.
//
// Returns:
//   - []byte: The rebuilt file
//   - error: ConfigError wrapping ErrInvalidChunkSize, or FormatError if records
//     do not start with a valid IHDR
func Rebuild(records []chunk.Record, header section.Header, payload []byte, maxRecordPayloadSize int) ([]byte, error) {
	if maxRecordPayloadSize < 0 || maxRecordPayloadSize > chunk.MaxLength {
		return nil, errs.NewConfigError("maxRecordPayloadSize", maxRecordPayloadSize, errs.ErrInvalidChunkSize)
	}
	if maxRecordPayloadSize == 0 {
		maxRecordPayloadSize = chunk.MaxLength
	}

	if len(records) == 0 || records[0].Type != chunk.TypeIHDR {
		return nil, errs.NewFormatError(errs.NoOffset, errs.ErrMissingHeader)
	}

	original, err := section.ParseHeader(records[0].Data)
	if err != nil {
		return nil, err
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}
	changed := original != header

	size := chunk.SignatureSize + len(payload) + (len(payload)/maxRecordPayloadSize+1)*chunk.Overhead
	for _, rec := range records {
		if rec.Type != chunk.TypeIDAT {
			size += chunk.Overhead + rec.Length()
		}
	}

	out := make([]byte, 0, size)
	out = append(out, chunk.Signature[:]...)

	wrotePixels := false
	for _, rec := range records {
		switch {
		case rec.Type == chunk.TypeIDAT:
			if !wrotePixels {
				out = appendPixelData(out, payload, maxRecordPayloadSize)
				wrotePixels = true
			}
		case rec.Type == chunk.TypeIHDR && changed:
			out = chunk.Append(out, chunk.TypeIHDR, header.Bytes())
		case changed:
			out = adaptRecord(out, rec, original, header)
		default:
			out = chunk.AppendRecord(out, rec)
		}
	}

	return out, nil
}

// appendPixelData frames payload as consecutive IDAT records of at most maxSize bytes.
func appendPixelData(dst, payload []byte, maxSize int) []byte {
	if len(payload) == 0 {
		return chunk.Append(dst, chunk.TypeIDAT, nil)
	}

	for start := 0; start < len(payload); {
		end := min(start+maxSize, len(payload))
		dst = chunk.Append(dst, chunk.TypeIDAT, payload[start:end])
		start = end
	}

	return dst
}
