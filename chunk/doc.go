// Package chunk implements the PNG record codec.
//
// A PNG file is an 8-byte signature followed by records ("chunks"):
//
//	+--------+------+------------------+-------+
//	| length | type | payload          | crc   |
//	| 4 (BE) | 4    | length bytes     | 4 (BE)|
//	+--------+------+------------------+-------+
//
// The CRC is CRC-32 (IEEE) over the type and payload, not the length. Records
// decodes a buffer into Record values one at a time, and Append frames a payload
// back into the same layout with a freshly computed checksum. Records obtained from
// a source buffer keep their original framed bytes so that AppendRecord can copy
// them verbatim, checksum included.
package chunk
