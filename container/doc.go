// Package container parses PNG files into records and pixel data, and rebuilds them
// around a new compressed pixel stream.
//
// Parser validates the record structure (signature, IHDR first, IEND last and
// empty, at least one IDAT), decodes the header and inflates the concatenated IDAT
// payloads. Rebuild writes the signature and every record back, replacing the IDAT
// run with the new payload split into records of bounded size.
//
// When the image header changed (for example after dropping an opaque alpha
// channel), Rebuild re-emits IHDR and translates the ancillary records whose
// payload depends on the color type (tRNS, bKGD, sBIT, PLTE, hIST). Every other
// record is copied byte-for-byte.
package container
