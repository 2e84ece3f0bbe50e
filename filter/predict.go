package filter

import "github.com/arloliu/pngmin/format"

// paeth returns whichever of a (left), b (up) and c (upper-left) is closest to
// a + b - c, preferring a, then b.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}

	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// encodeRow writes the filtered form of cur into dst using filter type ft.
//
// prev is the previous canonical row (all zeros for the first row) and bpp the
// predictor distance in bytes. dst, cur and prev have equal length.
func encodeRow(dst, cur, prev []byte, ft format.FilterType, bpp int) {
	switch ft {
	case format.FilterNone:
		copy(dst, cur)
	case format.FilterSub:
		copy(dst[:bpp], cur[:bpp])
		for i := bpp; i < len(cur); i++ {
			dst[i] = cur[i] - cur[i-bpp]
		}
	case format.FilterUp:
		for i := range cur {
			dst[i] = cur[i] - prev[i]
		}
	case format.FilterAverage:
		for i := range bpp {
			dst[i] = cur[i] - prev[i]/2
		}
		for i := bpp; i < len(cur); i++ {
			dst[i] = cur[i] - byte((int(cur[i-bpp])+int(prev[i]))/2)
		}
	case format.FilterPaeth:
		for i := range bpp {
			dst[i] = cur[i] - paeth(0, prev[i], 0)
		}
		for i := bpp; i < len(cur); i++ {
			dst[i] = cur[i] - paeth(cur[i-bpp], prev[i], prev[i-bpp])
		}
	}
}

// decodeRow reverses filter type ft in place on row, given the previous recovered row.
func decodeRow(row, prev []byte, ft format.FilterType, bpp int) {
	switch ft {
	case format.FilterNone:
	case format.FilterSub:
		for i := bpp; i < len(row); i++ {
			row[i] += row[i-bpp]
		}
	case format.FilterUp:
		for i := range row {
			row[i] += prev[i]
		}
	case format.FilterAverage:
		for i := range bpp {
			row[i] += prev[i] / 2
		}
		for i := bpp; i < len(row); i++ {
			row[i] += byte((int(row[i-bpp]) + int(prev[i])) / 2)
		}
	case format.FilterPaeth:
		for i := range bpp {
			row[i] += paeth(0, prev[i], 0)
		}
		for i := bpp; i < len(row); i++ {
			row[i] += paeth(row[i-bpp], prev[i], prev[i-bpp])
		}
	}
}

// signedSum returns the sum of absolute values of row read as int8 differences.
func signedSum(row []byte) int {
	sum := 0
	for _, b := range row {
		sum += abs(int(int8(b)))
	}

	return sum
}
