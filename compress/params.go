package compress

import (
	"fmt"

	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
)

// Admissible engine parameter ranges, matching zlib's deflateInit2.
const (
	MinWindowBits = 8
	MaxWindowBits = 15
	MinLevel      = 0
	MaxLevel      = 9
	MinMemLevel   = 1
	MaxMemLevel   = 9

	// DefaultMemLevel is zlib's default memory level.
	DefaultMemLevel = 8
)

// DeflateParams are the tunable settings of one deflate trial.
type DeflateParams struct {
	WindowBits int
	Level      int
	MemLevel   int
	Strategy   format.DeflateStrategy
}

// DefaultDeflateParams returns zlib's maximum-compression settings.
func DefaultDeflateParams() DeflateParams {
	return DeflateParams{
		WindowBits: MaxWindowBits,
		Level:      MaxLevel,
		MemLevel:   DefaultMemLevel,
		Strategy:   format.DeflateDefault,
	}
}

// Validate checks every parameter against its admissible range.
func (p DeflateParams) Validate() error {
	switch {
	case p.WindowBits < MinWindowBits || p.WindowBits > MaxWindowBits:
		return errs.NewConfigError("windowBits", p.WindowBits, errs.ErrValueOutOfRange)
	case p.Level < MinLevel || p.Level > MaxLevel:
		return errs.NewConfigError("level", p.Level, errs.ErrValueOutOfRange)
	case p.MemLevel < MinMemLevel || p.MemLevel > MaxMemLevel:
		return errs.NewConfigError("memLevel", p.MemLevel, errs.ErrValueOutOfRange)
	case !p.Strategy.IsValid():
		return errs.NewConfigError("strategy", int(p.Strategy), errs.ErrValueOutOfRange)
	}

	return nil
}

func (p DeflateParams) String() string {
	return fmt.Sprintf("windowBits=%d level=%d memLevel=%d strategy=%d", p.WindowBits, p.Level, p.MemLevel, p.Strategy)
}
