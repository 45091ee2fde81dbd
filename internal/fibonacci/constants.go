package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Range Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MaxIndex is the largest index whose term fits a signed 64-bit integer.
	// F(92) = 7540113804746346429; F(93) overflows int64.
	MaxIndex = 92

	// MaxTerm is F(MaxIndex).
	MaxTerm int64 = 7_540_113_804_746_346_429

	// MaxDecimalDigits is the number of decimal digits of MaxTerm.
	MaxDecimalDigits = 19
)
