// Package fibonacci implements the exact int64 arithmetic engine of the
// device: an O(n) linear accumulator and an O(log n) fast-doubling recursion.
//
// Both functions use the convention F(0)=0, F(1)=1, F(2)=1 and are exact for
// every n in [0, MaxIndex]. Neither checks its argument: indices above
// MaxIndex silently overflow, so callers obtain the range guarantee from the
// device cursor, not from this package.
package fibonacci

// Func computes the n-th Fibonacci term.
type Func func(n int64) int64

// XorSwap exchanges *x and *y with three XOR assignments.
// x and y must not alias.
func XorSwap(x, y *int64) {
	*x ^= *y
	*y ^= *x
	*x ^= *y
}

// Linear computes F(n) by iterative accumulation over a three-slot window.
// For n <= 1 it returns n.
func Linear(n int64) int64 {
	if n <= 1 {
		if n < 0 {
			return 0
		}
		return n
	}
	var f [3]int64
	f[0], f[1] = 0, 1
	for i := int64(2); i <= n; i++ {
		f[2] = f[0] + f[1]
		// (f0, f1) := (f1, f2)
		XorSwap(&f[0], &f[1])
		f[1] = f[2]
	}
	return f[2]
}

// FastDoubling computes F(n) with the doubling identities
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k+1)² + F(k)²
//
// The recursion re-derives F(k) and F(k+1) at every level without
// memoization, so the number of calls grows faster than log n; for
// n <= MaxIndex this stays in the low thousands.
func FastDoubling(n int64) int64 {
	switch {
	case n <= 0:
		return 0
	case n <= 2:
		return 1
	}
	if n&1 == 1 {
		k := (n - 1) / 2
		return FastDoubling(k+1)*FastDoubling(k+1) + FastDoubling(k)*FastDoubling(k)
	}
	k := n / 2
	return FastDoubling(k) * (2*FastDoubling(k+1) - FastDoubling(k))
}

// FastDoublingPair computes F(n) with the same identities, evaluating the
// pair (F(k), F(k+1)) once per level. It performs exactly bits.Len(n)
// recursive steps and returns the same value as FastDoubling.
func FastDoublingPair(n int64) int64 {
	if n <= 0 {
		return 0
	}
	fk, _ := doublingPair(n)
	return fk
}

// doublingPair returns (F(n), F(n+1)).
func doublingPair(n int64) (int64, int64) {
	if n == 0 {
		return 0, 1
	}
	a, b := doublingPair(n / 2)
	c := a * (2*b - a) // F(2k)
	d := a*a + b*b     // F(2k+1)
	if n&1 == 0 {
		return c, d
	}
	return d, c + d
}
