package util

import "golang.org/x/exp/constraints"

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Max[A constraints.Ordered](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

// Clamp pins v into [lo, hi].
func Clamp[A constraints.Ordered](v A, lo A, hi A) A {
	return Min(Max(v, lo), hi)
}
