package calc

import (
	"fmt"

	"github.com/mamaar/gocalc/pkg/types"
)

// Add returns a + b.
func Add(a, b int) int {
	return a + b
}

// Divide returns a / b, or a DivisionByZero error when b is zero.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, &types.CalcError{
			Type:    types.DivisionByZero,
			Op:      "divide",
			Input:   fmt.Sprintf("%g / %g", a, b),
			Message: "division by zero",
		}
	}
	return a / b, nil
}

// Average returns the arithmetic mean of numbers, or an EmptyInput error
// when there are none.
func Average(numbers []float64) (float64, error) {
	if len(numbers) == 0 {
		return 0, &types.CalcError{
			Type:    types.EmptyInput,
			Op:      "average",
			Message: "cannot average an empty sequence",
		}
	}

	var total float64
	for _, n := range numbers {
		total += n
	}
	return total / float64(len(numbers)), nil
}

// FormatMoney renders amount as "USD " followed by the value with exactly
// two fractional digits.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("USD %.2f", amount)
}
