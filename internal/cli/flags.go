package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// quantityValue is a pflag.Value for man-months and monthly rates. It
// accepts the same notation the tool prints: "1,200,000", "￥900,000",
// "1.5人月".
type quantityValue float64

var quantityNoise = strings.NewReplacer(",", "", "￥", "", "¥", "", "人月", "", " ", "")

func (q *quantityValue) Set(s string) error {
	v, err := strconv.ParseFloat(quantityNoise.Replace(strings.TrimSpace(s)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("not a number: %q", s)
	}
	*q = quantityValue(v)
	return nil
}

func (q *quantityValue) String() string {
	return strconv.FormatFloat(float64(*q), 'f', -1, 64)
}

func (q *quantityValue) Type() string {
	return "number"
}
