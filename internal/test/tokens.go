package test

import (
	"math/rand"
	"strings"
)

const (
	validNames     = "a;b;c;w;x;z;width;height;únicódeShouldBeVàlid;x1;42"
	validOperators = "+;-"
)

// GetRandomTokens returns size tokens drawn from names and operators with no
// regard for balance, so the stream may or may not build.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := append(strings.Split(validNames, ";"), strings.Split(validOperators, ";")...)

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomExpression returns a well-formed postfix stream with the given
// number of operands (at least one).
func GetRandomExpression(operands int) string {
	names := strings.Split(validNames, ";")
	ops := strings.Split(validOperators, ";")

	var toks []string
	for depth, left := 0, operands; left > 0 || depth > 1; {
		if depth < 2 || (left > 0 && rand.Intn(2) == 0) {
			toks = append(toks, names[rand.Intn(len(names))])
			depth++
			left--

			continue
		}

		toks = append(toks, ops[rand.Intn(len(ops))])
		depth--
	}

	return strings.Join(toks, " ")
}

// Names returns the variable names the generators draw from.
func Names() []string {
	return strings.Split(validNames, ";")
}
