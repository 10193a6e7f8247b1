package lang

import "strings"

// preprocess implements §4.4's shape-pattern disambiguation: inside a
// `shape(` call's second argument, a pure-digit 4-character run (ex:
// "5242") is indistinguishable from a 4-digit integer literal (ex:
// "1500" in `cccc(north) >= 1500`). This scans for `shape(` and marks
// any such run — other than one immediately following the keyword
// "any" — with an internal sentinel the lexer recognises
// ([shapeSentinel]). Wildcard patterns (containing 'x'/'X') and
// any-prefixed patterns are left alone; they are not lexically
// ambiguous with an integer.
func preprocess(src string) string {
	var out strings.Builder
	i := 0
	for i < len(src) {
		atWordStart := i == 0 || !isIdentCont(src[i-1])
		if atWordStart && strings.HasPrefix(src[i:], "shape") {
			j := i + len("shape")
			boundary := j >= len(src) || !isIdentCont(src[j])
			for j < len(src) && (src[j] == ' ' || src[j] == '\t') {
				j++
			}
			if boundary && j < len(src) && src[j] == '(' {
				out.WriteString(src[i : j+1])
				i = preprocessShapeArgs(src, j+1, &out)
				continue
			}
		}
		out.WriteByte(src[i])
		i++
	}
	return out.String()
}

// preprocessShapeArgs scans from just after `shape(`'s opening paren to
// its matching close, marking bare 4-digit runs (outside the seat
// argument, i.e. after the first comma) that are not preceded by the
// keyword "any". Returns the index just past the matching ')'.
func preprocessShapeArgs(src string, i int, out *strings.Builder) int {
	depth := 1
	lastWord := ""
	afterComma := false
	for i < len(src) && depth > 0 {
		b := src[i]
		switch {
		case b == '(':
			depth++
			out.WriteByte(b)
			i++
		case b == ')':
			depth--
			out.WriteByte(b)
			i++
		case isDigit(b) && depth == 1:
			start := i
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			run := src[start:i]
			if len(run) == 4 && afterComma && lastWord != "any" {
				out.WriteString(shapeSentinel)
			}
			out.WriteString(run)
			lastWord = ""
		case isIdentStart(b):
			start := i
			for i < len(src) && isIdentCont(src[i]) {
				i++
			}
			lastWord = src[start:i]
			out.WriteString(lastWord)
		default:
			if b != ' ' && b != '\t' {
				lastWord = ""
			}
			if b == ',' && depth == 1 {
				afterComma = true
			}
			out.WriteByte(b)
			i++
		}
	}
	return i
}
