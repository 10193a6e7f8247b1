package lang

import dealer "github.com/Rick-Wilson/Dealer3"

// arity holds [min,max] argument counts for each function in §4.4's
// closed set. "shape" is parsed by a dedicated code path
// (parseShapeCall) and never arity-checked here.
var arity = buildArity()

func buildArity() map[string][2]int {
	m := map[string][2]int{
		"hcp":       {1, 1},
		"controls":  {1, 1},
		"losers":    {1, 2},
		"spades":    {1, 1},
		"hearts":    {1, 1},
		"diamonds":  {1, 1},
		"clubs":     {1, 1},
		"hascard":   {2, 2},
		"shape":     {2, 2},
		"tens":      {1, 2},
		"jacks":     {1, 2},
		"queens":    {1, 2},
		"kings":     {1, 2},
		"aces":      {1, 2},
		"top2":      {1, 2},
		"top3":      {1, 2},
		"top4":      {1, 2},
		"top5":      {1, 2},
		"c13":       {1, 2},
		"quality":   {2, 2},
		"cccc":      {1, 1},
	}
	for n := 0; n <= 9; n++ {
		m[ptName(n)] = [2]int{1, 1}
	}
	return m
}

func ptName(n int) string {
	return "pt" + string(rune('0'+n))
}

// isKnownFunction reports whether name (case-insensitive) is a member
// of §4.4's closed function set.
func isKnownFunction(name string) bool {
	_, ok := arity[lowerASCII(name)]
	return ok
}

func arityOK(name string, n int) bool {
	r, ok := arity[name]
	if !ok {
		return false
	}
	return n >= r[0] && n <= r[1]
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

// suitFuncs maps the four single-suit whole-hand-length functions to
// their suit.
var suitFuncs = map[string]dealer.Suit{
	"spades":   dealer.Spades,
	"hearts":   dealer.Hearts,
	"diamonds": dealer.Diamonds,
	"clubs":    dealer.Clubs,
}

// ptIndex maps pt0..pt9 to their [dealer.HandStats.Pt] index.
func ptIndex(name string) (int, bool) {
	if len(name) == 3 && name[:2] == "pt" && name[2] >= '0' && name[2] <= '9' {
		return int(name[2] - '0'), true
	}
	return 0, false
}

// topNIndex maps top2..top5 to their n.
func topNIndex(name string) (int, bool) {
	switch name {
	case "top2":
		return 2, true
	case "top3":
		return 3, true
	case "top4":
		return 4, true
	case "top5":
		return 5, true
	}
	return 0, false
}
