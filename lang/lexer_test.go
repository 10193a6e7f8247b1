package lang

import "testing"

func lexText(t *testing.T, src string) []token {
	t.Helper()
	toks, err := lexAll(src)
	if err != nil {
		t.Fatalf("lexAll(%q): unexpected error: %v", src, err)
	}
	return toks
}

func TestLexBasicTokens(t *testing.T) {
	toks := lexText(t, "hcp(north) >= 20 && true")
	kinds := []tokenKind{tokIdent, tokLParen, tokIdent, tokRParen, tokGe, tokInt, tokAndAnd, tokIdent, tokEOF}
	if len(toks) != len(kinds) {
		t.Fatalf("len(toks) = %d, want %d (%v)", len(toks), len(kinds), toks)
	}
	for i, k := range kinds {
		if toks[i].kindV != k {
			t.Errorf("toks[%d].kindV = %v, want %v", i, toks[i].kindV, k)
		}
	}
}

func TestLexCardLiteral(t *testing.T) {
	toks := lexText(t, "AS ks Td 2c")
	for i, want := range []string{"AS", "ks", "Td", "2c"} {
		if toks[i].kindV != tokCard || toks[i].text != want {
			t.Errorf("toks[%d] = %+v, want card %q", i, toks[i], want)
		}
	}
}

func TestLexWildcardShapeRun(t *testing.T) {
	toks := lexText(t, "5x2x")
	if len(toks) != 2 || toks[0].kindV != tokSentinelShape || toks[0].text != "5x2x" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestLexComments(t *testing.T) {
	toks := lexText(t, "1 # line comment\n+ /* block\ncomment */ 2")
	kinds := []tokenKind{tokInt, tokPlus, tokInt, tokEOF}
	if len(toks) != len(kinds) {
		t.Fatalf("len(toks) = %d, want %d (%v)", len(toks), len(kinds), toks)
	}
}

func TestLexString(t *testing.T) {
	toks := lexText(t, `"combined"`)
	if len(toks) != 2 || toks[0].kindV != tokString || toks[0].text != "combined" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestLexUnexpectedChar(t *testing.T) {
	if _, err := lexAll("@"); err == nil {
		t.Fatalf("expected error lexing '@'")
	}
}
