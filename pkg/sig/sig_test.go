package sig

import (
	"testing"

	"sexprgen/pkg/diag"
	"sexprgen/pkg/emit"
	"sexprgen/pkg/token"
)

func lex(src string) []token.Token {
	var out []token.Token
	field := []rune{}
	flush := func() {
		if len(field) == 0 {
			return
		}
		out = append(out, token.Token{Kind: token.KindSymbol, Contents: string(field)})
		field = field[:0]
	}
	for _, r := range src {
		switch r {
		case ' ':
			flush()
		case '(':
			flush()
			out = append(out, token.Token{Kind: token.KindOpenParen, Contents: "("})
		case ')':
			flush()
			out = append(out, token.Token{Kind: token.KindCloseParen, Contents: ")"})
		default:
			field = append(field, r)
		}
	}
	flush()
	return out
}

func joinText(records []emit.Record) string {
	s := ""
	for _, r := range records {
		s += r.Text
	}
	return s
}

func TestParseSignatureImplicitReturn(t *testing.T) {
	tokens := lex("( a int b int )")
	rep := diag.NewReporter("")
	args, returnTypeStart, ok := ParseSignature(tokens, 0, rep)
	if !ok {
		t.Fatalf("ParseSignature failed: %d warnings", rep.Warnings())
	}
	if returnTypeStart != -1 {
		t.Fatalf("returnTypeStart = %d, want -1 (implicit void)", returnTypeStart)
	}
	if len(args) != 2 {
		t.Fatalf("got %d arguments, want 2", len(args))
	}
	if tokens[args[0].NameIndex].Contents != "a" || tokens[args[0].StartTypeIndex].Contents != "int" {
		t.Errorf("first argument = %+v", args[0])
	}
	if tokens[args[1].NameIndex].Contents != "b" || tokens[args[1].StartTypeIndex].Contents != "int" {
		t.Errorf("second argument = %+v", args[1])
	}
}

func TestParseSignatureExplicitReturn(t *testing.T) {
	tokens := lex("( a int &return char )")
	rep := diag.NewReporter("")
	args, returnTypeStart, ok := ParseSignature(tokens, 0, rep)
	if !ok {
		t.Fatalf("ParseSignature failed: %d warnings", rep.Warnings())
	}
	if len(args) != 1 {
		t.Fatalf("got %d arguments, want 1", len(args))
	}
	if tokens[returnTypeStart].Contents != "char" {
		t.Fatalf("returnTypeStart = %q, want char", tokens[returnTypeStart].Contents)
	}
}

func TestParseSignatureNestedArgumentType(t *testing.T) {
	tokens := lex("( a ( * char ) )")
	rep := diag.NewReporter("")
	args, _, ok := ParseSignature(tokens, 0, rep)
	if !ok {
		t.Fatalf("ParseSignature failed: %d warnings", rep.Warnings())
	}
	if len(args) != 1 || tokens[args[0].StartTypeIndex].Kind != token.KindOpenParen {
		t.Fatalf("expected one argument whose type starts with an open paren, got %+v", args)
	}
}

func TestParseSignatureRejectsSentinelAsType(t *testing.T) {
	tokens := lex("( a :bad )")
	rep := diag.NewReporter("")
	if _, _, ok := ParseSignature(tokens, 0, rep); ok {
		t.Fatal("expected failure: sentinel symbol cannot be a type")
	}
}

func TestOutputReturnTypeImplicitIsVoid(t *testing.T) {
	tokens := lex("( a int )")
	var out emit.Output
	rep := diag.NewReporter("")
	if !OutputReturnType(tokens, &out, -1, 0, 3, true, true, rep) {
		t.Fatal("OutputReturnType failed")
	}
	if joinText(out.Source) != "void" || joinText(out.Header) != "void" {
		t.Fatalf("source=%q header=%q, want void/void", joinText(out.Source), joinText(out.Header))
	}
}

func TestOutputParametersEmitsCommaSeparatedList(t *testing.T) {
	tokens := lex("( a int b char )")
	rep := diag.NewReporter("")
	args, _, ok := ParseSignature(tokens, 0, rep)
	if !ok {
		t.Fatalf("ParseSignature failed")
	}
	var out emit.Output
	if !OutputParameters(tokens, &out, args, true, false, rep) {
		t.Fatalf("OutputParameters failed")
	}
	joined := ""
	for _, r := range out.Source {
		joined += r.Text
		if r.Modifiers&emit.ModListSeparator != 0 {
			joined += ","
		}
	}
	if joined != "inta,charb" {
		t.Fatalf("source = %q, want inta,charb (spacing is modifier-carried)", joined)
	}
	if len(out.Header) != 0 {
		t.Fatal("header output was not requested and must stay empty")
	}
}

func TestCompileTimeFunctionSignatureMatchesWildcard(t *testing.T) {
	rep := diag.NewReporter("")
	provided := lex("( foo 42 )")
	expected := lex("( 'name 42 )")
	if !CompileTimeFunctionSignatureMatches(provided, expected, rep) {
		t.Fatal("expected 'name to wildcard-match anything")
	}
}

func TestCompileTimeFunctionSignatureMatchesLiteralMismatch(t *testing.T) {
	rep := diag.NewReporter("")
	provided := lex("( foo 42 )")
	expected := lex("( bar 42 )")
	if CompileTimeFunctionSignatureMatches(provided, expected, rep) {
		t.Fatal("expected literal mismatch to fail")
	}
}

func TestCompileTimeFunctionSignatureMatchesLengthMismatch(t *testing.T) {
	rep := diag.NewReporter("")
	provided := lex("( foo )")
	expected := lex("( foo 1 2 )")
	if CompileTimeFunctionSignatureMatches(provided, expected, rep) {
		t.Fatal("expected length mismatch to fail")
	}
}
