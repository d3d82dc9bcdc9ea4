package token

import "testing"

func TestIsKeywordConstant(t *testing.T) {
	for _, raw := range []string{"true", "false", "null", "this"} {
		if !IsKeywordConstant(raw) {
			t.Errorf("IsKeywordConstant(%q) = false, want true", raw)
		}
	}
	if IsKeywordConstant("while") {
		t.Error("IsKeywordConstant(\"while\") = true, want false")
	}
}

func TestIsBinaryOp(t *testing.T) {
	for _, raw := range []string{"+", "-", "*", "/", "&", "|", "<", ">", "="} {
		if !IsBinaryOp(raw) {
			t.Errorf("IsBinaryOp(%q) = false, want true", raw)
		}
	}
	if IsBinaryOp("~") {
		t.Error("IsBinaryOp(\"~\") = true, want false")
	}
}

func TestIsUnaryOp(t *testing.T) {
	if !IsUnaryOp("-") || !IsUnaryOp("~") {
		t.Error("expected '-' and '~' to be unary operators")
	}
	if IsUnaryOp("+") {
		t.Error("IsUnaryOp(\"+\") = true, want false")
	}
}
