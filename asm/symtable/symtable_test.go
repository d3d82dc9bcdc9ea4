package symtable

import "testing"

func TestPredefinedSymbols(t *testing.T) {
	st := New()
	cases := map[string]int{
		"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
		"R0": 0, "R15": 15, "SCREEN": 16384, "KBD": 24576,
	}
	for name, want := range cases {
		got, ok := st.Lookup(name)
		if !ok || got != want {
			t.Errorf("Lookup(%q) = (%d, %v), want (%d, true)", name, got, ok, want)
		}
	}
}

func TestDefineLabelRejectsRedefinition(t *testing.T) {
	st := New()
	if err := st.DefineLabel("LOOP", 10); err != nil {
		t.Fatalf("unexpected error on first definition: %v", err)
	}
	if err := st.DefineLabel("LOOP", 20); err == nil {
		t.Fatal("expected an error redefining an existing label")
	}
	if err := st.DefineLabel("SP", 5); err == nil {
		t.Fatal("expected an error redefining a predefined symbol")
	}
}

func TestAllocateVariableMonotonic(t *testing.T) {
	st := New()
	first := st.AllocateVariable("i")
	second := st.AllocateVariable("j")
	third := st.AllocateVariable("k")

	if first != 16 || second != 17 || third != 18 {
		t.Errorf("got %d, %d, %d; want 16, 17, 18", first, second, third)
	}

	// repeated allocation of the same name returns the same address
	if again := st.AllocateVariable("i"); again != first {
		t.Errorf("AllocateVariable(\"i\") second call = %d, want %d", again, first)
	}
}

func TestAllocateVariableHonorsEarlierLabels(t *testing.T) {
	st := New()
	if err := st.DefineLabel("LOOP", 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr := st.AllocateVariable("i"); addr != 16 {
		t.Errorf("AllocateVariable(\"i\") = %d, want 16", addr)
	}
	if addr, ok := st.Lookup("LOOP"); !ok || addr != 100 {
		t.Errorf("Lookup(\"LOOP\") = (%d, %v), want (100, true)", addr, ok)
	}
}
