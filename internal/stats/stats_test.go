package stats

import "testing"

func TestPoolClamping(t *testing.T) {
	p := Pool{Cur: 8, Max: 10}

	if got := p.Add(5); got != 2 {
		t.Errorf("Add(5) = %d, want 2", got)
	}
	if p.Cur != 10 {
		t.Errorf("Cur = %d, want 10", p.Cur)
	}

	if got := p.Sub(25); got != 10 {
		t.Errorf("Sub(25) = %d, want 10", got)
	}
	if p.Cur != 0 {
		t.Errorf("Cur = %d, want 0", p.Cur)
	}

	if got := p.Add(-3); got != 0 {
		t.Errorf("Add(-3) = %d, want 0", got)
	}
}

func TestPoolSetMax(t *testing.T) {
	p := Full(20)
	p.SetMax(12)
	if p.Cur != 12 || p.Max != 12 {
		t.Errorf("SetMax(12) = %+v, want {12 12}", p)
	}
	p.SetMax(30)
	if p.Cur != 12 || p.Max != 30 {
		t.Errorf("SetMax(30) = %+v, want {12 30}", p)
	}
}

func TestAttributesArithmetic(t *testing.T) {
	a := Attributes{Str: 6, Dex: 4, Int: 3, End: 7, Vit: 7, Wis: 3}
	d := Attributes{Str: -2, Dex: -2}

	got := a.Add(d)
	if got.Str != 4 || got.Dex != 2 || got.End != 7 {
		t.Errorf("Add() = %+v", got)
	}
	if back := got.Sub(d); back != a {
		t.Errorf("Sub() did not restore original: %+v", back)
	}
	if !a.Meets(Attributes{Str: 2, Dex: 2}) {
		t.Error("Meets() should accept lower requirements")
	}
	if a.Meets(Attributes{Dex: 5}) {
		t.Error("Meets() should reject higher requirements")
	}
}

func TestParseAttr(t *testing.T) {
	for _, attr := range AllAttrs {
		got, err := ParseAttr(attr.String())
		if err != nil || got != attr {
			t.Errorf("ParseAttr(%q) = %v, %v", attr.String(), got, err)
		}
	}
	if _, err := ParseAttr("luck"); err == nil {
		t.Error("ParseAttr(luck) should fail")
	}
}
