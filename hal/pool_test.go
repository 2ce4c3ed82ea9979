package hal

import "testing"

func TestBudgetPool(t *testing.T) {
	p := NewBudgetPool("psram", 100)
	if !p.Reserve(60) {
		t.Fatalf("expected first reserve to succeed")
	}
	if p.Reserve(41) {
		t.Fatalf("expected reserve past budget to fail")
	}
	if !p.Reserve(40) {
		t.Fatalf("expected exact fit to succeed")
	}
	p.Release(100)
	if got := p.Used(); got != 0 {
		t.Fatalf("expected 0 used, got %d", got)
	}
	if p.Reserve(-1) {
		t.Fatalf("expected negative reserve to fail")
	}
}

func TestBudgetPoolUnlimited(t *testing.T) {
	p := NewBudgetPool("heap", -1)
	if !p.Reserve(1 << 30) {
		t.Fatalf("expected unlimited pool to accept any size")
	}
}
