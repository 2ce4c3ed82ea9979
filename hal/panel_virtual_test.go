package hal

import "testing"

func TestVirtualPanelWrites(t *testing.T) {
	p := NewVirtualPanel(PanelConfig{Width: 4, Height: 2, Chain: 2})
	if p.Width() != 8 || p.Height() != 2 {
		t.Fatalf("expected 8x2, got %dx%d", p.Width(), p.Height())
	}
	if !p.Begin() {
		t.Fatalf("expected begin to succeed")
	}
	p.DrawPixelRGB888(7, 1, 1, 2, 3)
	p.DrawPixelRGB888(8, 0, 9, 9, 9)
	if r, g, b := p.At(7, 1); r != 1 || g != 2 || b != 3 {
		t.Fatalf("expected 1,2,3 got %d,%d,%d", r, g, b)
	}
	if got := p.Writes(); got != 2 {
		t.Fatalf("expected 2 writes, got %d", got)
	}
	p.ClearScreen()
	if r, g, b := p.At(7, 1); r|g|b != 0 {
		t.Fatalf("expected cleared LED")
	}
}

func TestVirtualDriverFailBegin(t *testing.T) {
	d := &VirtualDriver{FailBegin: true}
	p, err := d.OpenPanel(PanelConfig{Width: 2, Height: 2, Chain: 1})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if p.Begin() {
		t.Fatalf("expected begin to fail")
	}
	if d.Opens() != 1 || d.Panel() == nil {
		t.Fatalf("expected driver to track the opened panel")
	}
}
