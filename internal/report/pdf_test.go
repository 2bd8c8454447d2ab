package report

import (
	"bytes"
	"testing"
	"time"
)

func TestPDFBackend_Measure(t *testing.T) {
	b := newPDFBackend()
	short := b.Measure("mg", 10)
	long := b.Measure("milligrams per decilitre", 10)
	if short <= 0 {
		t.Fatalf("Measure returned %v for non-empty text", short)
	}
	if long <= short {
		t.Errorf("longer text measured narrower: %v <= %v", long, short)
	}
	if big := b.Measure("mg", 20); big <= short {
		t.Errorf("larger size measured narrower: %v <= %v", big, short)
	}
}

func TestComposePDF(t *testing.T) {
	out, err := ComposePDF(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", out[:min(len(out), 8)])
	}
}

// Byte determinism depends on more than the pinned dates: fpdf orders its
// font objects by map iteration unless catalog sorting is on, so a single
// re-render can miss a divergence. Render repeatedly to make any ordering
// instability show up.
func TestComposePDF_Deterministic(t *testing.T) {
	r := Report{
		ID:           9,
		PatientName:  "John Smith",
		ReportDate:   time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		ActualResult: "pH  7.4  7.35-7.45  Normal",
	}
	first, err := ComposePDF(r)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		again, err := ComposePDF(r)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("render %d diverged from the first (%d vs %d bytes)", i+1, len(again), len(first))
		}
	}
}
