package hexfmt

import "testing"

func TestDumpRegistersFormatsAndPadsEachWord(t *testing.T) {
	got := DumpRegisters([]uint32{0xDEADBEEF, 0x00000001})
	want := "DEADBEEF 00000001"
	if got != want {
		t.Errorf("got %q expected %q", got, want)
	}
}

func TestDumpRegistersEmpty(t *testing.T) {
	got := DumpRegisters(nil)
	if got != "" {
		t.Errorf("got %q expected empty string", got)
	}
}

func TestDumpRegistersTrimsTrailingSpace(t *testing.T) {
	got := DumpRegisters([]uint32{0, 0})
	want := "00000000 00000000"
	if got != want {
		t.Errorf("got %q expected %q", got, want)
	}
}
