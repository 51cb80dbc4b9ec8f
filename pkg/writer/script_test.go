package writer

import (
	"strings"
	"testing"
)

func TestWriteScriptEmitsBannerAndExternLines(t *testing.T) {
	sets := []LinkSetView{
		{
			Name: "Application",
			Members: []ObjectView{
				{DisplayName: "A.o", Exports: []string{"main"}},
				{DisplayName: "libx.a[b.o]", Exports: []string{"foo"}},
			},
		},
		{
			Name:    "Optional",
			Members: nil,
		},
	}

	var buf strings.Builder
	if err := WriteScript(&buf, sets, false); err != nil {
		t.Fatalf("WriteScript: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Application", "EXTERN( main )", "EXTERN( foo )", "Optional"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q, got:\n%s", want, out)
		}
	}
}

func TestWriteScriptOptionalOnlySkipsApplication(t *testing.T) {
	sets := []LinkSetView{
		{Name: "Application", Members: []ObjectView{{DisplayName: "A.o", Exports: []string{"main"}}}},
		{Name: "Optional", Members: []ObjectView{{DisplayName: "b.o", Exports: []string{"foo"}}}},
	}

	var buf strings.Builder
	if err := WriteScript(&buf, sets, true); err != nil {
		t.Fatalf("WriteScript: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "EXTERN( main )") {
		t.Fatalf("optionalOnly output should not include Application's symbols:\n%s", out)
	}
	if !strings.Contains(out, "EXTERN( foo )") {
		t.Fatalf("output missing Optional's symbols:\n%s", out)
	}
}

func TestWriteScriptPreservesMembershipOrder(t *testing.T) {
	sets := []LinkSetView{
		{
			Name: "Optional",
			Members: []ObjectView{
				{DisplayName: "z.o"},
				{DisplayName: "a.o"},
				{DisplayName: "m.o"},
			},
		},
	}

	var buf strings.Builder
	if err := WriteScript(&buf, sets, false); err != nil {
		t.Fatalf("WriteScript: %v", err)
	}

	out := buf.String()
	zIdx := strings.Index(out, "z.o")
	aIdx := strings.Index(out, "a.o")
	mIdx := strings.Index(out, "m.o")
	if !(zIdx < aIdx && aIdx < mIdx) {
		t.Fatalf("members were not emitted in membership order: z=%d a=%d m=%d", zIdx, aIdx, mIdx)
	}
}
