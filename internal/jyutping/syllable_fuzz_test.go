package jyutping

import "testing"

// FuzzParseSyllable checks that parsing never panics and that a successful
// parse is stable when re-parsed from its rendered form.
func FuzzParseSyllable(f *testing.F) {
	f.Add("loi4")
	f.Add("cyun4")
	f.Add("m4")
	f.Add("ngaa1")
	f.Add("")
	f.Add("123")
	f.Add("來4")

	f.Fuzz(func(t *testing.T, input string) {
		syl, err := ParseSyllable(input)
		if err != nil {
			return
		}
		if syl.Final == "" || syl.Tone < 1 || syl.Tone > 9 {
			t.Fatalf("ParseSyllable(%q) = %+v", input, syl)
		}
		again, err := ParseSyllable(syl.String())
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v", syl.String(), err)
		}
		if again != syl {
			t.Fatalf("re-parse of %q = %+v, want %+v", syl.String(), again, syl)
		}
	})
}

func BenchmarkParseSyllable(b *testing.B) {
	inputs := []string{"loi4", "cyun4", "gwong1", "m4"}
	for b.Loop() {
		for _, s := range inputs {
			_, _ = ParseSyllable(s)
		}
	}
}
