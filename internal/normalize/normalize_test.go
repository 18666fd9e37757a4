package normalize

import "testing"

func TestText_FractionSlash(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1⁄2", "1/2"},
		{"1 ⁄ 2", "1/2"},
		{"3⁄ 4 heart", "3/4 heart"},
	}
	for _, tc := range cases {
		if got := Text(tc.in); got != tc.want {
			t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestText_EditionMarkers(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Copper horn‌[BE only]", "Copper horn [BE only]"},
		{"Sculk‍[JE only]", "Sculk [JE only]"},
		{"Glow‌‍[BE only]", "Glow [BE only]"},
	}
	for _, tc := range cases {
		if got := Text(tc.in); got != tc.want {
			t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestText_StripsStrayZeroWidth(t *testing.T) {
	// Zero-width characters outside an edition marker just vanish.
	if got := Text("spawn‌egg​shell"); got != "spawneggshell" {
		t.Fatalf("got %q", got)
	}
}

func TestText_NFCComposition(t *testing.T) {
	// Decomposed e + combining acute composes to a single rune.
	got := Text("Pokémon")
	if got != "Pokémon" {
		t.Fatalf("got %q", got)
	}
}

func TestText_Idempotent(t *testing.T) {
	in := "1 ⁄ 2 heart‌[BE only] Pokémon​"
	once := Text(in)
	if twice := Text(once); twice != once {
		t.Fatalf("second pass changed text: %q vs %q", twice, once)
	}
}

func TestText_PlainTextUntouched(t *testing.T) {
	in := "A torch requires one stick and one coal."
	if got := Text(in); got != in {
		t.Fatalf("got %q", got)
	}
}
