package wiki

import "testing"

func TestPages_LabelsUnique(t *testing.T) {
	seen := make(map[string]bool, len(Pages))
	for _, p := range Pages {
		if seen[p.Label] {
			t.Fatalf("duplicate label %q", p.Label)
		}
		seen[p.Label] = true
		if p.URL == "" {
			t.Fatalf("page %q has no URL", p.Label)
		}
	}
}

func TestFlagsFor(t *testing.T) {
	cases := []struct {
		url  string
		want SiteFlags
	}{
		{TutorialsURL, SiteFlags{LinksOnly: true}},
		{"https://www.minecraftcrafting.info", SiteFlags{StructuredTable: true}},
		{"https://minecraft.wiki/w/Trading", SiteFlags{}},
	}
	for _, tc := range cases {
		if got := FlagsFor(tc.url); got != tc.want {
			t.Fatalf("FlagsFor(%q) = %+v, want %+v", tc.url, got, tc.want)
		}
	}
}

func TestIsCraftingSite(t *testing.T) {
	if !IsCraftingSite("https://www.minecraftcrafting.info") {
		t.Fatal("expected crafting site match")
	}
	if !IsCraftingSite("http://minecraftcrafting.info/recipes") {
		t.Fatal("expected bare-host match")
	}
	if IsCraftingSite("https://minecraft.wiki/w/Crafting") {
		t.Fatal("expected wiki page to not match")
	}
}

func TestOrigin(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://minecraft.wiki/w/Tutorials", "https://minecraft.wiki"},
		{"http://example.test/a/b?c=d", "http://example.test"},
		{"not a url", ""},
		{"/relative/path", ""},
	}
	for _, tc := range cases {
		if got := Origin(tc.in); got != tc.want {
			t.Fatalf("Origin(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
