package rooms

import "testing"

func contains(codes []string, want string) bool {
	for _, c := range codes {
		if c == want {
			return true
		}
	}
	return false
}

func TestExtractCode(t *testing.T) {
	cases := map[string]string{
		"149/150 x34 (+8 ex)": "149/150",
		"(6117)":              "6117",
		"(6132/6133)":         "6132/6133",
		"Room 12 West":        "12",
		"Terrace":             "TERRACE",
		"":                    "",
		"136":                 "136",
	}
	for in, want := range cases {
		if got := ExtractCode(in); got != want {
			t.Fatalf("ExtractCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractAllCodesSlashCompound(t *testing.T) {
	codes := ExtractAllCodes("149/150")
	if !contains(codes, "149") || !contains(codes, "150") {
		t.Fatalf("expected 149 and 150 in %v", codes)
	}

	codes = ExtractAllCodes("(6132/6133)")
	if !contains(codes, "6132") || !contains(codes, "6133") {
		t.Fatalf("expected 6132 and 6133 in %v", codes)
	}
}

func TestExtractAllCodesVariants(t *testing.T) {
	codes := ExtractAllCodes("122 x12 / (6122)")
	if !contains(codes, "122") || !contains(codes, "6122") {
		t.Fatalf("expected 122 and 6122 in %v", codes)
	}

	codes = ExtractAllCodes("G10")
	if !contains(codes, "G10") || !contains(codes, "10") {
		t.Fatalf("expected G10 and 10 in %v", codes)
	}

	codes = ExtractAllCodes("TERRACE SILKS breakfast")
	if !contains(codes, "TERRACE SILKS") {
		t.Fatalf("expected named room in %v", codes)
	}

	if got := ExtractAllCodes(""); got != nil {
		t.Fatalf("expected nil for empty label, got %v", got)
	}
}

func TestExtractAllCodesDeduplicates(t *testing.T) {
	codes := ExtractAllCodes("149/150 (149/150)")
	seen := make(map[string]int)
	for _, c := range codes {
		seen[c]++
		if seen[c] > 1 {
			t.Fatalf("duplicate code %q in %v", c, codes)
		}
	}
}

func TestCodesMatch(t *testing.T) {
	if !CodesMatch("121", "121") {
		t.Fatal("identical codes should match")
	}
	if !CodesMatch("121", "6121") {
		t.Fatal("3-digit and 6-prefixed 4-digit codes should match")
	}
	if !CodesMatch("6121", "121") {
		t.Fatal("match should be symmetric")
	}
	if !CodesMatch("G10", "G10") {
		t.Fatal("letter+number codes should match")
	}
	if CodesMatch("121", "122") {
		t.Fatal("different rooms should not match")
	}
	if CodesMatch("G10", "G11") {
		t.Fatal("different letter+number codes should not match")
	}
	if CodesMatch("", "121") {
		t.Fatal("empty code should never match")
	}
}
