package textops

import "testing"

func TestAddAppendage(t *testing.T) {
	tests := []struct {
		name, token, want string
	}{
		{"img.png", "_v", "img_v.png"},
		{"img.png", "", "img.png"},
		{"noext", "_x", "noext_x"},
		{"a.b.png", "-1", "a.b-1.png"},
	}

	for _, tt := range tests {
		if got := AddAppendage(tt.name, tt.token); got != tt.want {
			t.Errorf("AddAppendage(%q, %q) = %q, want %q", tt.name, tt.token, got, tt.want)
		}
	}
}

func TestAddAppendageIsCumulative(t *testing.T) {
	got := AddAppendage(AddAppendage("img.png", "_v"), "_v")
	if got != "img_v_v.png" {
		t.Errorf("Double AddAppendage = %q, want img_v_v.png", got)
	}
}

func TestRemoveAppendage(t *testing.T) {
	tests := []struct {
		name, token, want string
	}{
		{"img_v.png", "_v", "img.png"},
		{"img.png", "_v", "img.png"},
		{"img_v_v.png", "_v", "img_v.png"},
		{"img.png", "", "img.png"},
	}

	for _, tt := range tests {
		if got := RemoveAppendage(tt.name, tt.token); got != tt.want {
			t.Errorf("RemoveAppendage(%q, %q) = %q, want %q", tt.name, tt.token, got, tt.want)
		}
	}
}

func TestReplacePart(t *testing.T) {
	tests := []struct {
		name, old, new, want string
	}{
		{"holiday_img.png", "img", "photo", "holiday_photo.png"},
		{"aXbXc.png", "X", "", "abc.png"},
		{"img.png", "xyz", "q", "img.png"},
		{"img.png", "", "q", "img.png"},
	}

	for _, tt := range tests {
		if got := ReplacePart(tt.name, tt.old, tt.new); got != tt.want {
			t.Errorf("ReplacePart(%q, %q, %q) = %q, want %q", tt.name, tt.old, tt.new, got, tt.want)
		}
	}
}

func TestTrimPrefixCount(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"IMG_0001.png", 4, "0001.png"},
		{"ab.png", 2, "ab.png"},
		{"ab.png", 5, "ab.png"},
		{"abc.png", 0, "abc.png"},
		{"héllo.png", 1, "éllo.png"},
	}

	for _, tt := range tests {
		if got := TrimPrefixCount(tt.name, tt.n); got != tt.want {
			t.Errorf("TrimPrefixCount(%q, %d) = %q, want %q", tt.name, tt.n, got, tt.want)
		}
	}
}

func TestReorderNumbers(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"b3a1c2.png", "b1a2c3.png"},
		{"img10_take2.png", "img2_take10.png"},
		{"one7.png", "one7.png"},
		{"plain.png", "plain.png"},
		{"005_1.png", "1_005.png"},
	}

	for _, tt := range tests {
		if got := ReorderNumbers(tt.name); got != tt.want {
			t.Errorf("ReorderNumbers(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestReorderNumbersIdempotent(t *testing.T) {
	once := ReorderNumbers("b3a1c2.png")
	twice := ReorderNumbers(once)
	if once != twice {
		t.Errorf("ReorderNumbers not idempotent: %q then %q", once, twice)
	}
}

func TestCompareNumeric(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"005", "5", -1}, // equal values order by padding, more-padded first
		{"7", "7", 0},
		{"000", "0", -1},
	}

	for _, tt := range tests {
		got := compareNumeric(tt.a, tt.b)
		if (got < 0) != (tt.want < 0) || (got > 0) != (tt.want > 0) {
			t.Errorf("compareNumeric(%q, %q) = %d, want sign of %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSplitExt(t *testing.T) {
	base, ext := SplitExt("archive.tar.gz")
	if base != "archive.tar" || ext != ".gz" {
		t.Errorf("SplitExt = %q, %q", base, ext)
	}

	base, ext = SplitExt("noext")
	if base != "noext" || ext != "" {
		t.Errorf("SplitExt = %q, %q", base, ext)
	}
}
