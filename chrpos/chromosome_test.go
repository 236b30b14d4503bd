package chrpos

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"1":     "1",
		"chr1":  "1",
		"CHR22": "22",
		"01":    "1",
		"chrX":  "X",
		"x":     "X",
		"23":    "X",
		"24":    "Y",
		"25":    "XY",
		"26":    "MT",
		"chrM":  "MT",
		" 7 ":   "7",
		"6_cox": "6_COX",
	}

	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSorted(t *testing.T) {
	in := []string{"X", "10", "2", "MT", "1", "GL000192", "2", "Y", "22"}
	want := []string{"1", "2", "10", "22", "X", "Y", "MT", "GL000192"}

	if got := Sorted(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted = %v, want %v", got, want)
	}
}

func TestLessIsStrict(t *testing.T) {
	for _, c := range []string{"1", "X", "MT", "UN"} {
		if Less(c, c) {
			t.Errorf("Less(%q, %q) should be false", c, c)
		}
	}

	if !Less("9", "10") {
		t.Error("9 should sort before 10")
	}
	if Less("10", "9") {
		t.Error("10 should not sort before 9")
	}
}
