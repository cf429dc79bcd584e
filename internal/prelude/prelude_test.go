package prelude

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kgtools/foundation/internal/kgerr"
)

func TestPluralize(t *testing.T) {
	tests := []struct {
		n      int
		word   string
		plural []string
		want   string
	}{
		{1, "file", nil, "1 file"},
		{0, "file", nil, "0 files"},
		{2, "file", nil, "2 files"},
		{1234, "file", nil, "1,234 files"},
		{3, "child", []string{"children"}, "3 children"},
		{1, "child", []string{"children"}, "1 child"},
	}
	for _, tc := range tests {
		if got := Pluralize(tc.n, tc.word, tc.plural...); got != tc.want {
			t.Errorf("Pluralize(%d, %q) = %q, want %q", tc.n, tc.word, got, tc.want)
		}
	}
}

func TestRemovePrefixSuffix(t *testing.T) {
	if got := RemovePrefix("prefix-rest", "prefix-"); got != "rest" {
		t.Errorf("RemovePrefix() = %q", got)
	}
	if got := RemovePrefix("rest", "prefix-"); got != "rest" {
		t.Errorf("RemovePrefix() = %q", got)
	}
	if got := RemoveSuffix("name.txt", ".txt"); got != "name" {
		t.Errorf("RemoveSuffix() = %q", got)
	}

	if _, err := MustRemovePrefix("rest", "x"); err == nil {
		t.Error("MustRemovePrefix() succeeded without prefix")
	} else if e, ok := kgerr.As(err); !ok || e.Val("prefix") != "x" {
		t.Errorf("unexpected error: %v", err)
	}
	if got, err := MustRemoveSuffix("a.go", ".go"); err != nil || got != "a" {
		t.Errorf("MustRemoveSuffix() = %q, %v", got, err)
	}
	if _, err := MustRemoveSuffix("a.go", ".py"); err == nil {
		t.Error("MustRemoveSuffix() succeeded without suffix")
	}
}

func TestFindFirst(t *testing.T) {
	x, ok := FindFirst([]int{1, 4, 6}, func(i int) bool { return i%2 == 0 })
	if !ok || x != 4 {
		t.Errorf("FindFirst() = %d, %v", x, ok)
	}
	if _, ok := FindFirst([]int{1, 3}, func(i int) bool { return i%2 == 0 }); ok {
		t.Error("FindFirst() found an element that does not exist")
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten([][]string{{"a"}, nil, {"b", "c"}})
	if strings.Join(got, ",") != "a,b,c" {
		t.Errorf("Flatten() = %v", got)
	}
}

func TestSHA256(t *testing.T) {
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := SHA256("hello"); got != want {
		t.Errorf("SHA256() = %s", got)
	}
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	if !Confirm(strings.NewReader("maybe\nYes\n"), &out, "Continue? ") {
		t.Error("Confirm() = false, want true")
	}
	if !strings.Contains(out.String(), "Please enter 'yes' or 'no'.") {
		t.Errorf("missing retry prompt in %q", out.String())
	}
	if Confirm(strings.NewReader("n\n"), &out, "Continue? ") {
		t.Error("Confirm() = true, want false")
	}
	if Confirm(strings.NewReader(""), &out, "Continue? ") {
		t.Error("Confirm() = true on EOF")
	}
}
