package diag

import (
	"errors"
	"io/fs"
	"testing"
)

func TestErrorStrings(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "invalid path",
			err:  NewPath("testpath.ufo", "not a valid UFO directory path"),
			want: "invalid path error: testpath.ufo: not a valid UFO directory path",
		},
		{
			name: "read",
			err:  NewParse("glyphs/A.glif", errors.New("malformed XML")),
			want: "read error: glyphs/A.glif: malformed XML",
		},
		{
			name: "write",
			err:  NewWrite("fontinfo.plist", errors.New("disk full")),
			want: "write error: fontinfo.plist: disk full",
		},
		{
			name: "config without path",
			err:  NewConfig("indent-number must have a value between 1 - 4, got %d", 9),
			want: "config error: indent-number must have a value between 1 - 4, got 9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fs.ErrPermission
	err := NewWrite("lib.plist", cause)
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should see through the diag wrapper")
	}
}

func TestKindOf(t *testing.T) {
	if k, ok := KindOf(NewParse("x.glif", errors.New("bad"))); !ok || k != KindParse {
		t.Errorf("KindOf = (%v, %v), want (KindParse, true)", k, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf should not classify plain errors")
	}
}
