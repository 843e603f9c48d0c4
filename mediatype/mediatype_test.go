package mediatype_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/binsoul/net/mediatype"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		want    mediatype.MediaType
		wantErr error
	}{
		{
			name:  "simple",
			input: "text/html",
			want:  mediatype.MediaType{Type: "text", Subtype: "html"},
		},
		{
			name:  "uppercase lowered",
			input: "Text/HTML",
			want:  mediatype.MediaType{Type: "text", Subtype: "html"},
		},
		{
			name:  "parameter",
			input: "text/html; charset=utf-8",
			want:  mediatype.MediaType{Type: "text", Subtype: "html", Params: map[string]string{"charset": "utf-8"}},
		},
		{
			name:  "quoted parameter value",
			input: `multipart/form-data; boundary="xYz"`,
			want:  mediatype.MediaType{Type: "multipart", Subtype: "form-data", Params: map[string]string{"boundary": "xYz"}},
		},
		{
			name:  "parameter key lowered",
			input: "text/html; CHARSET=utf-8",
			want:  mediatype.MediaType{Type: "text", Subtype: "html", Params: map[string]string{"charset": "utf-8"}},
		},
		{
			name:  "structured suffix",
			input: "application/vnd.api+json",
			want:  mediatype.MediaType{Type: "application", Subtype: "vnd.api+json"},
		},
		{
			name:  "wildcard",
			input: "*/*",
			want:  mediatype.MediaType{Type: "*", Subtype: "*"},
		},
		{
			name:  "subtype wildcard",
			input: "image/*",
			want:  mediatype.MediaType{Type: "image", Subtype: "*"},
		},
		{
			name:  "empty trailing field ignored",
			input: "text/plain;",
			want:  mediatype.MediaType{Type: "text", Subtype: "plain"},
		},

		{name: "missing subtype", input: "text", wantErr: mediatype.ErrInvalidMediaType},
		{name: "empty", input: "", wantErr: mediatype.ErrInvalidMediaType},
		{name: "empty subtype", input: "text/", wantErr: mediatype.ErrInvalidMediaType},
		{name: "leading punctuation", input: "-text/html", wantErr: mediatype.ErrInvalidMediaType},
		{name: "invalid character", input: "te xt/html", wantErr: mediatype.ErrInvalidMediaType},
		{name: "parameter without value", input: "text/html; charset", wantErr: mediatype.ErrInvalidMediaType},
		{name: "parameter without key", input: "text/html; =utf-8", wantErr: mediatype.ErrInvalidMediaType},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, gotErr := mediatype.Parse(c.input)
			if diff := cmp.Diff(gotErr, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("mediatype.Parse(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.input, gotErr, c.wantErr, diff)
			}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("mediatype.Parse(%q) mismatch (-got +want):\n%v", c.input, diff)
			}
		})
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	mt := mediatype.MediaType{
		Type:    "text",
		Subtype: "html",
		Params:  map[string]string{"charset": "utf-8", "boundary": "xyz"},
	}
	if got, want := mt.String(), "text/html;boundary=xyz;charset=utf-8"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := fmt.Sprintf("%s", mt), mt.String(); got != want {
		t.Errorf("Sprintf(%%s) = %q, want %q", got, want)
	}
	if got, want := fmt.Sprintf("%q", mt), `"text/html;boundary=xyz;charset=utf-8"`; got != want {
		t.Errorf("Sprintf(%%q) = %q, want %q", got, want)
	}
}

func TestIsWildcard(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  bool
	}{
		{"*/*", true},
		{"image/*", true},
		{"text/html", false},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			mt, err := mediatype.Parse(c.input)
			if err != nil {
				t.Fatalf("mediatype.Parse(%q) error = %v, want nil", c.input, err)
			}
			if got, want := mt.IsWildcard(), c.want; got != want {
				t.Errorf("IsWildcard() = %v, want %v", got, want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	mt := mediatype.MediaType{Type: "text", Subtype: "html", Params: map[string]string{"charset": "utf-8"}}
	clone := mt.Clone()
	clone.Params["charset"] = "latin1"
	if got, want := mt.Params["charset"], "utf-8"; got != want {
		t.Errorf("original parameter changed through the clone: got %q, want %q", got, want)
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := mediatype.MediaType{Type: "text", Subtype: "html", Params: map[string]string{"charset": "utf-8"}}
	b := mediatype.MediaType{Type: "TEXT", Subtype: "HTML", Params: map[string]string{"charset": "utf-8"}}
	c := mediatype.MediaType{Type: "text", Subtype: "html"}

	if !a.Equal(b) {
		t.Errorf("%v is not equal to %v", a, b)
	}
	if !a.Equal(&b) {
		t.Errorf("%v is not equal to &%v", a, b)
	}
	if a.Equal(c) {
		t.Errorf("%v is equal to %v", a, c)
	}
	if a.Equal("text/html") {
		t.Errorf("media type compares equal to a plain string")
	}
	if a.Equal((*mediatype.MediaType)(nil)) {
		t.Errorf("media type compares equal to a nil pointer")
	}
}

func TestTextMarshalling(t *testing.T) {
	t.Parallel()

	mt, err := mediatype.Parse("text/html; charset=utf-8")
	if err != nil {
		t.Fatalf("mediatype.Parse error = %v, want nil", err)
	}
	text, err := mt.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v, want nil", err)
	}
	if got, want := string(text), "text/html;charset=utf-8"; got != want {
		t.Errorf("MarshalText() = %q, want %q", got, want)
	}

	var mt2 mediatype.MediaType
	if err := mt2.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q) error = %v, want nil", text, err)
	}
	if !mt.Equal(mt2) {
		t.Errorf("round-tripped media type %v is not equal to the original %v", mt2, mt)
	}

	var mt3 mediatype.MediaType
	if err := mt3.UnmarshalText([]byte("bogus")); err == nil {
		t.Errorf("UnmarshalText(%q) error = nil, want error", "bogus")
	}
	if !mt3.IsZero() {
		t.Errorf("media type after failed unmarshal is not zero: %v", mt3)
	}
}
