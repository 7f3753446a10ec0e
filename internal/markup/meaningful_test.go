package markup

import "testing"

func TestIsMeaningful(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		want   bool
	}{
		{"empty string", "", false},
		{"whitespace only", "   \n\t", false},
		{"lone empty paragraph", "<p></p>", false},
		{"paragraph with break", "<p><br></p>", false},
		{"nbsp entity only", "<p>&nbsp;</p>", false},
		{"nbsp rune only", "<p>  </p>", false},
		{"nested empty tags", "<div><span></span></div>", false},
		{"plain text", "hello", true},
		{"text in paragraph", "<p>hello</p>", true},
		{"text after empty block", "<p></p><p>world</p>", true},
		{"heading and paragraph", "<h1>Hello</h1><p>world</p>", true},
		{"nbsp padding around text", "<p>&nbsp;x&nbsp;</p>", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsMeaningful(tc.markup); got != tc.want {
				t.Errorf("IsMeaningful(%q) = %v, want %v", tc.markup, got, tc.want)
			}
		})
	}
}
