package validators

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct{ in, want string }{
		{"(11) 99876-5432", "11998765432"},
		{"+55 11 99876-5432", "5511998765432"},
		{"11998765432", "11998765432"},
		{"", ""},
		{"abc", ""},
	}

	for _, c := range cases {
		if got := NormalizePhone(c.in); got != c.want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
