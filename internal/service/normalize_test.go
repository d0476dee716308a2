package service

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "link, spacing, and punctuation",
			in:   "Acme was founded in 1990 ([source](http://x))  extra   spaces .",
			want: "Acme was founded in 1990 extra spaces.",
		},
		{
			name: "bare markdown link",
			in:   "Acme sells anvils [acme.com](https://acme.com/about?a=1).",
			want: "Acme sells anvils.",
		},
		{
			name: "parenthetical aside",
			in:   "Acme (a Wile E. favorite) ships fast , and cheap .",
			want: "Acme ships fast, and cheap.",
		},
		{
			name: "bullets and newlines",
			in:   "Acme highlights:\n- Founded 1990\n* 40 stores\n• Free returns\r\n",
			want: "Acme highlights: Founded 1990 40 stores Free returns",
		},
		{
			name: "marker alone on its line",
			in:   "-\nAcme sells anvils.\n•\r\nFree returns.",
			want: "Acme sells anvils. Free returns.",
		},
		{
			name: "horizontal rule",
			in:   "* * *\nAcme sells anvils.",
			want: "Acme sells anvils.",
		},
		{
			name: "plain prose untouched",
			in:   "Acme is a well-known hardware retailer.",
			want: "Acme is a well-known hardware retailer.",
		},
		{
			name: "hyphen inside a line kept",
			in:   "A family-owned store - open since 1990.",
			want: "A family-owned store - open since 1990.",
		},
		{
			name: "sentinel survives",
			in:   " 0 ",
			want: "0",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Acme was founded in 1990 ([source](http://x))  extra   spaces .",
		"((nested)) parens ) stay ( stable",
		"[[a](b)](c) odd links",
		"- - double bullet\n- second",
		"1. numbered\n2. list",
		"spaces , before . punctuation ,.",
		"tabs\tand\n\nblank\n\n\nlines",
		"-\nAcme sells anvils.",
		"* * *\nAcme sells anvils.",
		"•\nAcme",
		"Acme\n-\n- \n•\t\nsells anvils.",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
