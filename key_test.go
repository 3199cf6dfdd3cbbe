package recache

import "testing"

func TestBuildKey(t *testing.T) {
	cases := []struct {
		name      string
		fn        string
		call      Call
		useArgs   []int
		useKwargs []string
		want      string
	}{
		{
			name: "no args",
			fn:   "nullary",
			want: "nullary()",
		},
		{
			name: "positional order preserved",
			fn:   "hello",
			call: Call{Args: []any{"a", 2, true}},
			want: "hello('a','2','true')",
		},
		{
			name:    "positional allow-list filters by index",
			fn:      "hello",
			call:    Call{Args: []any{"keep", "drop", "keep2"}},
			useArgs: []int{0, 2},
			want:    "hello('keep','keep2')",
		},
		{
			name: "kwargs follow positionals in given order",
			fn:   "f",
			call: Call{
				Args:   []any{1},
				Kwargs: []KV{{Name: "z", Value: "last"}, {Name: "a", Value: "first"}},
			},
			want: "f('1','last','first')",
		},
		{
			name: "kwarg allow-list filters by name",
			fn:   "f",
			call: Call{
				Kwargs: []KV{{Name: "user", Value: "u1"}, {Name: "token", Value: "secret"}},
			},
			useKwargs: []string{"user"},
			want:      "f('u1')",
		},
		{
			name: "same stringification collides by design",
			fn:   "g",
			call: Call{Args: []any{1}},
			want: "g('1')", // int 1 and string "1" share this key
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := buildKey(tc.fn, tc.call, tc.useArgs, tc.useKwargs)
			if got != tc.want {
				t.Fatalf("buildKey = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLockKeyPrefix(t *testing.T) {
	if got := lockKey("ns:f('a')"); got != ".ns:f('a')" {
		t.Fatalf("lockKey = %q", got)
	}
}
