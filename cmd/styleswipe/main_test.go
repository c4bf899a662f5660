package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectPickArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "bare slot name",
			in:   []string{"styleswipe", "top"},
			want: []string{"styleswipe", "pick", "top"},
		},
		{
			name: "slot after value flag",
			in:   []string{"styleswipe", "--api", "http://localhost:9999", "shoes"},
			want: []string{"styleswipe", "--api", "http://localhost:9999", "pick", "shoes"},
		},
		{
			name: "slot after equals-form flag",
			in:   []string{"styleswipe", "--user=user-1", "bottom"},
			want: []string{"styleswipe", "--user=user-1", "pick", "bottom"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"styleswipe", "liked", "list"},
			want: []string{"styleswipe", "liked", "list"},
		},
		{
			name: "explicit pick untouched",
			in:   []string{"styleswipe", "pick", "top"},
			want: []string{"styleswipe", "pick", "top"},
		},
		{
			name: "no args",
			in:   []string{"styleswipe"},
			want: []string{"styleswipe"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := rewriteDirectPickArgs(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}
