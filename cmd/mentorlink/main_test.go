package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectMentorLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"mentorlink"},
			want: []string{"mentorlink"},
		},
		{
			name: "email first token",
			in:   []string{"mentorlink", "mentor@test.com"},
			want: []string{"mentorlink", "mentors", "show", "mentor@test.com"},
		},
		{
			name: "email after value flag",
			in:   []string{"mentorlink", "--api-url", "http://h/api", "mentor@test.com"},
			want: []string{"mentorlink", "--api-url", "http://h/api", "mentors", "show", "mentor@test.com"},
		},
		{
			name: "email after equals flag",
			in:   []string{"mentorlink", "--format=text", "mentor@test.com"},
			want: []string{"mentorlink", "--format=text", "mentors", "show", "mentor@test.com"},
		},
		{
			name: "email after bool flag",
			in:   []string{"mentorlink", "--pretty", "mentor@test.com"},
			want: []string{"mentorlink", "--pretty", "mentors", "show", "mentor@test.com"},
		},
		{
			name: "after double dash",
			in:   []string{"mentorlink", "--", "mentor@test.com"},
			want: []string{"mentorlink", "--", "mentors", "show", "mentor@test.com"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"mentorlink", "match", "request", "mentor@test.com"},
			want: []string{"mentorlink", "match", "request", "mentor@test.com"},
		},
		{
			name: "not an email",
			in:   []string{"mentorlink", "mentors"},
			want: []string{"mentorlink", "mentors"},
		},
		{
			name: "bare at sign",
			in:   []string{"mentorlink", "@"},
			want: []string{"mentorlink", "@"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectMentorLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
