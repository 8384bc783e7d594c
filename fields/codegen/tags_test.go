package codegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStructTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "Empty tag",
			tag:  "",
			want: map[string]string{},
		},
		{
			name: "Single flag",
			tag:  "micros",
			want: map[string]string{"micros": ""},
		},
		{
			name: "Single key-value",
			tag:  "default=7",
			want: map[string]string{"default": "7"},
		},
		{
			name: "Mixed flags and key-value",
			tag:  "default=7,micros",
			want: map[string]string{"default": "7", "micros": ""},
		},
		{
			name: "Double quoted value",
			tag:  `default="a, b"`,
			want: map[string]string{"default": "a, b"},
		},
		{
			name: "Single quoted value",
			tag:  `default='[]string{"a", "b"}',micros`,
			want: map[string]string{"default": `[]string{"a", "b"}`, "micros": ""},
		},
		{
			name: "Spaces around commas",
			tag:  "default=7 , micros",
			want: map[string]string{"default": "7", "micros": ""},
		},
		{
			name:    "Unterminated quote",
			tag:     "default='x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStructTag(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStructTag() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseStructTag() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFieldTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    FieldTag
		wantErr bool
	}{
		{
			name: "name only",
			tag:  "count",
			want: FieldTag{Name: "count"},
		},
		{
			name: "skip",
			tag:  "-",
			want: FieldTag{Skip: true},
		},
		{
			name: "name and default",
			tag:  "count,default=7",
			want: FieldTag{Name: "count", Default: "7", HasDefault: true},
		},
		{
			name: "empty name keeps options",
			tag:  ",micros",
			want: FieldTag{Micros: true},
		},
		{
			name: "options without name",
			tag:  "default='1,2'",
			want: FieldTag{Default: "1,2", HasDefault: true},
		},
		{
			name: "empty default",
			tag:  "label,default=",
			want: FieldTag{Name: "label", HasDefault: true},
		},
		{
			name:    "unknown option",
			tag:     "count,omitempty",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFieldTag(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFieldTag() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("ParseFieldTag() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
