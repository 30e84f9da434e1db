package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/intentshell/internal/domain"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []domain.Entity
	}{
		{
			name:  "env var reference",
			input: "open %APPDATA% folder",
			want: []domain.Entity{
				{Kind: domain.EntityEnvVar, RawText: "APPDATA"},
			},
		},
		{
			name:  "clipboard keyword",
			input: "paste clipboard here",
			want: []domain.Entity{
				{Kind: domain.EntityClipboardRef, RawText: "clipboard"},
			},
		},
		{
			name:  "that is a clipboard ref",
			input: "save THAT somewhere",
			want: []domain.Entity{
				{Kind: domain.EntityClipboardRef, RawText: "THAT"},
			},
		},
		{
			name:  "path token",
			input: "show /var/log contents",
			want: []domain.Entity{
				{Kind: domain.EntityPath, RawText: "/var/log", ResolvedValue: "/var/log", Resolved: true},
			},
		},
		{
			name:  "file extension",
			input: "find report.pdf",
			want: []domain.Entity{
				{Kind: domain.EntityFileExtension, RawText: "report.pdf", ResolvedValue: "pdf", Resolved: true},
			},
		},
		{
			name:  "trailing integer",
			input: "kill process 1234",
			want: []domain.Entity{
				{Kind: domain.EntityNumericLit, RawText: "1234", ResolvedValue: "1234", Resolved: true},
			},
		},
		{
			name:  "non trailing integer is not numeric",
			input: "move 5 files around",
			want:  nil,
		},
		{
			name:  "path wins over extension for the same token",
			input: "open /tmp/report.pdf",
			want: []domain.Entity{
				{Kind: domain.EntityPath, RawText: "/tmp/report.pdf", ResolvedValue: "/tmp/report.pdf", Resolved: true},
			},
		},
		{
			name:  "multiple kinds keep input order",
			input: "copy %HOME% notes.txt clipboard 42",
			want: []domain.Entity{
				{Kind: domain.EntityEnvVar, RawText: "HOME"},
				{Kind: domain.EntityFileExtension, RawText: "notes.txt", ResolvedValue: "txt", Resolved: true},
				{Kind: domain.EntityClipboardRef, RawText: "clipboard"},
				{Kind: domain.EntityNumericLit, RawText: "42", ResolvedValue: "42", Resolved: true},
			},
		},
		{
			name:  "quoted path is trimmed",
			input: `open "C:\Users\me\Desktop"`,
			want: []domain.Entity{
				{Kind: domain.EntityPath, RawText: `C:\Users\me\Desktop`, ResolvedValue: `C:\Users\me\Desktop`, Resolved: true},
			},
		},
		{
			name:  "empty input",
			input: "   ",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}
