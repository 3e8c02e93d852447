package stream

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantPatterns []string
		wantPaths    []string
		wantErr      string
	}{
		{
			name:         "well formed",
			input:        "2\na,b\na,*\n1\na/b\n",
			wantPatterns: []string{"a,b", "a,*"},
			wantPaths:    []string{"a/b"},
		},
		{
			name:         "no trailing newline",
			input:        "1\na,b\n1\na/b",
			wantPatterns: []string{"a,b"},
			wantPaths:    []string{"a/b"},
		},
		{
			name:         "zero patterns",
			input:        "0\n1\nx/y\n",
			wantPatterns: []string{},
			wantPaths:    []string{"x/y"},
		},
		{
			name:         "crlf input",
			input:        "1\r\na,b\r\n1\r\na/b\r\n",
			wantPatterns: []string{"a,b"},
			wantPaths:    []string{"a/b"},
		},
		{
			name:    "non-integer pattern count",
			input:   "two\na,b\n",
			wantErr: "invalid pattern count",
		},
		{
			name:    "negative count",
			input:   "-1\n",
			wantErr: "invalid pattern count",
		},
		{
			name:    "truncated patterns",
			input:   "3\na,b\n",
			wantErr: "expected 3 pattern lines, got 1",
		},
		{
			name:    "missing path count",
			input:   "1\na,b\n",
			wantErr: "missing path count",
		},
		{
			name:    "truncated paths",
			input:   "1\na,b\n2\na/b\n",
			wantErr: "expected 2 path lines, got 1",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: "missing pattern count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Read(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error %q does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !reflect.DeepEqual(in.Patterns, tt.wantPatterns) {
				t.Errorf("Patterns = %v, want %v", in.Patterns, tt.wantPatterns)
			}
			if !reflect.DeepEqual(in.Paths, tt.wantPaths) {
				t.Errorf("Paths = %v, want %v", in.Paths, tt.wantPaths)
			}
		})
	}
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResults(&buf, []string{"a,b,c", NoMatch, "a,*"}); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	want := "a,b,c\nNO MATCH\na,*\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
