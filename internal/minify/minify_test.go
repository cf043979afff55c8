package minify

import (
	"testing"
)

// TestMinifyPython tests hash comment stripping with string and docstring
// protection.
func TestMinifyPython(t *testing.T) {
	input := "#!/usr/bin/env python3\n" +
		"# build helper\n" +
		"\n" +
		"def main():  # entry\n" +
		"    \"\"\"Doc.\n" +
		"\n" +
		"    More.\n" +
		"    \"\"\"\n" +
		"    url = \"https://example.com#anchor\"\n" +
		"    return 1\n" +
		"\n" +
		"# done\n"

	want := "#!/usr/bin/env python3\n" +
		"def main():\n" +
		"    \"\"\"Doc.\n" +
		"\n" +
		"    More.\n" +
		"    \"\"\"\n" +
		"    url = \"https://example.com#anchor\"\n" +
		"    return 1"

	if got := Minify(input, "python"); got != want {
		t.Errorf("Minify() = %q, want %q", got, want)
	}
}

// TestMinifyGo tests slash comments, block comments, and raw string
// protection.
func TestMinifyGo(t *testing.T) {
	input := "// Package demo.\n" +
		"package demo\n" +
		"\n" +
		"/*\n" +
		"Block comment.\n" +
		"*/\n" +
		"const tmpl = `\n" +
		"// kept raw\n" +
		"`\n" +
		"\n" +
		"func main() { /* inline */ run() } // tail\n"

	want := "package demo\n" +
		"const tmpl = `\n" +
		"// kept raw\n" +
		"`\n" +
		"func main() {  run() }"

	if got := Minify(input, "go"); got != want {
		t.Errorf("Minify() = %q, want %q", got, want)
	}
}

// TestMinifyByFamily tests one representative snippet per remaining family.
func TestMinifyByFamily(t *testing.T) {
	tests := []struct {
		name    string
		lang    string
		content string
		want    string
	}{
		{
			name:    "javascript template literal",
			lang:    "javascript",
			content: "const s = `a ${x} // not a comment`;\n// real\nrun();\n",
			want:    "const s = `a ${x} // not a comment`;\nrun();",
		},
		{
			name:    "javascript escaped backtick",
			lang:    "javascript",
			content: "const t = `tick \\` still`; // c\n",
			want:    "const t = `tick \\` still`;",
		},
		{
			name:    "rust url in string",
			lang:    "rust",
			content: "let url = \"https://crates.io\"; // fetch\nfn f<'a>(x: &'a str) {} // generic\n",
			want:    "let url = \"https://crates.io\";\nfn f<'a>(x: &'a str) {}",
		},
		{
			name:    "rust multiline string",
			lang:    "rust",
			content: "let s = \"line1\nline2\"; // c\n",
			want:    "let s = \"line1\nline2\";",
		},
		{
			name:    "php hash and slash comments",
			lang:    "php",
			content: "<?php\n# hash comment\n// slash comment\n$x = 1; # tail\n",
			want:    "<?php\n$x = 1;",
		},
		{
			name:    "ruby adjacent strings",
			lang:    "ruby",
			content: "# c\nputs 'it''s ok' # tail\n",
			want:    "puts 'it''s ok'",
		},
		{
			name:    "java text block",
			lang:    "java",
			content: "String s = \"\"\"\n  // inside\n  \"\"\"; // after\n",
			want:    "String s = \"\"\"\n  // inside\n  \"\"\";",
		},
		{
			name:    "cpp char literal",
			lang:    "cpp",
			content: "char c = '/'; // slash\nint x = 1; /* gone */\n",
			want:    "char c = '/';\nint x = 1;",
		},
		{
			name:    "blank runs dropped",
			lang:    "go",
			content: "a := 1\n\n\n\nb := 2\n",
			want:    "a := 1\nb := 2",
		},
		{
			name:    "comment only file empties",
			lang:    "python",
			content: "# one\n# two\n",
			want:    "",
		},
		{
			name:    "shebang only file",
			lang:    "python",
			content: "#!/bin/sh",
			want:    "#!/bin/sh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Minify(tt.content, tt.lang); got != tt.want {
				t.Errorf("Minify(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

// TestMinifyUnknownTag tests that unregistered tags pass content through
// byte for byte.
func TestMinifyUnknownTag(t *testing.T) {
	content := "# not stripped\n\n\nweird // stuff\n"

	for _, lang := range []string{"generic", "fortran", ""} {
		if got := Minify(content, lang); got != content {
			t.Errorf("Minify(%q) = %q, want unchanged input", lang, got)
		}
	}
}

// TestMinifyIdempotent tests that a second pass is a no-op for every family.
func TestMinifyIdempotent(t *testing.T) {
	samples := map[string]string{
		"python":     "#!/usr/bin/env python3\ndef f():\n    \"\"\"Doc.\n\n    \"\"\"\n    return '#x'  # c\n",
		"ruby":       "# c\nputs \"multi\nline\"\n",
		"go":         "package p\n\nconst s = `\n// raw\n`\n// c\n",
		"javascript": "const s = `a // b`;\n/* block */ run();\n",
		"java":       "int x = 1; // c\n",
		"csharp":     "var s = \"//\"; // c\n",
		"rust":       "let s = \"a\nb\"; // c\n",
		"php":        "$x = 1; # c\n",
		"cpp":        "int x = 1; /* c */\n",
		"swift":      "let s = \"//\" // c\n",
	}

	for lang, content := range samples {
		t.Run(lang, func(t *testing.T) {
			once := Minify(content, lang)
			twice := Minify(once, lang)
			if once != twice {
				t.Errorf("Minify() not idempotent: %q then %q", once, twice)
			}
		})
	}
}

// TestSupported tests family registration.
func TestSupported(t *testing.T) {
	if !Supported("python") || !Supported("go") {
		t.Error("Supported() = false for built-in families")
	}
	if Supported("generic") || Supported("") {
		t.Error("Supported() = true for tags without rules")
	}
}
