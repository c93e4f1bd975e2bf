package lang

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		path string
		want Tag
	}{
		{"main.go", Go},
		{"pkg/foo/bar.go", Go},
		{"app.py", Python},
		{"component.tsx", TSX},
		{"component.test.tsx", TSX},
		{"types.d.ts", TypeScript},
		{"index.ts", TypeScript},
		{"index.js", JavaScript},
		{"Main.java", Java},
		{"vector.cpp", Cpp},
		{"vector.hpp", Cpp},
		{"lib.rs", Rust},
		{"app.rb", Ruby},
		{"App.kt", Kotlin},
		{"App.swift", Swift},
		{"index.php", PHP},
		{"Dockerfile", Dockerfile},
		{"Makefile", Make},
		{"CMakeLists.txt", CMake},
		{"README.md", Unknown},
		{"archive.tar.gz", Unknown},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			if got := Detect(tc.path); got != tc.want {
				t.Errorf("Detect(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestDetectIsPure(t *testing.T) {
	paths := []string{"main.go", "app.py", "unknown.xyz"}
	for _, p := range paths {
		first := Detect(p)
		for i := 0; i < 10; i++ {
			if got := Detect(p); got != first {
				t.Fatalf("Detect(%q) not stable across calls: %q vs %q", p, got, first)
			}
		}
	}
}
