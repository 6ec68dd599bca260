package segment

import "testing"

func TestClusters(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Cluster
	}{
		{name: "empty", in: "", want: nil},
		{name: "ascii", in: "ab", want: []Cluster{
			{From: 0, To: 1, Text: "a"},
			{From: 1, To: 2, Text: "b"},
		}},
		{name: "combining", in: "éx", want: []Cluster{
			{From: 0, To: 3, Text: "é"},
			{From: 3, To: 4, Text: "x"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Clusters(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("Clusters(%q) = %v, want %v", tc.in, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("cluster %d: got %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestCount(t *testing.T) {
	if got := Count("née"); got != 3 {
		t.Fatalf("Count: got %d, want 3", got)
	}
	if got := Count(""); got != 0 {
		t.Fatalf("Count empty: got %d, want 0", got)
	}
}

func TestBoundaries(t *testing.T) {
	text := "aéb" // 'é' occupies two bytes

	if got := NextBoundary(text, 0); got != 1 {
		t.Fatalf("NextBoundary(0): got %d, want 1", got)
	}
	if got := NextBoundary(text, 1); got != 3 {
		t.Fatalf("NextBoundary(1): got %d, want 3", got)
	}
	if got := NextBoundary(text, len(text)); got != len(text) {
		t.Fatalf("NextBoundary(end): got %d, want %d", got, len(text))
	}

	if got := PrevBoundary(text, 3); got != 1 {
		t.Fatalf("PrevBoundary(3): got %d, want 1", got)
	}
	if got := PrevBoundary(text, 0); got != 0 {
		t.Fatalf("PrevBoundary(0): got %d, want 0", got)
	}
	if got := PrevBoundary(text, len(text)); got != 3 {
		t.Fatalf("PrevBoundary(end): got %d, want 3", got)
	}
}

func TestWidth(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{in: "abc", want: 3},
		{in: "日本", want: 4},
		{in: "", want: 0},
	}
	for _, tc := range cases {
		if got := Width(tc.in); got != tc.want {
			t.Fatalf("Width(%q): got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestIsSpace(t *testing.T) {
	if !IsSpace(" ") || !IsSpace("\t") {
		t.Fatal("expected whitespace clusters to report true")
	}
	if IsSpace("a") || IsSpace("") {
		t.Fatal("expected non-space clusters to report false")
	}
}
