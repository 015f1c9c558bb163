package state

import "testing"

func TestBestMatchIndex(t *testing.T) {
	options := []string{"Joined", "Suggested", "Owned"}
	cases := []struct {
		query string
		want  int
	}{
		{"", 0},
		{"owned", 2},
		{"sug", 1},
		{"ned", 0},
		{"jnd", 0},
		{"xyz", -1},
	}
	for _, tc := range cases {
		if got := BestMatchIndex(options, tc.query); got != tc.want {
			t.Fatalf("BestMatchIndex(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
	if BestMatchIndex(nil, "") != -1 {
		t.Fatal("expected -1 for no options")
	}
}

func TestMatchOptions(t *testing.T) {
	options := []string{"Mine", "Moderated", "Recent"}
	got := MatchOptions(options, "mi")
	if len(got) != 1 || got[0] != "Mine" {
		t.Fatalf("unexpected matches %v", got)
	}
	if all := MatchOptions(options, " "); len(all) != 3 {
		t.Fatalf("expected every option for blank query, got %v", all)
	}
}
