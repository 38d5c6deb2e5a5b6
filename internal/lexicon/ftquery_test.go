package lexicon

import (
	"strings"
	"testing"
)

func TestBuildFTQuery_Empty(t *testing.T) {
	if got := BuildFTQuery(nil); got != "" {
		t.Errorf("expected empty query, got %q", got)
	}
	if got := BuildFTQuery([]string{}); got != "" {
		t.Errorf("expected empty query, got %q", got)
	}
}

func TestBuildFTQuery_ClauseShape(t *testing.T) {
	got := BuildFTQuery([]string{"physics"})

	for _, want := range []string{"@title:physics", "@author:physics", "@title:physics*"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected clause %q in %q", want, got)
		}
	}
	if !strings.Contains(got, " | ") {
		t.Errorf("clauses must be OR-joined, got %q", got)
	}
}

func TestBuildFTQuery_WildcardLengthGate(t *testing.T) {
	got := BuildFTQuery([]string{"dsa"})

	if !strings.Contains(got, "@title:dsa") {
		t.Errorf("expected exact title clause, got %q", got)
	}
	if strings.Contains(got, "dsa*") {
		t.Errorf("short token must not get a prefix clause, got %q", got)
	}
}

func TestBuildFTQuery_MultiWordAlias(t *testing.T) {
	got := BuildFTQuery([]string{"compiler design"})

	for _, want := range []string{"@title:compiler", "@title:design", "@author:compiler", "@author:design"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected per-word clause %q in %q", want, got)
		}
	}
	if strings.Contains(got, "compilerdesign") {
		t.Errorf("alias words must not be concatenated, got %q", got)
	}
}

func TestBuildFTQuery_SpecialCharactersStripped(t *testing.T) {
	got := BuildFTQuery([]string{"c++"})

	if strings.Contains(got, "+") {
		t.Errorf("query syntax characters must be stripped, got %q", got)
	}
	if !strings.Contains(got, "@title:c") {
		t.Errorf("expected stripped token clause, got %q", got)
	}
}

func TestBuildFTQuery_Dedup(t *testing.T) {
	got := BuildFTQuery([]string{"data", "data", "data structures"})

	if n := strings.Count(got, "@title:data |"); n > 1 {
		t.Errorf("duplicate token produced %d title clauses: %q", n, got)
	}
	if !strings.Contains(got, "@title:structures") {
		t.Errorf("expected clause for second alias word, got %q", got)
	}
}

func TestBuildFTQuery_ExpandedSet(t *testing.T) {
	lex := Build(nil)
	tokens := lex.Expand("dsa books")

	got := BuildFTQuery(tokens)
	for _, want := range []string{
		"@title:dsa", "@title:data", "@title:structures", "@title:algorithms",
		"@title:structures*", "@title:algorithms*",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected clause %q in %q", want, got)
		}
	}
}
