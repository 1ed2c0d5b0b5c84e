package retrieval

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func entry(prompt, response string) Entry {
	return Entry{Prompt: prompt, Response: response, tokens: tokenSet(prompt)}
}

func TestIoUBounds(t *testing.T) {
	a := tokenSet("what documents do i need")
	b := tokenSet("how long does approval take")

	if got := iou(a, a); got != 1.0 {
		t.Fatalf("iou(x,x) = %v, want 1", got)
	}
	if got := iou(a, b); got != 0.0 {
		t.Fatalf("iou(disjoint) = %v, want 0", got)
	}

	c := tokenSet("what documents are required for approval")
	got := iou(a, c)
	if got <= 0 || got >= 1 {
		t.Fatalf("iou(partial overlap) = %v, want in (0,1)", got)
	}
	// 2 shared tokens (what, documents), 9 distinct total.
	if want := 2.0 / 9.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("iou = %v, want %v", got, want)
	}
}

func TestRespondPicksBestMatch(t *testing.T) {
	r := NewResponder([]Entry{
		entry("how do i apply for a loan", "Type 'apply' to begin a new application."),
		entry("what documents do i need for my application", "You will need CNIC copies, an electricity bill and a salary slip."),
		entry("hello", "Hello! How can I help you today?"),
	})

	got := r.Respond("which documents do i need")
	if want := "You will need CNIC copies, an electricity bill and a salary slip."; got != want {
		t.Fatalf("Respond() = %q, want %q", got, want)
	}
}

func TestRespondTieGoesToFirstEntry(t *testing.T) {
	// Both prompts score identically against the input; replacement needs
	// a strictly greater score, so the first entry wins.
	r := NewResponder([]Entry{
		entry("loan status query", "first"),
		entry("loan status query", "second"),
	})

	if got := r.Respond("loan status query"); got != "first" {
		t.Fatalf("Respond() = %q, want tie broken to first entry", got)
	}
}

func TestRespondThresholdIsInclusive(t *testing.T) {
	// One shared token with a union of ten gives exactly 0.1, which must
	// NOT clear the threshold.
	r := NewResponder([]Entry{
		entry("loan one two three four five", "matched"),
	})

	got := r.Respond("loan six seven eight nine")
	if got != DefaultReply {
		t.Fatalf("Respond(score=0.1) = %q, want the generic reply", got)
	}
}

func TestRespondEmptyCorpus(t *testing.T) {
	r := NewResponder(nil)
	if got := r.Respond("anything at all"); got != DefaultReply {
		t.Fatalf("Respond(empty corpus) = %q, want the generic reply", got)
	}
}

func TestRespondCaseInsensitive(t *testing.T) {
	r := NewResponder([]Entry{
		entry("What Documents Do I Need", "docs answer"),
	})
	if got := r.Respond("WHAT DOCUMENTS DO I NEED"); got != "docs answer" {
		t.Fatalf("Respond() = %q, want case-insensitive match", got)
	}
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	content := `Human 1: hello
Human 2: Hello! How can I help you today?

Human 1: what documents do i need
Human 2: You will need CNIC copies, an electricity bill and a salary slip.

Human 1: truncated pair with no response

Human 2: orphan response without a prompt

Human 1: how long does approval take
Human 2: Approval usually takes five working days.
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}

	entries, err := LoadCorpus(path)
	if err != nil {
		t.Fatalf("LoadCorpus() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3 (malformed pairs dropped)", len(entries))
	}
	if entries[0].Prompt != "hello" || entries[2].Response != "Approval usually takes five working days." {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestLoadCorpusMissingFile(t *testing.T) {
	entries, err := LoadCorpus(filepath.Join(t.TempDir(), "nope.txt"))
	if err != nil {
		t.Fatalf("LoadCorpus(missing) error: %v, want graceful degradation", err)
	}
	if len(entries) != 0 {
		t.Fatalf("len(entries) = %d, want 0", len(entries))
	}
}
