// Package retrieval provides the lexical fallback for free-text chat input
// that matches no scripted trigger. Corpus prompts are ranked against the
// input by token-set overlap (intersection over union) and the best match
// above a threshold is returned.
package retrieval

import (
	"bufio"
	"os"
	"strings"

	"loanbuddy/internal/logging"
)

// Line prefixes of the corpus file. Pairs are blank-line separated:
//
//	Human 1: what documents do i need
//	Human 2: You will need your CNIC, a recent electricity bill ...
const (
	promptPrefix   = "Human 1:"
	responsePrefix = "Human 2:"
)

// Entry is one immutable (prompt, response) pair. Prompts are stored
// pre-tokenized since every query scores against all of them.
type Entry struct {
	Prompt   string
	Response string

	tokens map[string]struct{}
}

// LoadCorpus reads the corpus file. Malformed or truncated pairs are
// dropped; a missing file degrades to an empty corpus so the chat still
// works, just without a fallback.
func LoadCorpus(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Retrieval("no corpus file at %s, fallback disabled", path)
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	var pendingPrompt string
	havePrompt := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			// Pair boundary; an unmatched prompt is dropped.
			havePrompt = false
		case strings.HasPrefix(line, promptPrefix):
			pendingPrompt = strings.TrimSpace(strings.TrimPrefix(line, promptPrefix))
			havePrompt = pendingPrompt != ""
		case strings.HasPrefix(line, responsePrefix):
			response := strings.TrimSpace(strings.TrimPrefix(line, responsePrefix))
			if havePrompt && response != "" {
				entries = append(entries, Entry{
					Prompt:   pendingPrompt,
					Response: response,
					tokens:   tokenSet(pendingPrompt),
				})
			}
			havePrompt = false
		default:
			// Unrecognized line, drop any half-built pair.
			havePrompt = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logging.Retrieval("loaded %d corpus entries from %s", len(entries), path)
	return entries, nil
}
