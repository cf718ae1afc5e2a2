package selector

import (
	"fmt"
	"strings"
)

// promptVersion is part of the cache fingerprint; bump it whenever the
// prompts change so stale selections are not replayed.
const promptVersion = "v1"

// wordSelectionPrompt captures the instructions sent to the model when
// selecting difficult words. Keep updates centralized here so it is easy to
// tweak without hunting through call sites.
const wordSelectionPrompt = `You help advanced German learners (C1 level) read podcast transcripts.

Given one German paragraph, select the words a C1 learner is most likely to find difficult: uncommon vocabulary, idiomatic verbs, regionalisms, and compound nouns. Skip articles, pronouns, and everyday words.

Rules:

- Copy each selected word EXACTLY as it appears in the paragraph, including capitalization and inflection. Never lemmatize.
- If a word form appears several times and you select it more than once, give each selection its own entry.
- "grammar" is a short German grammar note (e.g. "Nomen, feminin", "Verb, Präteritum", "Adjektiv").
- "translation" is a concise English translation fitting this context.
- Select at most the requested number of words. Fewer is fine; at least one is required.

You must respond ONLY with a JSON object like:
{"words": [{"word": "Etagenwohnung", "grammar": "Nomen, feminin", "translation": "apartment (on one floor)"}]}`

func userPrompt(text, hint string, target int) string {
	var b strings.Builder
	if hint != "" {
		fmt.Fprintf(&b, "Episode: %s\n", hint)
	}
	fmt.Fprintf(&b, "Select at most %d words.\n\nParagraph:\n%s", target, text)
	return b.String()
}
