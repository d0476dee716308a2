package service

import "fmt"

// systemInstruction frames both stages. The exact-"0" rule lets the fast
// model report that it does not know instead of guessing.
const systemInstruction = `You write short, factual descriptions of stores and merchants to help shoppers decide whether to trust them before buying.

Write 3 to 5 sentences of plain prose, each roughly 15 to 20 words. Cover what you confidently know about:
- scale (number of locations, customers, or revenue)
- history (founding year, founders, headquarters)
- main offerings and categories
- notable achievements or awards
- trust signals (certifications, return policies, reputation)

Do not use lists, headings, markdown, or links. Do not speculate or invent facts.
If you do not have confident knowledge of this specific store, respond with exactly: 0`

// buildPrompt creates the user prompt for a store identifier (name or URL).
func buildPrompt(identifier string) string {
	return fmt.Sprintf("Describe the store %q.", identifier)
}

// buildSearchPrompt combines instruction and prompt for the web-search call,
// which takes a single input text.
func buildSearchPrompt(identifier string) string {
	return systemInstruction + "\n\n" + buildPrompt(identifier)
}
