package domain

// AIModel is one entry from the OpenRouter models listing.
type AIModel struct {
	ID              string
	PromptPrice     string
	CompletionPrice string
}

// IsFree reports whether both advertised prices are the literal zero string,
// as returned on the wire. Anything else, including "0.0", counts as paid.
func (m AIModel) IsFree() bool {
	return m.PromptPrice == "0" && m.CompletionPrice == "0"
}
