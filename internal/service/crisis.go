package service

import "strings"

// crisisPhrases are matched case-insensitively as substrings. The list is
// fixed: crisis handling must never depend on configuration or on model
// availability.
var crisisPhrases = []string{
	"wanna die", "want to die", "kill myself", "end my life",
	"suicide", "suicidal", "self harm", "self-harm", "no reason to live",
	"can't go on", "cant go on", "better off dead", "end it all",
	"don't want to live", "dont want to live", "harm myself",
}

// CrisisDetector flags messages containing self-harm or suicide-risk phrases.
type CrisisDetector struct{}

func NewCrisisDetector() *CrisisDetector {
	return &CrisisDetector{}
}

// Detect reports whether the text contains any crisis phrase. Pure and
// synchronous; evaluated before any model dispatch.
func (d *CrisisDetector) Detect(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range crisisPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
