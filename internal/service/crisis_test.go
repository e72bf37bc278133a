package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrisisDetector(t *testing.T) {
	d := NewCrisisDetector()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"exact phrase", "i want to die", true},
		{"mixed case", "I want to DIE", true},
		{"phrase inside sentence", "sometimes I feel like I can't go on anymore", true},
		{"hyphenated variant", "I've been thinking about self-harm", true},
		{"unrelated text", "I had a rough day at work", false},
		{"empty", "", false},
		{"near miss", "my phone died again", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.text))
		})
	}
}
