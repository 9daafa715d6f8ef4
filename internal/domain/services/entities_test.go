package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractURLs(t *testing.T) {
	e := NewEntityExtractor()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "http url",
			input:    "visit http://example.com/login now",
			expected: []string{"http://example.com/login"},
		},
		{
			name:     "https url",
			input:    "https://secure-bank.xyz/verify",
			expected: []string{"https://secure-bank.xyz/verify"},
		},
		{
			name:     "bare shortener without scheme",
			input:    "click bit.ly/abc123 to claim",
			expected: []string{"bit.ly/abc123"},
		},
		{
			name:     "multiple urls keep order",
			input:    "first http://a.com then http://b.com",
			expected: []string{"http://a.com", "http://b.com"},
		},
		{
			name:     "no urls",
			input:    "plain text message",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.expected, e.ExtractURLs(tt.input))
		})
	}
}

func TestExtractPhoneNumbers(t *testing.T) {
	e := NewEntityExtractor()

	t.Run("bare ten digit number", func(t *testing.T) {
		phones := e.ExtractPhoneNumbers("call 9876543210 today")
		assert.Contains(t, phones, "9876543210")
	})

	t.Run("country prefix number", func(t *testing.T) {
		phones := e.ExtractPhoneNumbers("call +91 9876543210")
		assert.Contains(t, phones, "+91 9876543210")
	})

	t.Run("split five-five groups", func(t *testing.T) {
		phones := e.ExtractPhoneNumbers("call 98765 43210")
		assert.Contains(t, phones, "98765 43210")
	})

	t.Run("no numbers yields empty slice", func(t *testing.T) {
		phones := e.ExtractPhoneNumbers("no digits here")
		assert.NotNil(t, phones)
		assert.Empty(t, phones)
	})
}

func TestExtractionIsPure(t *testing.T) {
	e := NewEntityExtractor()
	input := "visit http://example.com or call 9876543210"

	first := e.ExtractURLs(input)
	second := e.ExtractURLs(input)
	assert.Equal(t, first, second)

	firstPhones := e.ExtractPhoneNumbers(input)
	secondPhones := e.ExtractPhoneNumbers(input)
	assert.Equal(t, firstPhones, secondPhones)
}
