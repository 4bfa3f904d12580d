package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmail(t *testing.T) {
	got := ExtractEmail("contact me at jane.doe@example.co.uk please")
	require.NotNil(t, got)
	assert.Equal(t, "jane.doe@example.co.uk", *got)
}

func TestExtractEmail_FirstMatchWins(t *testing.T) {
	got := ExtractEmail("cc a@b.com and c@d.org")
	require.NotNil(t, got)
	assert.Equal(t, "a@b.com", *got)
}

func TestExtractEmail_None(t *testing.T) {
	assert.Nil(t, ExtractEmail("no address in this sentence"))
	assert.Nil(t, ExtractEmail(""))
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"call 555-123-4567", "555-123-4567"},
		{"reach me on (555) 123-4567 after lunch", "(555) 123-4567"},
		{"dial +1 555.123.4567 anytime", "+1 555.123.4567"},
	}
	for _, tt := range tests {
		got := ExtractPhone(tt.text)
		require.NotNil(t, got, tt.text)
		assert.Equal(t, tt.want, *got)
	}
}

func TestExtractPhone_None(t *testing.T) {
	assert.Nil(t, ExtractPhone("no digits worth dialing here"))
}

func TestExtractCompany_PrecededBySuffix(t *testing.T) {
	got := ExtractCompany("I'm calling from Acme Corp about the renewal")
	require.NotNil(t, got)
	assert.Equal(t, "Acme Corp", *got)
}

func TestExtractCompany_AnywhereFallback(t *testing.T) {
	got := ExtractCompany("Globex Inc has been evaluating your product")
	require.NotNil(t, got)
	assert.Equal(t, "Globex Inc", *got)
}

func TestExtractCompany_None(t *testing.T) {
	assert.Nil(t, ExtractCompany("we are a small family business"))
	assert.Nil(t, ExtractCompany(""))
}
