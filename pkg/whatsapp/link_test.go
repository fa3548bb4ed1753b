package whatsapp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatURL(t *testing.T) {
	b := NewLinkBuilder("", "")
	msg := "Monthly Bill - 2024-03\nGrand total: ₹95 & more"

	raw := b.ChatURL("919900000001", msg)
	assert.Contains(t, raw, "https://wa.me/919900000001?text=")
	assert.NotContains(t, raw, "+")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/919900000001", u.Path)
	assert.Equal(t, msg, u.Query().Get("text"))
}

func TestNormalizePhone(t *testing.T) {
	b := NewLinkBuilder("https://example.test/", "91")
	assert.Equal(t, "919876543210", b.NormalizePhone("98765 43210"))
	assert.Equal(t, "919876543210", b.NormalizePhone("+91 98765-43210"))
	assert.Equal(t, "12345", b.NormalizePhone("12345"))
	assert.Equal(t, "https://example.test/919876543210?text=hi", b.ChatURL("9876543210", "hi"))

	plain := NewLinkBuilder("", "")
	assert.Equal(t, "9876543210", plain.NormalizePhone("9876543210"))
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "a%20b%0Ac", EscapeText("a b\nc"))
	assert.Equal(t, "1%2B1", EscapeText("1+1"))
	assert.Equal(t, "Thank%20you!%20(*'~-_.)", EscapeText("Thank you! (*'~-_.)"))
	assert.Equal(t, "%2521%20%E2%82%B960", EscapeText("%21 ₹60"))
}
