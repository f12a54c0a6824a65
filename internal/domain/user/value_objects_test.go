//go:build unit

package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"a@b.co", " guest@club.example.com "} {
		_, err := NewEmail(s)
		assert.NoError(t, err, s)
	}
	for _, s := range []string{"", "nope", "a@b", "Name <a@b.co>"} {
		_, err := NewEmail(s)
		assert.ErrorIs(t, err, ErrInvalidEmail, s)
	}
}

func TestNewPhone(t *testing.T) {
	t.Parallel()

	p, err := NewPhone("081-234 5678")
	require.NoError(t, err)
	assert.Equal(t, "0812345678", p.Value())

	p, err = NewPhone("+66 (81) 234.5678")
	require.NoError(t, err)
	assert.Equal(t, "+66812345678", p.Value())

	for _, s := range []string{"", "1", "0812abc678", "++66812345678"} {
		_, err := NewPhone(s)
		assert.ErrorIs(t, err, ErrInvalidPhone, s)
	}
}
