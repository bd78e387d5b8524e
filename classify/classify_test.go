package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsToken(t *testing.T) {
	assert.True(t, IsToken('G'))
	assert.True(t, IsToken('-'))
	assert.True(t, IsToken('9'))
	assert.False(t, IsToken(' '))
	assert.False(t, IsToken(':'))
	assert.False(t, IsToken('"'))
}

func TestIsSeparator(t *testing.T) {
	assert.True(t, IsSeparator(':'))
	assert.True(t, IsSeparator('('))
	assert.True(t, IsSeparator(' '))
	assert.True(t, IsSeparator('\t'))
	assert.False(t, IsSeparator('G'))
	assert.False(t, IsSeparator('-'))
}

func TestIsEncoded(t *testing.T) {
	assert.True(t, IsEncoded(' '))
	assert.True(t, IsEncoded('<'))
	assert.True(t, IsEncoded('>'))
	assert.True(t, IsEncoded('{'))
	assert.True(t, IsEncoded(0x00))
	assert.True(t, IsEncoded(0xFF))
	assert.False(t, IsEncoded('a'))
	assert.False(t, IsEncoded('Z'))
	assert.False(t, IsEncoded('0'))
	assert.False(t, IsEncoded('-'))
	assert.False(t, IsEncoded('_'))
	assert.False(t, IsEncoded('.'))
}

func TestIsVisible7Bit(t *testing.T) {
	assert.True(t, IsVisible7Bit('!'))
	assert.True(t, IsVisible7Bit('~'))
	assert.False(t, IsVisible7Bit(' '))
	assert.False(t, IsVisible7Bit(0x7F))
	assert.False(t, IsVisible7Bit(0x20))
}

func TestHex(t *testing.T) {
	for b := byte(0); b < 255; b++ {
		want := (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
		assert.Equal(t, want, IsHex(b), "byte %x", b)
	}
	assert.Equal(t, byte(0), HexValue('0'))
	assert.Equal(t, byte(9), HexValue('9'))
	assert.Equal(t, byte(10), HexValue('a'))
	assert.Equal(t, byte(15), HexValue('f'))
	assert.Equal(t, byte(10), HexValue('A'))
	assert.Equal(t, byte(15), HexValue('F'))
}
