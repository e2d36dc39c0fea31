package textfold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "sekretariat", Fold("Sékretariat"))
	assert.Equal(t, "bid. sda", Fold("BID. SDA"))
	assert.Equal(t, "", Fold(""))
}

func TestMatcher(t *testing.T) {
	m := NewMatcher("  andré ")
	assert.False(t, m.Empty())
	assert.True(t, m.Match("Budi", "ANDRE Wijaya"))
	assert.False(t, m.Match("Budi", "Sekretariat"))

	spanning := NewMatcher("wijaya 1979")
	assert.True(t, spanning.Match("Andre Wijaya", "197901012005011001", "Bid. SDA"))
	assert.False(t, spanning.Match("Andre Wijaya", "Bid. SDA", "197901012005011001"))

	all := NewMatcher("")
	assert.True(t, all.Empty())
	assert.True(t, all.Match())
}
