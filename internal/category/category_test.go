package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	c, ok := Lookup("support")
	assert.True(t, ok)
	assert.Equal(t, "Support", c.Label)
	assert.NotEmpty(t, c.Color)

	_, ok = Lookup("Support")
	assert.False(t, ok, "lookup is case sensitive")

	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestIsValid(t *testing.T) {
	for _, name := range Names() {
		assert.True(t, IsValid(name), "expected %s to be valid", name)
	}
	for _, name := range []string{"", "spam", "LOVE", " love"} {
		assert.False(t, IsValid(name), "expected %q to be invalid", name)
	}
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, "bg-pink-100 text-pink-800 border-pink-300", ColorOf("love"))
	assert.Equal(t, DefaultColor, ColorOf("unknown"))
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	assert.Len(t, all, len(Names()))
	all[0].Name = "changed"
	assert.Equal(t, "love", All()[0].Name)
}
