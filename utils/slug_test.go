package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   inner\tspaces", "multiple-inner-spaces"},
		{"Already-Hyphenated Title", "already-hyphenated-title"},
		{"UPPER", "upper"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.in), "Slugify(%q)", c.in)
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("Passw0rd!")
	assert.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", hash)
	assert.True(t, CheckPasswordHash("Passw0rd!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
