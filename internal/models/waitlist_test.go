package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReferralCode(t *testing.T) {
	code, err := NewReferralCode()
	assert.NoError(t, err)
	assert.Len(t, code, ReferralCodeLength)

	for _, r := range code {
		assert.True(t, strings.ContainsRune(referralCodeAlphabet, r), "unexpected symbol %q", r)
	}
}

func TestNewReferralCode_AvoidsAmbiguousSymbols(t *testing.T) {
	assert.NotContains(t, referralCodeAlphabet, "0")
	assert.NotContains(t, referralCodeAlphabet, "O")
	assert.NotContains(t, referralCodeAlphabet, "1")
	assert.NotContains(t, referralCodeAlphabet, "I")
}

func TestNewReferralCode_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := NewReferralCode()
		assert.NoError(t, err)
		assert.False(t, seen[code], "collision on %s", code)
		seen[code] = true
	}
}
