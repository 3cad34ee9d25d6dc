package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// SHA512("FEE-3f2a" + "200" + "60500.00" + "SB-Mid-server-test")
const notifSignature = "e5651f0d9193e2437b09be5f2fed84c45677fe7df01a6f175687e1638e6cc337" +
	"72753c53ef0af8936d27b7f0cda8258255272a79f834d8a2aff1aa328b064e00"

func TestSignatureMatches(t *testing.T) {
	assert.True(t, SignatureMatches("FEE-3f2a", "200", "60500.00", "SB-Mid-server-test", notifSignature))
}

func TestSignatureMatchesIgnoresCase(t *testing.T) {
	assert.True(t, SignatureMatches("FEE-3f2a", "200", "60500.00", "SB-Mid-server-test",
		strings.ToUpper(notifSignature)))
}

func TestSignatureMatchesRejectsForgery(t *testing.T) {
	assert.False(t, SignatureMatches("FEE-3f2a", "200", "60500.00", "wrong-key", notifSignature))
	assert.False(t, SignatureMatches("FEE-3f2a", "200", "99999.00", "SB-Mid-server-test", notifSignature))
	assert.False(t, SignatureMatches("FEE-3f2a", "200", "60500.00", "SB-Mid-server-test", ""))
}
