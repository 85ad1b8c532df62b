package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReceiptCanVoid(t *testing.T) {
	assert.True(t, Receipt{Status: ReceiptActive}.CanVoid())
	assert.False(t, Receipt{Status: ReceiptActive, IsVerified: true}.CanVoid())
	assert.False(t, Receipt{Status: ReceiptVoidPending}.CanVoid())
	assert.False(t, Receipt{Status: ReceiptVoided}.CanVoid())
}

func TestActorCan(t *testing.T) {
	actor := Actor{Capabilities: []Capability{CapCreateReceipt, CapRequestVoid}}
	assert.True(t, actor.Can(CapCreateReceipt))
	assert.False(t, actor.Can(CapApproveVoid))
	assert.False(t, Actor{}.Can(CapCreateReceipt))
}
