package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSide(t *testing.T) {
	// токен выбранного исхода всегда покупается
	assert.Equal(t, "buy", SideUp.ExchangeSide())
	assert.Equal(t, "buy", SideDown.ExchangeSide())
	assert.Equal(t, "", SideNone.ExchangeSide())

	assert.Equal(t, "green", SideUp.ExpectedHeikenColor())
	assert.Equal(t, "red", SideDown.ExpectedHeikenColor())

	assert.True(t, SideUp.Valid())
	assert.True(t, SideDown.Valid())
	assert.False(t, SideNone.Valid())
	assert.False(t, Side("SIDEWAYS").Valid())
}

func TestOrderResultRef(t *testing.T) {
	assert.Equal(t, "a", OrderResult{OrderID: "a", ID: "b"}.Ref())
	assert.Equal(t, "b", OrderResult{ID: "b"}.Ref())
	assert.Equal(t, "", OrderResult{}.Ref())
}

func TestCredentialsComplete(t *testing.T) {
	assert.True(t, Credentials{APIKey: "k", APISecret: "s", APIPassphrase: "p"}.Complete())
	assert.False(t, Credentials{APIKey: "k", APISecret: "s"}.Complete())
	assert.False(t, Credentials{}.Complete())
}

func TestMissing(t *testing.T) {
	assert.True(t, math.IsNaN(Missing()))
}
