package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContinue(t *testing.T) {
	o := Continue
	assert.True(t, o.IsContinue())
	assert.False(t, o.IsExit())
}

func TestExitCallback(t *testing.T) {
	o := ExitCallback(3)
	assert.True(t, o.IsExit())
	s := o.AsSuccess()
	assert.Equal(t, SuccessCallback, s.Kind)
	assert.Equal(t, 3, s.N)
}

func TestExitEos(t *testing.T) {
	o := ExitEos(0)
	s := o.AsSuccess()
	assert.Equal(t, SuccessEos, s.Kind)
	assert.Equal(t, 0, s.N)
}

func TestExitFinished(t *testing.T) {
	o := ExitFinished(7)
	s := o.AsSuccess()
	assert.Equal(t, SuccessFinished, s.Kind)
	assert.Equal(t, 7, s.N)
}

func TestAsSuccessPanicsOnContinue(t *testing.T) {
	assert.Panics(t, func() {
		Continue.AsSuccess()
	})
}

func TestSuccessString(t *testing.T) {
	assert.Equal(t, "Success::Callback(1)", Success{Kind: SuccessCallback, N: 1}.String())
	assert.Equal(t, "Success::Eos(0)", Success{Kind: SuccessEos, N: 0}.String())
	assert.Equal(t, "Success::Finished(5)", Success{Kind: SuccessFinished, N: 5}.String())
}
