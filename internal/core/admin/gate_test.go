package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateAdmit(t *testing.T) {
	gate := NewGate("green123")

	tests := []struct {
		name   string
		secret string
		want   bool
	}{
		{name: "correct secret", secret: "green123", want: true},
		{name: "wrong secret", secret: "wrong", want: false},
		{name: "empty submission", secret: "", want: false},
		{name: "prefix only", secret: "green", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.Admit(tt.secret))
		})
	}
}

func TestGateWithEmptySecretAdmitsNobody(t *testing.T) {
	gate := NewGate("")
	assert.False(t, gate.Admit(""))
	assert.False(t, gate.Admit("anything"))
}
