package admin

import "crypto/subtle"

// Gate authorizes entry to the admin dashboard by comparing a submitted
// secret against a single fixed value. There is no per-user identity and
// no expiry.
//
// This is explicitly NOT a security boundary: the hosted store enforces no
// corresponding access control, so the gate only keeps casual visitors out
// of the dashboard UI. Real authorization belongs in the gateway/store
// layer (row-level policies) and should be moved there.
type Gate struct {
	secret string
}

// NewGate creates a gate for the configured shared secret.
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Admit reports whether the submitted secret grants entry. The comparison
// is constant-time; an empty configured secret admits nobody.
func (g *Gate) Admit(secret string) bool {
	if g.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(g.secret)) == 1
}
