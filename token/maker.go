package token

import "time"

// Maker creates and verifies session tokens. Keeping this behind an
// interface lets the token implementation change without touching the
// middleware or controllers.
type Maker interface {
	CreateToken(username string, duration time.Duration) (string, error)

	VerifyToken(token string) (*Payload, error)
}
