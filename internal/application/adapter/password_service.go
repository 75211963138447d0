// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// HashPassword derives a storable hash from a plain text password.
	HashPassword(password string) (string, error)

	// VerifyPassword checks a plain text password against a stored hash.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength rejects passwords below the minimum strength.
	ValidatePasswordStrength(password string) error
}
