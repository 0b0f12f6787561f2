package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the stored credential for a plain password.
// bcrypt embeds the cost in the output, so verification needs no
// extra state.
func HashPassword(plain string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// PasswordMatches reports whether plain is the password behind hash.
// Any comparison failure, malformed hash included, counts as a
// mismatch.
func PasswordMatches(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
