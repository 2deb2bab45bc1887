package security

import "golang.org/x/crypto/bcrypt"

// BcryptVerifier compara contraseñas en texto plano contra hashes bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier construye el verificador.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Verify reporta si la contraseña corresponde al hash.
func (BcryptVerifier) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashPassword genera un hash bcrypt con el costo por defecto. Se usa al
// registrar usuarios por fuera del flujo de login (seeds, scripts de alta).
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
