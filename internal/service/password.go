package service

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const passwordMinLen = 8

// CheckPasswordPolicy valida largo mínimo y presencia de mayúscula,
// minúscula y dígito. Devuelve mensaje vacío si la contraseña cumple.
func CheckPasswordPolicy(password string) string {
	if len(password) < passwordMinLen {
		return "must be at least 8 characters long"
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return "must contain an upper-case letter, a lower-case letter and a digit"
	}
	return ""
}

// HashPassword aplica bcrypt con el costo indicado.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compara en tiempo constante contra el hash almacenado.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
