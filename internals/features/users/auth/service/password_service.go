package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// TempPassword is assigned to accounts created on someone's behalf; owners
// change it on first login.
const TempPassword = "TempPass123!"

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// GenerateAccountID: 6-digit numeric id for staff accounts. Uniqueness is the
// caller's job.
func GenerateAccountID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "100000"
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// GenerateRecoveryCode: 8-char uppercase hex, handed to staff by an admin.
func GenerateRecoveryCode() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "00000000"
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}
