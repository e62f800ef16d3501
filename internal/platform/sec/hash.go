// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// decoyHash is compared against when the account does not exist, so unknown
// emails cost the same bcrypt work as wrong passwords.
var decoyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("fleetadmin-decoy-password"), bcrypt.DefaultCost)
	return hash
})

// HashPassword hashes a plain-text password using the bcrypt algorithm.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// BurnPasswordCheck performs a comparison that always fails.
func BurnPasswordCheck(plainTextPassword string) {
	_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(plainTextPassword))
}
