package atms

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	listCacheKey   = "atms:list"
	addLockPrefix  = "AddAtm_Name_"
	writeKeyHeader = "X-Api-Key"
)

func GetWriteKeyHash(key string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(key), 14)
	return string(bytes), err
}

func CheckWriteKey(key, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	return err == nil
}

// addLockKey guards against double submits of the same marker.
func addLockKey(name string) string {
	return addLockPrefix + strings.ToLower(strings.TrimSpace(name))
}
