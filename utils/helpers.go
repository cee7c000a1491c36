package utils

import (
	"crypto/rand"
	"strings"
)

// InviteCodeAlphabet excludes visually confusable characters (I, O, 0, 1)
const InviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// InviteCodeLength is the number of characters in a generated invite code
const InviteCodeLength = 8

// GenerateInviteCode returns a random code drawn from the unambiguous
// alphabet. The 32^8 keyspace makes collisions practically negligible;
// writes still guard with a put-if-absent condition.
func GenerateInviteCode() string {
	buf := make([]byte, InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	for i, b := range buf {
		buf[i] = InviteCodeAlphabet[int(b)%len(InviteCodeAlphabet)]
	}
	return string(buf)
}

// NetIDFromEmail derives the canonical handle: the local part of the email,
// lower-cased
func NetIDFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(email)), "@")
	return local
}

// CanonicalPair orders two user ids lexicographically so an unordered pair
// always maps to the same (a, b) key
func CanonicalPair(x, y string) (string, string) {
	if x < y {
		return x, y
	}
	return y, x
}
