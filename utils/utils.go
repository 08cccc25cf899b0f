package utils

import (
	"math/rand"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const TextAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

// RandomText returns length characters drawn with replacement from
// TextAlphabet.
func RandomText(rng *rand.Rand, length int) string {
	if length <= 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = TextAlphabet[rng.Intn(len(TextAlphabet))]
	}
	return string(b)
}

func PickOne(rng *rand.Rand, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.Intn(len(pool))]
}

func SampleUnique(rng *rand.Rand, pool []string, n int) []string {
	if n <= 0 || len(pool) == 0 {
		return []string{}
	}
	if n > len(pool) {
		n = len(pool)
	}
	perm := rng.Perm(len(pool))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pool[perm[i]]
	}
	return out
}

// SampleSubset picks a random size between 1 and len(pool) and returns that
// many distinct entries of pool in random order.
func SampleSubset(rng *rand.Rand, pool []string) []string {
	if len(pool) == 0 {
		return []string{}
	}
	return SampleUnique(rng, pool, rng.Intn(len(pool))+1)
}

// Dedupe drops empty and repeated entries, keeping first occurrences.
func Dedupe(pool []string) []string {
	seen := make(map[string]struct{}, len(pool))
	out := make([]string, 0, len(pool))
	for _, p := range pool {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func ParseCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return Dedupe(strings.Split(s, ","))
}

func Hash(str string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(str), bcrypt.DefaultCost)
	return string(hashed), err
}

// MaskURI hides the password of a connection string so it can be printed.
func MaskURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.User == nil {
		return uri
	}
	if _, ok := u.User.Password(); !ok {
		return uri
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}
