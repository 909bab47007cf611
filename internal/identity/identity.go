// File: internal/identity/identity.go
package identity

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/Volas171/handlegen/internal/config"
)

// Alphabet is the set of characters a generated password is drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// punctuation is the ASCII punctuation set removed from titles.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ErrEmptyName is returned when a title contains nothing usable after filtering.
var ErrEmptyName = errors.New("title filtered to an empty name")

// Identity is one generated handle and its password.
type Identity struct {
	Name     string
	Suffix   int
	Password string
}

// Username is the name followed by its numeric suffix.
func (i Identity) Username() string {
	return i.Name + strconv.Itoa(i.Suffix)
}

// Generator produces identities within the configured bounds.
type Generator struct {
	cfg    config.IdentityConfig
	random io.Reader
}

// NewGenerator returns a Generator backed by crypto/rand.
func NewGenerator(cfg config.IdentityConfig) (*Generator, error) {
	return NewGeneratorWithReader(cfg, rand.Reader)
}

// NewGeneratorWithReader returns a Generator drawing randomness from r.
func NewGeneratorWithReader(cfg config.IdentityConfig, r io.Reader) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, random: r}, nil
}

// Password returns a password of exactly the configured length over Alphabet.
func (g *Generator) Password() (string, error) {
	var sb strings.Builder
	sb.Grow(g.cfg.PasswordLength)
	for range g.cfg.PasswordLength {
		idx, err := g.intn(len(Alphabet))
		if err != nil {
			return "", fmt.Errorf("generating password: %w", err)
		}
		sb.WriteByte(Alphabet[idx])
	}
	return sb.String(), nil
}

// NameLength picks a truncation length in [NameMinLength, NameMaxLength].
func (g *Generator) NameLength() (int, error) {
	return g.between(g.cfg.NameMinLength, g.cfg.NameMaxLength)
}

// Suffix picks a numeric suffix in [SuffixMin, SuffixMax].
func (g *Generator) Suffix() (int, error) {
	return g.between(g.cfg.SuffixMin, g.cfg.SuffixMax)
}

// Derive turns a scraped title into a complete identity. It returns
// ErrEmptyName when the title has no letters left after Sanitize.
func (g *Generator) Derive(title string) (Identity, error) {
	name := Sanitize(title)
	if name == "" {
		return Identity{}, fmt.Errorf("%w: %q", ErrEmptyName, title)
	}

	n, err := g.NameLength()
	if err != nil {
		return Identity{}, fmt.Errorf("choosing name length: %w", err)
	}
	suffix, err := g.Suffix()
	if err != nil {
		return Identity{}, fmt.Errorf("choosing suffix: %w", err)
	}
	password, err := g.Password()
	if err != nil {
		return Identity{}, err
	}

	return Identity{Name: Truncate(name, n), Suffix: suffix, Password: password}, nil
}

// Sanitize strips ASCII punctuation, digits and anything outside printable
// ASCII from s, then joins its whitespace-separated tokens.
func Sanitize(s string) string {
	filtered := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return -1
		case strings.ContainsRune(punctuation, r):
			return -1
		case r > '~' || (r < ' ' && !isASCIISpace(r)):
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(filtered), "")
}

// Truncate returns at most n leading characters of s.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func isASCIISpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func (g *Generator) between(lo, hi int) (int, error) {
	n, err := g.intn(hi - lo + 1)
	if err != nil {
		return 0, err
	}
	return lo + n, nil
}

func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
