package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSSLMode(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db/cells":                 "postgres://u:p@db/cells?sslmode=require",
		"postgresql://db/cells?connect_timeout=5": "postgresql://db/cells?connect_timeout=5&sslmode=require",
		"user=postgres dbname=cells":              "user=postgres dbname=cells sslmode=require",
		"postgres://db/cells?sslmode=disable":     "postgres://db/cells?sslmode=disable",
		"user=postgres sslmode=verify-full":       "user=postgres sslmode=verify-full",
	}
	for in, want := range tests {
		assert.Equal(t, want, WithSSLMode(in), in)
	}
}
