package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvInt(t *testing.T) {
	t.Setenv("EMR_TEST_INT", "42")
	assert.Equal(t, 42, GetEnvInt("EMR_TEST_INT", 7))

	t.Setenv("EMR_TEST_INT", "forty-two")
	assert.Equal(t, 7, GetEnvInt("EMR_TEST_INT", 7))

	assert.Equal(t, 7, GetEnvInt("EMR_TEST_INT_MISSING", 7))
}

func TestGetEnvStringSlice(t *testing.T) {
	t.Setenv("EMR_TEST_ORIGINS", "http://a.test, http://b.test,,")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetEnvStringSlice("EMR_TEST_ORIGINS", nil))

	t.Setenv("EMR_TEST_ORIGINS", " , ")
	assert.Equal(t, []string{"*"}, GetEnvStringSlice("EMR_TEST_ORIGINS", []string{"*"}))

	assert.Equal(t, []string{"*"}, GetEnvStringSlice("EMR_TEST_ORIGINS_MISSING", []string{"*"}))
}
