package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/restaurant-storefront/internal/models"
)

func TestRun_PrintsMatchingHash(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader("correct horse\n"), &out))

	line := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(line, "ADMIN_PASSWORD_HASH="), line)

	pw := models.Password{Hash: strings.TrimPrefix(line, "ADMIN_PASSWORD_HASH=")}
	ok, err := pw.Matches("correct horse")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRun_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	err := run(strings.NewReader(""), &out)
	assert.ErrorIs(t, err, models.ErrEmptyPassword)
	assert.Empty(t, out.String())
}
