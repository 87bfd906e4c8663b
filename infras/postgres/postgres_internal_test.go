package postgres

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint_DSN(t *testing.T) {
	e := endpoint{
		host: "db.internal", port: "5432", username: "lodging", password: "p@ss:word",
		name: "test_lodging", sslMode: "disable",
	}

	parsed, err := url.Parse(e.DSN())
	require.NoError(t, err)

	password, _ := parsed.User.Password()

	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/test_lodging", parsed.Path)
	assert.Equal(t, "p@ss:word", password)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "UTC", parsed.Query().Get("timezone"))

	e.timezone = "America/Sao_Paulo"
	parsed, err = url.Parse(e.DSN())
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", parsed.Query().Get("timezone"))
}
