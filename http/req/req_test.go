package req_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/http/req"
)

type resolveQuery struct {
	Path  string `schema:"path" validate:"required,abspath"`
	Limit int    `schema:"limit" validate:"omitempty,gt=0"`
}

func TestParserParseQueryParams(t *testing.T) {
	// Arrange
	parser := req.NewParser()

	// Act
	err := parser.ParseQueryParams(url.Values{}, resolveQuery{})

	// Assert
	require.ErrorIs(t, err, cryptodash.ErrBadAny)

	// Arrange
	var actual req.ValidationErrors
	var output resolveQuery

	// Act
	err = parser.ParseQueryParams(url.Values{"limit": []string{"many"}}, &output)

	// Assert
	require.ErrorIs(t, err, cryptodash.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Len(t, actual, 1)
	require.Equal(t, "limit", actual[0].Field)
	require.Equal(t, "must be int", actual[0].Rule)

	// Arrange
	output = resolveQuery{}

	// Act
	err = parser.ParseQueryParams(url.Values{"path": []string{"//evil.example"}, "limit": []string{"-1"}}, &output)

	// Assert
	require.ErrorIs(t, err, cryptodash.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Len(t, actual, 2)
	require.Equal(t, req.ValidationError{Field: "path", Got: "//evil.example", Rule: "abspath; string"}, actual[0])
	require.Equal(t, req.ValidationError{Field: "limit", Got: -1, Rule: "gt=0; int"}, actual[1])

	// Arrange
	output = resolveQuery{}

	// Act
	err = parser.ParseQueryParams(url.Values{}, &output)

	// Assert
	require.ErrorIs(t, err, cryptodash.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Equal(t, "required; string", actual[0].Rule)

	// Arrange
	output = resolveQuery{}

	// Act
	err = parser.ParseQueryParams(url.Values{"path": []string{"/coin/42"}, "other": []string{"ignored"}}, &output)

	// Assert
	require.Nil(t, err)
	require.Equal(t, resolveQuery{Path: "/coin/42"}, output)
}
