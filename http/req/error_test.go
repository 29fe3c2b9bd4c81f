package req_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cryptodash/http/req"
)

func TestValidationErrorsError(t *testing.T) {
	// Arrange
	var v req.ValidationErrors

	// Act
	actual := v.Error()

	// Assert
	require.Zero(t, actual)

	// Arrange
	v = append(
		v,
		req.ValidationError{Field: "path", Rule: "required; string"},
		req.ValidationError{Field: "limit", Got: "many", Rule: "must be int"},
	)

	expected := strings.Join([]string{
		`field="path" rule="required; string" got="<nil>"`,
		`field="limit" rule="must be int" got="many"`,
	}, "\n")

	// Act
	actual = v.Error()

	// Assert
	require.Equal(t, expected, actual)
}

func TestValidationErrorsMarshalJSON(t *testing.T) {
	// Arrange
	v := req.ValidationErrors{{Field: "path", Got: "", Rule: "required; string"}}

	// Act
	b, err := json.Marshal(v)

	// Assert
	require.Nil(t, err)
	require.JSONEq(t, `{"validationErrors":[{"field":"path","got":"","rule":"required; string"}]}`, string(b))

	// Act
	b, err = json.Marshal(req.ValidationErrors{})

	// Assert
	require.Nil(t, err)
	require.JSONEq(t, `{}`, string(b))
}
