package req_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/req"
)

func TestParserParseQueryParams(t *testing.T) {
	type query struct {
		Path  string `schema:"path" validate:"required,localpath"`
		Depth int    `schema:"depth" validate:"gte=0"`
	}

	tcs := []struct {
		name     string
		params   url.Values
		expected query
		errs     req.ValidationErrors
	}{
		{
			"Valid",
			url.Values{"path": {"/products/42?sort=asc"}, "depth": {"2"}},
			query{Path: "/products/42?sort=asc", Depth: 2},
			nil,
		},
		{
			"Unknown-Keys-Ignored",
			url.Values{"path": {"/"}, "other": {"x"}},
			query{Path: "/"},
			nil,
		},
		{
			"Missing",
			url.Values{},
			query{},
			req.ValidationErrors{{Field: "path", Got: "", Rule: "required; string"}},
		},
		{
			"External",
			url.Values{"path": {"https://example.com/"}},
			query{},
			req.ValidationErrors{{Field: "path", Got: "https://example.com/", Rule: "localpath; string"}},
		},
		{
			"Protocol-Relative",
			url.Values{"path": {"//example.com/"}},
			query{},
			req.ValidationErrors{{Field: "path", Got: "//example.com/", Rule: "localpath; string"}},
		},
		{
			"Not-Converted",
			url.Values{"path": {"/"}, "depth": {"deep"}},
			query{},
			req.ValidationErrors{{Field: "depth", Got: "bad value at index 0", Rule: "must be int"}},
		},
		{
			"Negative",
			url.Values{"path": {"/"}, "depth": {"-1"}},
			query{},
			req.ValidationErrors{{Field: "depth", Got: -1, Rule: "gte=0; int"}},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var actual query

			// Act
			err := req.NewParser().ParseQueryParams(tc.params, &actual)

			// Assert
			if tc.errs == nil {
				require.Nil(t, err)
				require.Equal(t, tc.expected, actual)
				return
			}

			require.ErrorIs(t, err, switchback.ErrNotValid)

			var errs req.ValidationErrors
			require.ErrorAs(t, err, &errs)
			require.Equal(t, tc.errs, errs)
		})
	}
}

func TestParserParseQueryParamsBadTarget(t *testing.T) {
	// Act
	err := req.NewParser().ParseQueryParams(url.Values{"path": {"/"}}, struct{}{})

	// Assert
	require.ErrorIs(t, err, req.ErrBadFormat)
}

func TestValidationErrors(t *testing.T) {
	// Arrange
	var v req.ValidationErrors

	// Act + Assert
	require.Zero(t, v.Error())

	// Arrange
	v = append(v,
		req.ValidationError{Field: "first", Rule: "required; string"},
		req.ValidationError{Field: "second", Got: "big boo boo", Rule: "len=1; string"},
	)

	expected := strings.Join([]string{
		`field="first" rule="required; string" got="<nil>"`,
		`field="second" rule="len=1; string" got="big boo boo"`,
	}, "\n")

	// Act
	actual := v.Error()
	b, err := json.Marshal(v)

	// Assert
	require.Equal(t, expected, actual)
	require.Nil(t, err)
	require.JSONEq(t, `{"validationErrors":[
		{"field":"first","got":null,"rule":"required; string"},
		{"field":"second","got":"big boo boo","rule":"len=1; string"}
	]}`, string(b))
}
