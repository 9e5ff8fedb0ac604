package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: errors.New("dial tcp: refused"), want: "dial tcp: refused"},
		{
			name: "messages",
			err: &FetchDisplayError{Status: 500, Messages: []APIMessage{
				{MessageNumber: "ZWEAC100W", MessageContent: "Could not retrieve containers"},
				{MessageKey: "org.zowe.apiml.apicatalog.containerStatusRetrievalException"},
			}},
			want: "ZWEAC100W Could not retrieve containers\norg.zowe.apiml.apicatalog.containerStatusRetrievalException",
		},
		{name: "status and cause", err: &FetchDisplayError{Status: 502, Err: errors.New("bad gateway")}, want: "Status 502: bad gateway"},
		{name: "status only", err: &FetchDisplayError{Status: 404}, want: "Status 404"},
		{name: "cause only", err: &FetchDisplayError{Err: errors.New("timeout")}, want: "timeout"},
		{name: "empty", err: &FetchDisplayError{Messages: []APIMessage{{}}}, want: "Unknown error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatError(tc.err))
		})
	}
}

func TestFetchDisplayErrorMessages(t *testing.T) {
	cause := errors.New("timeout")
	err := &FetchDisplayError{Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "catalog: timeout", err.Error())

	withMessage := &FetchDisplayError{Messages: []APIMessage{{MessageContent: "down"}}}
	assert.Equal(t, "catalog: down", withMessage.Error())
}

func TestLogoFetchErrorMessages(t *testing.T) {
	assert.Equal(t, "error fetching image path", (&LogoFetchError{}).Error())
	assert.Equal(t, "error fetching image path: network response was not ok (status 500)", (&LogoFetchError{Status: 500}).Error())

	wrapped := asLogoFetchError(&LogoFetchError{Status: 404})
	var logoErr *LogoFetchError
	assert.True(t, errors.As(wrapped, &logoErr))
	assert.Equal(t, 404, logoErr.Status)
}
