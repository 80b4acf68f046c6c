package search

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	in := []Result{
		{URL: "https://a"},
		{URL: ""},
		{URL: "https://a"},
		{URL: "https://b"},
		{URL: "https://c"},
	}
	assert.Len(t, Collect(in, 0), 3)

	out := Collect(in, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "https://b", out[1].URL)
}

func TestCheckStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusTooManyRequests)
	rec.WriteString("slow down\n")

	err := CheckStatus("tavily", rec.Result())
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusTooManyRequests, serr.Code)
	assert.Equal(t, "tavily api error (status 429): slow down", err.Error())

	ok := httptest.NewRecorder()
	ok.WriteHeader(http.StatusOK)
	assert.NoError(t, CheckStatus("tavily", ok.Result()))
}
