package trawl_test

import (
	"fmt"
	"testing"

	"github.com/mzagorski/trawl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := trawl.Errorf(trawl.ENOTFOUND, "page %q not found", "http://a.example/x")

	assert.Equal(t, trawl.ENOTFOUND, trawl.ErrorCode(err))
	assert.Equal(t, `page "http://a.example/x" not found`, trawl.ErrorMessage(err))
}

func TestErrorCode_wrapped_error(t *testing.T) {
	t.Parallel()

	inner := trawl.Errorf(trawl.EINVALID, "bad URL")
	wrapped := fmt.Errorf("enqueue: %w", inner)

	assert.Equal(t, trawl.EINVALID, trawl.ErrorCode(wrapped))
	assert.Equal(t, "bad URL", trawl.ErrorMessage(wrapped))
}

func TestErrorCode_non_application_error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, trawl.EINTERNAL, trawl.ErrorCode(fmt.Errorf("boom")))
	assert.Equal(t, "", trawl.ErrorCode(nil))
}

func TestResult_Blocked(t *testing.T) {
	t.Parallel()

	assert.True(t, (&trawl.Result{StatusCode: trawl.StatusBlockedByRobots}).Blocked())
	assert.False(t, (&trawl.Result{StatusCode: 200}).Blocked())
}

func TestResult_OK(t *testing.T) {
	t.Parallel()

	assert.True(t, (&trawl.Result{StatusCode: 200}).OK())
	assert.True(t, (&trawl.Result{StatusCode: 204}).OK())
	assert.False(t, (&trawl.Result{StatusCode: 301}).OK())
	assert.False(t, (&trawl.Result{StatusCode: trawl.StatusRetriesExhausted}).OK())
}

func TestPage_Validate(t *testing.T) {
	t.Parallel()

	page := &trawl.Page{URL: "http://a.example/x", RunID: "run-1"}
	assert.NoError(t, page.Validate())

	missingURL := &trawl.Page{RunID: "run-1"}
	assert.Equal(t, trawl.EINVALID, trawl.ErrorCode(missingURL.Validate()))

	missingRun := &trawl.Page{URL: "http://a.example/x"}
	assert.Equal(t, trawl.EINVALID, trawl.ErrorCode(missingRun.Validate()))
}
