package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/mutker/hwprint/internal/errors"
	"codeberg.org/mutker/hwprint/internal/fingerprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	t.Setenv("HWPRINT_CONFIG", "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HWPRINT_STORE", "true")

	dbPath := filepath.Join(t.TempDir(), "reports.db")
	t.Setenv("HWPRINT_DATABASE", dbPath)

	return dbPath
}

func decodeLines[T any](t *testing.T, out *bytes.Buffer) []T {
	t.Helper()

	var values []T
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		var v T
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &v))
		values = append(values, v)
	}
	require.NoError(t, scanner.Err())

	return values
}

func TestClassifyAndHistory(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, runClassify(ctx, []string{"testdata/hooks.json"}, nil, &out))

	reports := decodeLines[fingerprint.Report](t, &out)
	require.Len(t, reports, 2)

	laptop := reports[0]
	assert.Equal(t, "Laptop", laptop.Name)
	assert.Equal(t, "x86_64", laptop.Arch)
	assert.Equal(t, "50%", laptop.BatteryLevel.Or(""))
	assert.Equal(t, 7200.0, laptop.DischargingTime.Or(0))
	assert.Equal(t, "Google Inc. (Intel)", laptop.Vendor.Or(""))

	phone := reports[1]
	assert.Equal(t, "Android Phone", phone.Name)
	assert.True(t, phone.IsMobileDevice)
	assert.True(t, phone.IsTouchEnabled)
	assert.False(t, phone.GPU.IsKnown())

	out.Reset()
	require.NoError(t, runHistory(ctx, []string{"--limit", "0"}, nil, &out))
	entries := decodeLines[historyEntry](t, &out)
	require.Len(t, entries, 2)

	sessions := []string{entries[0].Session, entries[1].Session}
	assert.ElementsMatch(t, []string{"hook-laptop", "hook-phone"}, sessions)
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CapturedAt.IsZero())
	}
}

func TestClassifySessionOverride(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	stdin := strings.NewReader(`{"session": "ignored", "userAgent": "Mozilla/5.0 (PlayStation 5 3.00)"}`)
	var out bytes.Buffer
	require.NoError(t, runClassify(ctx, []string{"--session", "engagement-7", "-"}, stdin, &out))

	reports := decodeLines[fingerprint.Report](t, &out)
	require.Len(t, reports, 1)
	assert.Equal(t, "Playstation", reports[0].Name)
	assert.True(t, reports[0].IsGameConsole)

	out.Reset()
	require.NoError(t, runHistory(ctx, nil, nil, &out))
	entries := decodeLines[historyEntry](t, &out)
	require.Len(t, entries, 1)
	assert.Equal(t, "engagement-7", entries[0].Session)
}

func TestClassifyErrors(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	err := runClassify(ctx, nil, strings.NewReader("not json"), &bytes.Buffer{})
	assert.True(t, errors.HasCode(err, errors.ErrDecodePayload))

	err = runClassify(ctx, []string{"testdata/missing.json"}, nil, &bytes.Buffer{})
	assert.True(t, errors.HasCode(err, errors.ErrDecodePayload))

	err = runClassify(ctx, nil, strings.NewReader(`[null, {"userAgent": "x"}]`), &bytes.Buffer{})
	assert.True(t, errors.HasCode(err, errors.ErrDecodePayload))
	assert.Equal(t, 1, exitCode(err))

	err = runClassify(ctx, []string{"a.json", "b.json"}, nil, &bytes.Buffer{})
	assert.True(t, errors.HasCode(err, errors.ErrUsage))
	assert.Equal(t, 2, exitCode(err))

	err = runClassify(ctx, []string{"--no-such-flag"}, nil, &bytes.Buffer{})
	assert.True(t, errors.HasCode(err, errors.ErrUsage))
	assert.Equal(t, 2, exitCode(err))

	err = runHistory(ctx, []string{"--limit", "many"}, nil, &bytes.Buffer{})
	assert.Equal(t, 2, exitCode(err))

	assert.Equal(t, 0, exitCode(nil))

	err = runClassify(ctx, []string{"--log-level", "loud", "testdata/hooks.json"}, nil, &bytes.Buffer{})
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestHistoryStoreDisabled(t *testing.T) {
	isolate(t)
	t.Setenv("HWPRINT_STORE", "false")

	var out bytes.Buffer
	require.NoError(t, runHistory(context.Background(), nil, nil, &out))
	assert.Empty(t, out.String())
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"classify", "probe", "history"} {
		_, ok := lookup(name)
		assert.True(t, ok, name)
	}
	_, ok := lookup("serve")
	assert.False(t, ok)

	var out bytes.Buffer
	usage(&out)
	assert.Contains(t, out.String(), "classify")
}
