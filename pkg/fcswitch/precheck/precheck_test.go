package precheck_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpbank/check_fcswitch/pkg/fcswitch/precheck"
	"github.com/vpbank/check_fcswitch/pkg/fcswitch/snmpclient"
)

type fakeResolver struct {
	addrs []string
	err   error
	calls int
}

func (f *fakeResolver) LookupHost(context.Context, string) ([]string, error) {
	f.calls++
	return f.addrs, f.err
}

func pingDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ping"), []byte("#!/bin/sh\n"), 0o755))
	return dir
}

func runner(err error, calls *[][]string) snmpclient.Runner {
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, append([]string{name}, args...))
		return nil, err
	}
}

func TestCheck_Reachable(t *testing.T) {
	var calls [][]string
	res := &fakeResolver{addrs: []string{"192.0.2.10"}}
	c := precheck.New(precheck.Options{
		Resolver: res,
		Dirs:     []string{pingDir(t)},
		Run:      runner(nil, &calls),
	}, nil)

	require.NoError(t, c.Check(context.Background(), "switch01.example.com"))
	assert.Equal(t, 1, res.calls)
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"-c", "1", "-W", "2", "switch01.example.com"}, calls[0][1:])
}

func TestCheck_IPSkipsResolve(t *testing.T) {
	var calls [][]string
	res := &fakeResolver{err: errors.New("should not be called")}
	c := precheck.New(precheck.Options{
		Resolver: res,
		Dirs:     []string{pingDir(t)},
		Run:      runner(nil, &calls),
	}, nil)

	for _, ip := range []string{"192.0.2.10", "2001:db8::10", "fe80::1%eth0"} {
		require.NoError(t, c.Check(context.Background(), ip))
	}
	assert.Zero(t, res.calls)
	require.Len(t, calls, 3)
	assert.Equal(t, "fe80::1%eth0", calls[2][len(calls[2])-1])
}

func TestCheck_UnusualHostNamesAreResolved(t *testing.T) {
	var calls [][]string
	res := &fakeResolver{addrs: []string{"192.0.2.11"}}
	c := precheck.New(precheck.Options{
		Resolver: res,
		Dirs:     []string{pingDir(t)},
		Run:      runner(nil, &calls),
	}, nil)

	require.NoError(t, c.Check(context.Background(), "sw01.example.com."))
	require.NoError(t, c.Check(context.Background(), "san_sw01"))
	assert.Equal(t, 2, res.calls)
}

func TestCheck_ResolveFailure(t *testing.T) {
	var calls [][]string
	c := precheck.New(precheck.Options{
		Resolver: &fakeResolver{err: errors.New("no such host")},
		Dirs:     []string{pingDir(t)},
		Run:      runner(nil, &calls),
	}, nil)

	err := c.Check(context.Background(), "nosuchhost.example.com")
	assert.ErrorIs(t, err, precheck.ErrResolve)
	assert.Empty(t, calls, "ping must not run when resolution fails")
}

func TestCheck_Unreachable(t *testing.T) {
	var calls [][]string
	c := precheck.New(precheck.Options{
		Dirs: []string{pingDir(t)},
		Run:  runner(errors.New("exit status 1"), &calls),
	}, nil)

	err := c.Check(context.Background(), "192.0.2.10")
	assert.ErrorIs(t, err, precheck.ErrUnreachable)
}

func TestCheck_SkipPing(t *testing.T) {
	var calls [][]string
	c := precheck.New(precheck.Options{
		SkipPing: true,
		Dirs:     []string{t.TempDir()},
		Run:      runner(errors.New("unused"), &calls),
	}, nil)

	require.NoError(t, c.Check(context.Background(), "192.0.2.10"))
	assert.Empty(t, calls)
}

func TestCheck_PingMissing(t *testing.T) {
	var calls [][]string
	c := precheck.New(precheck.Options{
		Dirs: []string{t.TempDir()},
		Run:  runner(nil, &calls),
	}, nil)

	err := c.Check(context.Background(), "192.0.2.10")
	assert.ErrorIs(t, err, snmpclient.ErrBinaryNotFound)
}
