package step

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jade/internal/config"
	"github.com/vk/jade/internal/testutil"
	"go.opentelemetry.io/otel/codes"
)

// fakeStep runs fn as its build body.
type fakeStep struct {
	name string
	fn   func(ctx context.Context, basePath string) error
}

func (f *fakeStep) Name() string          { return f.name }
func (f *fakeStep) Kind() config.StepKind { return config.KindBundle }
func (f *fakeStep) Build(ctx context.Context, basePath string) error {
	if f.fn == nil {
		return nil
	}
	return f.fn(ctx, basePath)
}

func TestRun(t *testing.T) {
	t.Run("success logs at debug and returns nil", func(t *testing.T) {
		ctx, logs := testutil.LogContext(t)
		var gotPath string
		s := &fakeStep{name: "ok", fn: func(_ context.Context, basePath string) error {
			gotPath = basePath
			return nil
		}}

		require.NoError(t, Run(ctx, s, "/res/base"))
		assert.Equal(t, "/res/base", gotPath)
		assert.Contains(t, logs.String(), "step=ok")
		assert.NotContains(t, logs.String(), "level=ERROR")
	})

	t.Run("failure is logged with attribution and returned", func(t *testing.T) {
		ctx, logs := testutil.LogContext(t)
		boom := errors.New("boom")

		err := Run(ctx, &fakeStep{name: "broken", fn: func(context.Context, string) error { return boom }}, "")
		require.ErrorIs(t, err, boom)
		assert.Contains(t, logs.String(), "level=ERROR msg=boom step=broken")
	})

	t.Run("panic becomes an error", func(t *testing.T) {
		ctx, _ := testutil.LogContext(t)

		err := Run(ctx, &fakeStep{name: "wild", fn: func(context.Context, string) error { panic("kaboom") }}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `step "wild" panicked: kaboom`)
	})
}

func TestRunRecordsSpans(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	provider, recorder := testutil.NewTracerProvider()
	ctx, root := provider.Tracer("test").Start(ctx, "resource")

	boom := errors.New("boom")
	_ = Run(ctx, &fakeStep{name: "good"}, "")
	_ = Run(ctx, &fakeStep{name: "bad", fn: func(context.Context, string) error { return boom }}, "")
	root.End()

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	good := testutil.FindSpan(spans, "bundle good")
	require.NotNil(t, good)
	assert.Equal(t, root.SpanContext().SpanID(), good.Parent().SpanID())
	assert.Equal(t, codes.Unset, good.Status().Code)

	bad := testutil.FindSpan(spans, "bundle bad")
	require.NotNil(t, bad)
	assert.Equal(t, codes.Error, bad.Status().Code)
	assert.Equal(t, "boom", bad.Status().Description)
}

func TestParallelRunsChildrenConcurrently(t *testing.T) {
	ctx, _ := testutil.LogContext(t)

	const n = 4
	var started sync.WaitGroup
	started.Add(n)
	children := make([]Step, n)
	for i := range children {
		children[i] = &fakeStep{name: string(rune('a' + i)), fn: func(context.Context, string) error {
			started.Done()
			// Every child blocks until all siblings are running, which can
			// only happen when they run concurrently.
			started.Wait()
			return nil
		}}
	}

	done := make(chan error, 1)
	go func() { done <- NewParallel("", children).Build(ctx, "/base") }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("parallel group did not run its children concurrently")
	}
}

func TestParallelReportsAllFailuresWithoutCancelling(t *testing.T) {
	ctx, logs := testutil.LogContext(t)

	var ran atomic.Int32
	errA := errors.New("a failed")
	errC := errors.New("c failed")
	mk := func(name string, err error) Step {
		return &fakeStep{name: name, fn: func(context.Context, string) error {
			time.Sleep(10 * time.Millisecond)
			ran.Add(1)
			return err
		}}
	}
	group := NewParallel("scripts", []Step{mk("a", errA), mk("b", nil), mk("c", errC), mk("d", nil)})

	err := Run(ctx, group, "")
	require.Error(t, err)
	assert.EqualValues(t, 4, ran.Load())

	var groupErr *GroupError
	require.ErrorAs(t, err, &groupErr)
	assert.Equal(t, 4, groupErr.Total)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errC)
	assert.Len(t, Failures(err), 2)

	out := logs.String()
	assert.Contains(t, out, "msg=\"a failed\"")
	assert.Contains(t, out, "msg=\"c failed\"")
	assert.Contains(t, out, "2 of 4 parallel steps failed")
}

func TestParallelWallTimeTracksSlowestChild(t *testing.T) {
	ctx, _ := testutil.LogContext(t)

	const delay = 100 * time.Millisecond
	children := make([]Step, 5)
	for i := range children {
		children[i] = &fakeStep{name: "sleep", fn: func(context.Context, string) error {
			time.Sleep(delay)
			return nil
		}}
	}

	start := time.Now()
	require.NoError(t, NewParallel("", children).Build(ctx, ""))
	assert.Less(t, time.Since(start), 3*delay)
}

func TestNestedParallelFailuresFlatten(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	fail := func(name string) Step {
		return &fakeStep{name: name, fn: func(context.Context, string) error { return errors.New(name) }}
	}

	inner := NewParallel("inner", []Step{fail("x"), &fakeStep{name: "ok"}, fail("y")})
	outer := NewParallel("outer", []Step{inner, fail("z")})

	err := outer.Build(ctx, "")
	require.Error(t, err)
	assert.Len(t, Failures(err), 3)
}

func TestParallelEmptyAndDefaults(t *testing.T) {
	ctx, _ := testutil.LogContext(t)

	group := NewParallel("", nil)
	assert.Equal(t, DefaultParallelName, group.Name())
	assert.Equal(t, config.KindParallel, group.Kind())
	assert.NoError(t, group.Build(ctx, ""))
	assert.Nil(t, Failures(nil))
}
