package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedOutcome struct {
	name string
	err  error
}

type fakeRecorder struct {
	observed []recordedOutcome
}

func (f *fakeRecorder) ObserveAnalysis(name string, _ time.Duration, err error) {
	f.observed = append(f.observed, recordedOutcome{name: name, err: err})
}

func TestRunnerIsolatesFailures(t *testing.T) {
	log, hook := test.NewNullLogger()
	recorder := &fakeRecorder{}
	runner := NewRunner(log, recorder)

	boom := errors.New("boom")
	var ran []string
	step := func(name string, err error) Step {
		return Step{Name: name, Run: func(context.Context) error {
			ran = append(ran, name)
			return err
		}}
	}

	steps := []Step{
		step("first", nil),
		step("second", boom),
		{Name: "third", Run: func(context.Context) error {
			ran = append(ran, "third")
			var m map[string]int
			m["x"] = 1
			return nil
		}},
		step("fourth", nil),
	}

	outcomes := runner.Run(context.Background(), steps)
	require.Len(t, outcomes, 4)
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, ran)

	assert.NoError(t, outcomes[0].Err)
	assert.ErrorIs(t, outcomes[1].Err, boom)
	require.Error(t, outcomes[2].Err)
	assert.Contains(t, outcomes[2].Err.Error(), "panic in third")
	assert.NoError(t, outcomes[3].Err)

	failed := Failed(outcomes)
	require.Len(t, failed, 2)
	assert.Equal(t, "second", failed[0].Name)
	assert.Equal(t, "third", failed[1].Name)

	require.Len(t, recorder.observed, 4)
	assert.Equal(t, "third", recorder.observed[2].name)
	assert.Error(t, recorder.observed[2].err)

	var errorEntries []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			errorEntries = append(errorEntries, e)
		}
	}
	require.Len(t, errorEntries, 2)
	assert.Equal(t, "second", errorEntries[0].Data["analysis"])
}

func TestRunnerStopsOnCancel(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())

	steps := []Step{
		{Name: "cancel", Run: func(context.Context) error {
			cancel()
			return nil
		}},
		{Name: "never", Run: func(context.Context) error {
			t.Fatal("step ran after cancellation")
			return nil
		}},
	}

	outcomes := NewRunner(log, nil).Run(ctx, steps)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "cancel", outcomes[0].Name)
}
