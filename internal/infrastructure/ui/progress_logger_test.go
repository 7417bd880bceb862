package ui_test

import (
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitmigrate/internal/infrastructure/ui"
)

func TestProgressLogger(t *testing.T) {
	t.Run("should count every concurrent increment", func(t *testing.T) {
		// given
		hook := test.NewGlobal()
		defer hook.Reset()
		progress := ui.NewProgressLogger()
		progress.Start(10)

		// when
		var pending sync.WaitGroup
		for i := 0; i < 10; i++ {
			pending.Add(1)
			go func() {
				defer pending.Done()
				progress.Increment()
			}()
		}
		pending.Wait()
		progress.Stop()

		// then
		entries := hook.AllEntries()
		require.NotEmpty(t, entries)
		assert.Equal(t, "Done: 10/10 items settled", entries[len(entries)-1].Message)
	})

	t.Run("should stay silent for an empty run", func(t *testing.T) {
		// given
		hook := test.NewGlobal()
		defer hook.Reset()
		progress := ui.NewProgressLogger()

		// when
		progress.Start(0)
		progress.Stop()

		// then
		assert.Empty(t, hook.AllEntries())
	})
}
