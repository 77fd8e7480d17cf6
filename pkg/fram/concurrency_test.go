package fram_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/fram-go/pkg/fram"
)

func TestExclusiveConcurrentAccess(t *testing.T) {
	cfg := fram.DefaultConfig()
	cfg.Exclusive = true
	dev, _ := newSimDevice(t, cfg)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	// each worker owns one page
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(page uint32) {
			defer wg.Done()
			base := page * 256
			for i := uint32(0); i < 64; i++ {
				if err := dev.Write32(base+i*4, base+i); err != nil {
					errs <- err
					return
				}
			}
			for i := uint32(0); i < 64; i++ {
				v, err := dev.Read32(base + i*4)
				if err != nil {
					errs <- err
					return
				}
				if v != base+i {
					errs <- assert.AnError
					return
				}
			}
		}(uint32(w))
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
