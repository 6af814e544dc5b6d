//go:build !tinygo

package hal

import "time"

type hostClock struct{}

func (hostClock) Now() time.Time        { return time.Now() }
func (hostClock) Sleep(d time.Duration) { time.Sleep(d) }

// TickLoop calls step every 1/hz until done is closed, step fails, or limit
// ticks have run (limit 0 = forever).
func TickLoop(done <-chan struct{}, hz int, limit uint64, step func() error) error {
	d := time.Second / time.Duration(hz)
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-done:
			return nil
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if limit > 0 && tick >= limit {
				return nil
			}
		}
	}
}
