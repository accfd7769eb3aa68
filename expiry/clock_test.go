package expiry

import "time"

// fakeClock makes deadline arithmetic deterministic in tests.
type fakeClock struct{ t int64 }

func (f *fakeClock) NowUnixNano() int64  { return f.t }
func (f *fakeClock) add(d time.Duration) { f.t += int64(d) }
