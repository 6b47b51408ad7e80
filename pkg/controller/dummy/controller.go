package dummy

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Dummy only logs what it would have done. Used for dry runs.
type Dummy struct {
	decisions []bool
	sync.Mutex
}

func New() *Dummy {
	return &Dummy{}
}

func (ts *Dummy) AllowCompute(b bool, runtime time.Duration) error {
	logrus.Info("dummy: AllowCompute: ", b, " for ", runtime)
	ts.Lock()
	ts.decisions = append(ts.decisions, b)
	ts.Unlock()
	return nil
}

func (ts *Dummy) Decisions() []bool {
	ts.Lock()
	defer ts.Unlock()
	return append([]bool(nil), ts.decisions...)
}
