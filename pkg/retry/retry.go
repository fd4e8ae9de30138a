package retry

// Action is a function to be performed in a retriable manner.
type Action func() error

// Retrier retries the provided action.
type Retrier interface {
	Retry(action Action) (uint, error)
}

type retrier struct {
	strategies []Strategy
}

// NewRetrier returns a Retrier that retries actions based off of the provided
// strategies. With no strategies the retrier acts as a tight loop, retrying
// until the action returns no error.
func NewRetrier(strategies ...Strategy) Retrier {
	return &retrier{
		strategies: strategies,
	}
}

func (r *retrier) Retry(action Action) (uint, error) {
	return Retry(action, r.strategies...)
}

// Retry executes the provided action, potentially multiple times based off of
// the provided strategies. Retry blocks until the action succeeds or one of
// the strategies indicates no further retries should be performed.
//
// Strategies are evaluated in the provided order, so strategies that induce
// delays should be specified last.
func Retry(action Action, strategies ...Strategy) (uint, error) {
	for i := uint(1); ; i++ {
		err := action()
		if err == nil {
			return i, nil
		}

		for _, s := range strategies {
			if shouldRetry := s(i, err); !shouldRetry {
				return i, err
			}
		}
	}
}

// Loop executes the provided action indefinitely, until one of the provided
// strategies indicates it should not be retried.
//
// Unlike Retry, a successful action resets the internal attempt counter and
// the action runs again.
func Loop(action Action, strategies ...Strategy) error {
	for i := uint(1); ; i++ {
		err := action()
		if err == nil {
			i = 0
			continue
		}

		for _, s := range strategies {
			if shouldRetry := s(i, err); !shouldRetry {
				return err
			}
		}
	}
}
