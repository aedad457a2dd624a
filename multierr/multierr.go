package multierr

import "strings"

type Err []error

func (me Err) Error() string {
	var builder strings.Builder
	for i, err := range me {
		if i > 0 {
			builder.WriteString("; ")
		}
		builder.WriteString(err.Error())
	}
	return builder.String()
}

// Unwrap lets errors.Is and errors.As look through every collected error.
func (me Err) Unwrap() []error {
	return me
}

func (me Err) Len() int {
	return len(me)
}

func (me *Err) Add(err error) {
	if err == nil {
		return
	}
	*me = append(*me, err)
}

// Err returns nil when nothing was collected, so callers can return it directly.
func (me Err) Err() error {
	switch len(me) {
	case 0:
		return nil
	case 1:
		return me[0]
	}
	return me
}

