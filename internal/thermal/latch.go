package thermal

// Latch is a boolean condition that remembers its transitions until they
// are consumed.
type Latch struct {
	value     bool
	wentTrue  bool
	wentFalse bool
}

func (l *Latch) Set(value bool) {
	if value == l.value {
		return
	}
	l.value = value
	if value {
		l.wentTrue = true
	} else {
		l.wentFalse = true
	}
}

func (l *Latch) Is() bool {
	return l.value
}

// WentTrue reports and clears a pending false to true transition
func (l *Latch) WentTrue() bool {
	result := l.wentTrue
	l.wentTrue = false
	return result
}

// WentFalse reports and clears a pending true to false transition
func (l *Latch) WentFalse() bool {
	result := l.wentFalse
	l.wentFalse = false
	return result
}
