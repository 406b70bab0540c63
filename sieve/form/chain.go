package form

// Reverter is a Saver that can undo a completed save.  Chain reverts the
// earlier savers when a later one fails.
type Reverter interface {
	Saver
	Revert(f *Form)
}

// Chain returns a Saver that runs savers one after the other, each starting
// when the previous one has finished.  It stops at the first error and
// reverts, in reverse order, every completed saver that is a Reverter.
func Chain(savers ...Saver) Saver {
	return SaverFunc(func(f *Form, done Callback) {
		runChain(f, savers, 0, done)
	})
}

func runChain(f *Form, savers []Saver, idx int, done Callback) {
	if idx == len(savers) {
		done(nil)
		return
	}
	savers[idx].Save(f, once(func(err error) {
		if err != nil {
			for prev := idx - 1; prev >= 0; prev-- {
				if r, ok := savers[prev].(Reverter); ok {
					r.Revert(f)
				}
			}
			done(err)
			return
		}
		runChain(f, savers, idx+1, done)
	}))
}
