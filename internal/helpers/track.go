package helpers

// Track logs the outcome of the scenario body it is deferred in. The error
// pointed to by errp is left untouched and a panic keeps unwinding, so the
// failure still reaches the caller.
//
//	func body(s *Session) (err error) {
//		defer helpers.Track(s, &err)
//		...
//	}
func Track(n Named, errp *error) {
	trackWith(stdoutLogger, n, errp, recover())
}

// Track is the StatusLogger form of the package-level Track.
func (l *StatusLogger) Track(n Named, errp *error) {
	trackWith(l, n, errp, recover())
}

func trackWith(l *StatusLogger, n Named, errp *error, recovered any) {
	if recovered != nil {
		l.Log(n, false)
		panic(recovered)
	}
	l.Log(n, errp == nil || *errp == nil)
}
