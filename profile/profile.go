package profile

// Profiler describes a single profiling session.
type Profiler struct {
	// Mode is one of [Modes]. Profiling is disabled if Mode is empty.
	Mode string
	// Path is the output directory. The current directory is used if empty.
	Path string
	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Start begins profiling and returns a handle for stopping it.
//
// If the pprof build tag or p.Mode are unset, or p.Mode is unknown, then
// Start returns a no-op implementation.
// Both Start and Stop are always safely callable.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether profiling support is compiled in.
func Enabled() bool { return enabled }

type ignore struct{}

func (ignore) Stop() {}
