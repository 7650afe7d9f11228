package profile

// Profiler describes a profiling session.
//
// Mode selects the profiler (see [Modes]), Path is the output directory and
// Quiet suppresses the start/stop messages of the underlying profiler.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option configures a [Profiler].
type Option func(Profiler) Profiler

// New returns a Profiler with the given options applied.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// WithMode sets the profiler mode.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath sets the profile output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet sets whether the profiler reports its own activity.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Enabled reports whether Start would start a real profiler.
func (p Profiler) Enabled() bool {
	return p.Mode != "" && supported(p.Mode)
}

// Start starts profiling and returns a handle for stopping it.
//
// If the binary was built without the pprof tag, or the mode is empty or
// unknown, Start returns a no-op. Both Start and Stop are always safe to call.
func (p Profiler) Start() interface{ Stop() } {
	if !p.Enabled() {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
