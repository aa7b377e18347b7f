//go:build headless

package viewer

// Run always fails in headless builds.
func Run(f *Frame, opts Options) error {
	return ErrHeadless
}
