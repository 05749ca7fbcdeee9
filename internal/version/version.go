// Package version contains webshield version information.
package version

// These are set by the linker.  Constants cannot be set during linking, so
// they are variables exported through getters.
var (
	revision string
	version  string
)

// Revision returns the compiled-in value of the Git revision.
func Revision() (r string) {
	return revision
}

// Version returns the compiled-in value of the webshield version as a
// string.
func Version() (v string) {
	return version
}
