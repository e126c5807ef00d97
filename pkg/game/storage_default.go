//go:build !android

package game

// prepareStorage is a no-op: gdata creates its directory itself outside
// Android.
func prepareStorage() error {
	return nil
}
