//go:build darwin

package deeplink

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

const lsregister = "/System/Library/Frameworks/CoreServices.framework/Frameworks/LaunchServices.framework/Support/lsregister"

// register re-registers the enclosing bundle with LaunchServices. Schemes
// on macOS come from CFBundleURLTypes in Info.plist, so a binary run outside
// a bundle cannot claim one.
func (r *OSRegistrar) register(scheme string) error {
	bundle := appBundle(r.Exe)
	if bundle == "" {
		return fmt.Errorf("%w: not running from an app bundle", ErrUnsupported)
	}

	plist, err := os.ReadFile(filepath.Join(bundle, "Contents", "Info.plist"))
	if err != nil {
		return fmt.Errorf("read Info.plist: %w", err)
	}
	if !bytes.Contains(plist, []byte("<string>"+scheme+"</string>")) {
		return fmt.Errorf("%w: scheme %q not declared in CFBundleURLTypes", ErrUnsupported, scheme)
	}

	return r.run(lsregister, "-f", bundle)
}
