package deeplink

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// OSRegistrar registers URL schemes with the host operating system.
// It implements host.Registrar.
type OSRegistrar struct {
	AppName string
	Exe     string

	// dataHome overrides $XDG_DATA_HOME on Linux.
	dataHome string
	// run executes helper tools (xdg-mime, lsregister).
	run      func(name string, args ...string) error
	lookPath func(file string) (string, error)
}

// NewRegistrar returns a registrar that points the scheme at exe.
func NewRegistrar(appName, exe string) *OSRegistrar {
	return &OSRegistrar{AppName: appName, Exe: exe, run: runCommand, lookPath: exec.LookPath}
}

// RegisterURLScheme validates name and performs the platform registration.
func (r *OSRegistrar) RegisterURLScheme(name string) error {
	if err := ValidateScheme(name); err != nil {
		return err
	}
	return r.register(name)
}

func runCommand(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// desktopEntryName is the freedesktop file name for the scheme handler.
func desktopEntryName(appName, scheme string) string {
	return fmt.Sprintf("%s-%s-handler.desktop", strings.ToLower(appName), scheme)
}

// desktopEntry renders a freedesktop entry that hands scheme URLs to exe.
func desktopEntry(appName, exe, scheme string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", appName)
	fmt.Fprintf(&b, "Exec=%s %%u\n", quoteExec(exe))
	b.WriteString("Terminal=false\n")
	b.WriteString("NoDisplay=true\n")
	fmt.Fprintf(&b, "MimeType=x-scheme-handler/%s;\n", scheme)
	return b.String()
}

// quoteExec escapes an Exec path per the desktop entry spec: "%" is
// doubled, reserved characters force double quoting with backslash escapes,
// and the whole value then gets the string-level backslash escaping every
// desktop entry value goes through.
func quoteExec(p string) string {
	p = strings.ReplaceAll(p, "%", "%%")
	if !strings.ContainsAny(p, " \t\n\"'\\><~|&;$*?#()`") {
		return p
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	quoted := `"` + r.Replace(p) + `"`
	return strings.ReplaceAll(quoted, `\`, `\\`)
}

// appBundle returns the enclosing .app directory of a macOS executable,
// or "" when exe is not inside Foo.app/Contents/MacOS.
func appBundle(exe string) string {
	dir := filepath.Dir(exe)
	if filepath.Base(dir) != "MacOS" {
		return ""
	}
	contents := filepath.Dir(dir)
	if filepath.Base(contents) != "Contents" {
		return ""
	}
	bundle := filepath.Dir(contents)
	if !strings.HasSuffix(bundle, ".app") {
		return ""
	}
	return bundle
}

// windowsOpenCommand is the shell\open\command value for a scheme handler.
func windowsOpenCommand(exe string) string {
	return fmt.Sprintf(`"%s" "%%1"`, exe)
}
