//go:build !linux && !windows && !darwin

package deeplink

func (r *OSRegistrar) register(scheme string) error {
	return ErrUnsupported
}
