package secure

import "github.com/rs/zerolog/log"

// Resolve loads key material for the beacon's startup phase. Sealing
// is enabled only when both the server public certificate and the
// client secret certificate are supplied; otherwise it returns a nil
// Sealer and, unless quiet, warns once that telemetry will be sent in
// the clear. Load failures are returned as ErrKeyLoad and are fatal
// to the caller.
func Resolve(serverKeyPath, clientKeyPath string, quiet bool) (*Sealer, error) {
	if serverKeyPath == "" || clientKeyPath == "" {
		if !quiet {
			log.Warn().Msg("crypto disabled: publishing telemetry in the clear")
		}
		return nil, nil
	}
	serverPublic, err := LoadPublicKey(serverKeyPath)
	if err != nil {
		return nil, err
	}
	pair, err := LoadKeyPair(clientKeyPath)
	if err != nil {
		return nil, err
	}
	return NewSealer(pair, serverPublic), nil
}
