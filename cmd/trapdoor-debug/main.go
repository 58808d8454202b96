// Command trapdoor-debug prints every intermediate value of the trapdoor
// derivation so it can be diffed against another implementation.
//
// Default output, one value per line:
//
//	keccak256(signal)                     hex
//	chacha20 keystream                    hex
//	first 32 keystream bytes              hex
//	little-endian integer of those bytes  decimal
//	that integer mod r (BN254)            decimal
//
// With -identity, the seeded credential follows: trapdoor, nullifier,
// secret hash and commitment in decimal. The credential reads the keystream
// big-endian, so its trapdoor differs from the one above.
package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aerius-labs/rln-trapdoor-go/field"
	"github.com/aerius-labs/rln-trapdoor-go/identity"
	"github.com/aerius-labs/rln-trapdoor-go/trapdoor"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	signalHex string
	seed      string
	streamLen int
	asJSON    bool
	identity  bool
	verbose   bool
}

type report struct {
	Trace    *trapdoor.Trace      `json:"trace"`
	Identity *identity.Credential `json:"identity,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err.Error())
		return exitUsage
	}

	log := newLogger(stderr, opts.verbose)
	defer log.Sync()

	signal, err := opts.signal()
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitUsage
	}

	cfg := trapdoor.DefaultConfig().WithStreamLen(opts.streamLen)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitUsage
	}

	log.Debug("deriving trapdoor",
		zap.String("signal", hex.EncodeToString(signal)),
		zap.Int("stream_len", cfg.StreamLen),
		zap.String("modulus", field.ModulusDecimal),
	)

	tr, err := trapdoor.Derive(signal, cfg)
	if err != nil {
		log.Error("derivation failed", zap.Error(err))
		return exitError
	}
	log.Debug("derived", zap.Stringer("digest", tr.Digest))

	var cred *identity.Credential
	if opts.identity {
		cred, err = identity.FromDigest(tr.Digest)
		if err != nil {
			log.Error("identity derivation failed", zap.Error(err))
			return exitError
		}
	}

	if err := write(stdout, opts.asJSON, tr, cred); err != nil {
		log.Error("write output", zap.Error(err))
		return exitError
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("trapdoor-debug", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.signalHex, "signal", hex.EncodeToString(trapdoor.DefaultSignal()), "Signal bytes as hex")
	fs.StringVar(&opts.seed, "seed", "", "Signal as a UTF-8 string (overrides -signal)")
	fs.IntVar(&opts.streamLen, "stream-len", trapdoor.DefaultStreamLen, "Keystream bytes to generate (>= 32)")
	fs.BoolVar(&opts.asJSON, "json", false, "Print a JSON object instead of text lines")
	fs.BoolVar(&opts.identity, "identity", false, "Also derive the seeded identity credential")
	fs.BoolVar(&opts.verbose, "v", false, "Debug logging on stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func (o *options) signal() ([]byte, error) {
	if o.seed != "" {
		return []byte(o.seed), nil
	}
	b, err := hex.DecodeString(o.signalHex)
	if err != nil {
		return nil, fmt.Errorf("invalid -signal: %w", err)
	}
	return b, nil
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Named("trapdoor-debug")
}

func write(w io.Writer, asJSON bool, tr *trapdoor.Trace, cred *identity.Credential) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report{Trace: tr, Identity: cred})
	}

	if _, err := tr.WriteTo(w); err != nil {
		return err
	}
	if cred == nil {
		return nil
	}
	for _, e := range []field.Element{cred.Trapdoor, cred.Nullifier, cred.SecretHash, cred.Commitment} {
		if _, err := fmt.Fprintln(w, field.ToBigInt(e).String()); err != nil {
			return err
		}
	}
	return nil
}
