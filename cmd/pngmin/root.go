package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arloliu/pngmin"
	"github.com/arloliu/pngmin/config"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
	"github.com/arloliu/pngmin/internal/logging"
)

var errOutputConflict = errors.New("--output, --in-place and --suffix are mutually exclusive")

type flags struct {
	output               string
	suffix               string
	inPlace              bool
	configPath           string
	maxIDAT              int
	workers              int
	verbosity            int
	base64               bool
	verifyCRC            bool
	candidateCompression string
	force                bool
	jsonLog              bool
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:          "pngmin [flags] <file>...",
		Short:        "Losslessly re-encode PNG files to minimize their size",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "write the result to this file (single input only)")
	fs.StringVar(&f.suffix, "suffix", "", "write each result next to its input with this suffix before the extension")
	fs.BoolVar(&f.inPlace, "in-place", false, "replace each input file")
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML or JSON configuration file")
	fs.IntVar(&f.maxIDAT, "max-idat", 0, "maximum IDAT payload size in bytes (0 = unlimited)")
	fs.IntVarP(&f.workers, "workers", "j", 1, "concurrent compression trials (0 = all CPUs)")
	fs.CountVarP(&f.verbosity, "verbose", "v", "log the best combination (-v), every trial (-vv), debug output (-vvv)")
	fs.BoolVar(&f.base64, "base64", false, "inputs and outputs are base64 text")
	fs.BoolVar(&f.verifyCRC, "verify-crc", false, "reject inputs with a wrong chunk checksum")
	fs.StringVar(&f.candidateCompression, "candidate-compression", "", "pack candidate streams in memory: none, zstd, s2 or lz4")
	fs.BoolVar(&f.force, "force", false, "write the result even if it is not smaller")
	fs.BoolVar(&f.jsonLog, "json-log", false, "log as JSON")

	return cmd
}

func run(cmd *cobra.Command, f flags, args []string) error {
	modes := 0
	for _, set := range []bool{f.output != "", f.inPlace, f.suffix != ""} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return errOutputConflict
	}
	if f.output != "" && len(args) > 1 {
		return fmt.Errorf("--output accepts a single input, got %d", len(args))
	}

	logger := logging.New(cmd.ErrOrStderr(), f.verbosity, f.jsonLog).
		With().Str("run", uuid.New().String()).Logger()

	opts, err := buildOptions(cmd, f, logger)
	if err != nil {
		return err
	}

	var failed []error
	for _, path := range args {
		if err := processFile(cmd.OutOrStdout(), path, f, logger, opts); err != nil {
			logger.Error().Err(err).Str("file", path).Msg("optimization failed")
			failed = append(failed, fmt.Errorf("%s: %w", path, err))
		}
	}

	return errors.Join(failed...)
}

// buildOptions merges the configuration file with flags; flags given on the command
// line win.
func buildOptions(cmd *cobra.Command, f flags, logger zerolog.Logger) ([]pngmin.Option, error) {
	var opts []pngmin.Option

	if f.configPath != "" {
		file, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, file.Options()...)
	}

	changed := cmd.Flags().Changed
	if changed("max-idat") {
		opts = append(opts, pngmin.WithMaxRecordPayloadSize(f.maxIDAT))
	}
	if changed("workers") || f.configPath == "" {
		opts = append(opts, pngmin.WithWorkers(f.workers))
	}
	if changed("verify-crc") {
		opts = append(opts, pngmin.WithChecksumVerification(f.verifyCRC))
	}
	if changed("candidate-compression") {
		ct, ok := format.ParseCompressionType(f.candidateCompression)
		if !ok {
			return nil, errs.NewConfigError("candidate-compression", f.candidateCompression, errs.ErrUnknownCodec)
		}
		opts = append(opts, pngmin.WithCandidateCompression(ct))
	}

	opts = append(opts,
		pngmin.WithVerbosity(min(f.verbosity, 2)),
		pngmin.WithLogger(logger),
	)

	// Fail on configuration errors before touching any file.
	if _, err := pngmin.New(opts...); err != nil {
		return nil, err
	}

	return opts, nil
}

func processFile(stdout io.Writer, path string, f flags, logger zerolog.Logger, opts []pngmin.Option) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	opt, err := pngmin.New(append(opts, pngmin.WithName(path))...)
	if err != nil {
		return err
	}

	var out []byte
	var report pngmin.Report
	if f.base64 {
		var encoded string
		encoded, report, err = opt.OptimizeBase64(strings.TrimSpace(string(data)))
		out = []byte(encoded)
	} else {
		out, report, err = opt.Optimize(data)
	}
	if err != nil {
		return err
	}

	logger.Debug().
		Str("file", path).
		Stringer("params", report.Combination).
		Int("trials", report.Trials).
		Int("memoHits", report.MemoHits).
		Dur("elapsed", report.Elapsed).
		Msg("optimized")

	dest := destination(path, f)
	status := "dry run"
	switch {
	case dest == "":
	case !report.Smaller() && !f.force:
		status = "unchanged"
	default:
		if err := writeFile(dest, out, path); err != nil {
			return err
		}
		status = "written to " + dest
	}

	saved := 100 * (1 - report.Stats().CompressionRatio())
	_, err = fmt.Fprintf(stdout, "%s: %d -> %d bytes (%.1f%%), %s\n", path, report.InputSize, report.OutputSize, saved, status)

	return err
}

func destination(path string, f flags) string {
	switch {
	case f.output != "":
		return f.output
	case f.inPlace:
		return path
	case f.suffix != "":
		ext := filepath.Ext(path)
		return strings.TrimSuffix(path, ext) + f.suffix + ext
	default:
		return ""
	}
}

// writeFile writes data next to dest and renames it into place, keeping the mode
// of src.
func writeFile(dest string, data []byte, src string) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(src); err == nil {
		mode = st.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".pngmin-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dest)
}
