// SPDX-License-Identifier: MIT

// Command ivpbuild builds one IvP function from a YAML job file.
//
// Usage:
//
//	ivpbuild -job transit.yaml [-encode] [-packet 256] [-db functions.db] [-log-level debug]
//	ivpbuild -reassemble packets.txt [-encode] [-db functions.db]
//
// The coupled function is summarized on the log. -encode prints its MK
// string, -packet splits that string into packets of at most n bytes, and
// -db stores it in a SQLite archive.
//
// -reassemble reads packets, one per line and possibly interleaved across
// functions, and decodes every function whose packets are all present.
//
// IVPBUILD_DB and IVPBUILD_LOG_LEVEL supply defaults for -db and -log-level.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/ivpbuild/archive"
	"github.com/katalvlaran/ivpbuild/builder"
	"github.com/katalvlaran/ivpbuild/core"
	"github.com/katalvlaran/ivpbuild/encoder"
)

// maxPacketLine bounds one line of a packet file.
const maxPacketLine = 1 << 20

type options struct {
	job        string
	reassemble string
	db         string
	packet     int
	encode     bool
	logLevel   string
	seed       int64
}

func main() {
	var opts options
	flag.StringVar(&opts.job, "job", "", "path of the YAML job file")
	flag.StringVar(&opts.reassemble, "reassemble", "", "decode the functions in a file of packets instead of building a job")
	flag.StringVar(&opts.db, "db", envOrDefault("IVPBUILD_DB", ""), "SQLite archive to store the function in")
	flag.IntVar(&opts.packet, "packet", 0, "split the encoded function into packets of at most n bytes")
	flag.BoolVar(&opts.encode, "encode", false, "print the encoded function")
	flag.StringVar(&opts.logLevel, "log-level", envOrDefault("IVPBUILD_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	flag.Int64Var(&opts.seed, "seed", 1, "seed for rating samples")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "ivpbuild: -log-level %q: %v\n", opts.logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(context.Background(), opts, os.Stdout, logger); err != nil {
		logger.Error("ivpbuild failed", "job", opts.job, "packets", opts.reassemble, "err", err)
		os.Exit(1)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func run(ctx context.Context, opts options, out io.Writer, logger *slog.Logger) error {
	switch {
	case opts.job != "" && opts.reassemble != "":
		return errors.New("-job and -reassemble are exclusive")
	case opts.reassemble != "":
		return runReassemble(ctx, opts, out, logger)
	case opts.job == "":
		return errors.New("-job or -reassemble is required")
	}
	job, err := builder.LoadJobFile(opts.job)
	if err != nil {
		return err
	}
	f, rep, err := builder.Build(job, builder.WithLogger(logger), builder.WithSeed(opts.seed))
	for _, fr := range rep.Functions {
		attrs := []any{"name", fr.Name, "kind", fr.Kind, "pieces", humanize.Comma(int64(fr.Pieces))}
		if fr.UniformPieces != "" {
			attrs = append(attrs, "uniform", fr.UniformPieces)
		}
		if fr.Rating != nil {
			attrs = append(attrs, "rating", fr.Rating.String())
		}
		logger.Info("function", attrs...)
		for _, w := range fr.Warnings {
			logger.Warn("function warning", "name", fr.Name, "warning", w)
		}
	}
	if err != nil {
		return err
	}
	defer f.Release()

	enc, err := encoder.Encode(f)
	if err != nil {
		return err
	}
	logger.Info("function ready",
		"context", f.Context(),
		"domain", f.Domain().String(),
		"pieces", humanize.Comma(int64(f.Size())),
		"pwt", f.PWT(),
		"encoded", humanize.Bytes(uint64(len(enc))),
		"elapsed", rep.Elapsed)

	if opts.encode {
		fmt.Fprintln(out, enc)
	}
	if opts.packet > 0 {
		id := encoder.NewFunctionID()
		packets, err := encoder.Packetize(enc, id, opts.packet)
		if err != nil {
			return err
		}
		for _, p := range packets {
			fmt.Fprintln(out, p)
		}
		logger.Info("packetized", "id", id, "packets", humanize.Comma(int64(len(packets))))
	}
	if opts.db != "" {
		st, err := archive.Open(opts.db, archive.WithLogger(logger))
		if err != nil {
			return err
		}
		defer st.Close()
		return archiveFunction(ctx, st, f, opts.job, logger)
	}
	return nil
}

func archiveFunction(ctx context.Context, st *archive.Store, f *core.Function, note string, logger *slog.Logger) error {
	rec, err := st.Save(ctx, f, note)
	if err != nil {
		return err
	}
	logger.Info("archived", "id", rec.ID, "context", rec.Context, "at", humanize.Time(rec.CreatedAt))
	return nil
}

// runReassemble feeds the packet file through a Demuxer and decodes each
// completed function. Lines that are not packets are logged and skipped.
func runReassemble(ctx context.Context, opts options, out io.Writer, logger *slog.Logger) error {
	fh, err := os.Open(opts.reassemble)
	if err != nil {
		return err
	}
	defer fh.Close()

	var st *archive.Store
	if opts.db != "" {
		if st, err = archive.Open(opts.db, archive.WithLogger(logger)); err != nil {
			return err
		}
		defer st.Close()
	}

	dm := encoder.NewDemuxer()
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 0, 64*1024), maxPacketLine)
	line, decoded := 0, 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if text == "" {
			continue
		}
		if err := dm.Add(text, time.Now(), opts.reassemble); err != nil {
			logger.Warn("packet skipped", "line", line, "err", err)
			continue
		}
		for {
			d, ok := dm.Next()
			if !ok {
				break
			}
			if err := emitDecoded(ctx, d, st, opts.encode, out, logger); err != nil {
				return err
			}
			decoded++
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", opts.reassemble, err)
	}
	if n := dm.Pending(); n > 0 {
		logger.Warn("incomplete functions", "count", humanize.Comma(int64(n)))
	}
	if decoded == 0 {
		return fmt.Errorf("%s: no complete function: %w", opts.reassemble, encoder.ErrIncomplete)
	}
	logger.Info("reassembled", "functions", humanize.Comma(int64(decoded)), "lines", humanize.Comma(int64(line)))
	return nil
}

func emitDecoded(ctx context.Context, d encoder.Demuxed, st *archive.Store, echo bool, out io.Writer, logger *slog.Logger) error {
	f, err := encoder.Decode(d.Body)
	if err != nil {
		return fmt.Errorf("function %s: %w", d.ID, err)
	}
	defer f.Release()
	logger.Info("function decoded",
		"id", d.ID,
		"context", f.Context(),
		"domain", f.Domain().String(),
		"pieces", humanize.Comma(int64(f.Size())),
		"pwt", f.PWT())
	if echo {
		fmt.Fprintln(out, d.Body)
	}
	if st != nil {
		return archiveFunction(ctx, st, f, d.ID, logger)
	}
	return nil
}
