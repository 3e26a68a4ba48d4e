// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jtok tokenizes JSON input and prints one line per token.
//
// Usage:
//
//	jtok [flags] [file ...]
//
// With no files, jtok reads standard input. Files whose names end in ".lz4"
// are decompressed as LZ4 frames. Each output line has the form
//
//	location<TAB>token<TAB>text
//
// Settings may also be read from a YAML file given with -config, for example:
//
//	comments: true
//	trailing_commas: true
//	single_value: false
//	max_depth: 128
//	buffer_size: 65536
//	log_level: debug
//
// Flags given on the command line override values from the config file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/creachadair/jtok"
	"github.com/pierrec/lz4/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of a run.
type Config struct {
	Comments       bool          `yaml:"comments"`
	TrailingCommas bool          `yaml:"trailing_commas"`
	SingleValue    bool          `yaml:"single_value"`
	MaxDepth       int           `yaml:"max_depth"`
	BufferSize     int           `yaml:"buffer_size"`
	Quiet          bool          `yaml:"quiet"`
	LogLevel       zapcore.Level `yaml:"log_level"`
}

var (
	configFile = flag.String("config", "", "Read settings from this YAML file")
	verbose    = flag.Bool("v", false, "Enable verbose (development) logging")
)

func main() {
	var conf Config
	flag.BoolVar(&conf.Comments, "comments", false, "Allow comments and print them as tokens")
	flag.BoolVar(&conf.TrailingCommas, "trailing-commas", false, "Allow trailing commas in objects and arrays")
	flag.BoolVar(&conf.SingleValue, "single", false, "Require each input to hold exactly one value")
	flag.IntVar(&conf.MaxDepth, "max-depth", 0, "Maximum nesting depth (0 means the default)")
	flag.IntVar(&conf.BufferSize, "buffer", jtok.DefaultBufferSize, "Initial input buffer size in bytes")
	flag.BoolVar(&conf.Quiet, "quiet", false, "Validate only, do not print tokens")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file ...]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := loadConfigFile(*configFile, &conf); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		os.Exit(2)
	}
	log := newLogger(conf.LogLevel, *verbose)
	defer log.Sync()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	failed := false
	for _, path := range inputs {
		if err := tokenizeFile(log, conf, path, out); err != nil {
			log.Error("Tokenizing failed", zap.String("path", path), zap.Error(err))
			failed = true
		}
	}
	if failed {
		out.Flush()
		os.Exit(1)
	}
}

// loadConfigFile overlays settings from path onto conf. Flags set explicitly
// on the command line take precedence.
func loadConfigFile(path string, conf *Config) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["comments"] {
		conf.Comments = file.Comments
	}
	if !set["trailing-commas"] {
		conf.TrailingCommas = file.TrailingCommas
	}
	if !set["single"] {
		conf.SingleValue = file.SingleValue
	}
	if !set["max-depth"] && file.MaxDepth != 0 {
		conf.MaxDepth = file.MaxDepth
	}
	if !set["buffer"] && file.BufferSize != 0 {
		conf.BufferSize = file.BufferSize
	}
	if !set["quiet"] {
		conf.Quiet = file.Quiet
	}
	if conf.MaxDepth < 0 {
		return fmt.Errorf("%s: max_depth must not be negative", path)
	}
	conf.LogLevel = file.LogLevel
	return nil
}

func newLogger(level zapcore.Level, dev bool) *zap.Logger {
	if dev {
		level = min(level, zapcore.DebugLevel)
	}
	encConf := zap.NewProductionEncoderConfig()
	encConf.CallerKey = ""
	enc := zapcore.NewJSONEncoder(encConf)
	var opts []zap.Option
	if dev {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		opts = append(opts, zap.Development())
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	return zap.New(core, opts...)
}

// openInput opens the named input, decompressing it if its name ends in
// ".lz4". The name "-" denotes standard input.
func openInput(path string) (io.ReadCloser, error) {
	var rc io.ReadCloser = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		rc = f
	}
	if strings.HasSuffix(path, ".lz4") {
		return struct {
			io.Reader
			io.Closer
		}{lz4.NewReader(rc), rc}, nil
	}
	return rc, nil
}

func tokenizeFile(log *zap.Logger, conf Config, path string, w io.Writer) error {
	rc, err := openInput(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	s := jtok.NewStream(rc)
	s.AllowComments(conf.Comments)
	s.AllowTrailingCommas(conf.TrailingCommas)
	s.SingleValue(conf.SingleValue)
	s.MaxDepth(conf.MaxDepth)
	s.BufferSize(conf.BufferSize)
	log.Debug("Tokenizing input", zap.String("path", path), zap.Any("options", s.Options()))

	p := &printer{w: w, quiet: conf.Quiet}
	if err := s.Parse(p); err != nil {
		return err
	}
	log.Info("Tokenized input",
		zap.String("path", path),
		zap.Int("tokens", p.tokens),
		zap.Int("values", p.values),
		zap.Int64("end_offset", p.end),
	)
	return p.err
}

// A printer is a jtok.Handler that writes each token it receives.
type printer struct {
	w      io.Writer
	quiet  bool
	tokens int
	values int // top-level values
	depth  int
	end    int64
	err    error
}

func (p *printer) emit(loc jtok.Anchor) error {
	p.tokens++
	if p.quiet {
		return nil
	}
	_, err := fmt.Fprintf(p.w, "%s\t%s\t%s\n", loc.Location(), loc.Token(), loc.Text())
	return err
}

func (p *printer) open(loc jtok.Anchor) error {
	p.depth++
	return p.emit(loc)
}

func (p *printer) close(loc jtok.Anchor) error {
	p.depth--
	if p.depth == 0 {
		p.values++
	}
	return p.emit(loc)
}

func (p *printer) BeginObject(loc jtok.Anchor) error { return p.open(loc) }
func (p *printer) EndObject(loc jtok.Anchor) error   { return p.close(loc) }
func (p *printer) BeginArray(loc jtok.Anchor) error  { return p.open(loc) }
func (p *printer) EndArray(loc jtok.Anchor) error    { return p.close(loc) }
func (p *printer) BeginMember(loc jtok.Anchor) error { return p.emit(loc) }
func (p *printer) EndMember(jtok.Anchor) error       { return nil }

func (p *printer) Value(loc jtok.Anchor) error {
	if p.depth == 0 {
		p.values++
	}
	return p.emit(loc)
}

func (p *printer) Comment(loc jtok.Anchor) {
	if err := p.emit(loc); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *printer) EndOfInput(loc jtok.Anchor) { p.end = loc.Location().End }
