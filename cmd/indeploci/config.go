package main

import (
	"flag"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/carbocation/indeploci/ldclump"
	"github.com/carbocation/pfx"
)

// duration lets TOML files spell timeouts as "30m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config holds every option of the tool. Values come from the defaults, then
// the TOML file named by -config, then any flag given on the command line.
type Config struct {
	ConfigFile string `toml:"-"`

	Input      string  `toml:"input"`
	Layout     string  `toml:"layout"`
	PThreshold float64 `toml:"pthreshold"`
	KeepIDs    bool    `toml:"keepids"`
	LociFile   string  `toml:"loci"`
	Out        string  `toml:"out"`

	Method   string `toml:"method"`
	Distance int    `toml:"distance"`
	Range    int    `toml:"range"`
	Merge    bool   `toml:"merge"`

	Plink   string   `toml:"plink"`
	LDRef   string   `toml:"ldref"`
	ClumpP1 float64  `toml:"clump_p1"`
	ClumpKB int      `toml:"clump_kb"`
	ClumpR2 float64  `toml:"clump_r2"`
	Workers int      `toml:"workers"`
	Timeout duration `toml:"timeout"`
	TmpDir  string   `toml:"tmpdir"`
	KeepTmp bool     `toml:"keeptmp"`
}

func defaultConfig() Config {
	clump := ldclump.DefaultConfig()
	if plink := os.Getenv("PLINK"); plink != "" {
		clump.Plink = plink
	}

	return Config{
		Layout:     "AUTO",
		PThreshold: 1,
		Method:     "distance",
		Distance:   500000,
		Range:      500000,
		Merge:      true,
		Plink:      clump.Plink,
		ClumpP1:    clump.P1,
		ClumpKB:    clump.KB,
		ClumpR2:    clump.R2,
		Workers:    clump.Workers,
		Timeout:    duration{clump.Timeout},
	}
}

func (c Config) clumpConfig() ldclump.Config {
	return ldclump.Config{
		Plink:   c.Plink,
		LDRef:   c.LDRef,
		P1:      c.ClumpP1,
		KB:      c.ClumpKB,
		R2:      c.ClumpR2,
		Timeout: c.Timeout.Duration,
		Workers: c.Workers,
	}
}

// flagSet binds the command line to cfg, using its current values as the
// defaults.
func flagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("indeploci", flag.ContinueOnError)

	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Optional TOML file with any of the options below. Flags override it.")

	fs.StringVar(&cfg.Input, "input", cfg.Input, "Summary statistics file. Local path or gs://bucket/object, optionally compressed.")
	fs.StringVar(&cfg.Layout, "layout", cfg.Layout, "Column layout of -input. AUTO derives it from the header.")
	fs.Float64Var(&cfg.PThreshold, "pthreshold", cfg.PThreshold, "Only markers with P at or below this value are considered.")
	fs.BoolVar(&cfg.KeepIDs, "keepids", cfg.KeepIDs, "Keep SNP identifiers from the input instead of building chr-pos-a1-a2 identifiers.")
	fs.StringVar(&cfg.LociFile, "loci", cfg.LociFile, "Existing loci table to merge. Lead selection is skipped.")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "Output file. Defaults to stdout.")

	fs.StringVar(&cfg.Method, "method", cfg.Method, "Lead selection method: distance, clumping or conditional.")
	fs.IntVar(&cfg.Distance, "distance", cfg.Distance, "Distance method: bases on each side of a lead within which other markers are dropped.")
	fs.IntVar(&cfg.Range, "range", cfg.Range, "Bases on each side of a lead that make up its locus.")
	fs.BoolVar(&cfg.Merge, "merge", cfg.Merge, "Merge overlapping loci.")

	fs.StringVar(&cfg.Plink, "plink", cfg.Plink, "plink 1.9 binary. Defaults to $PLINK, then plink.")
	fs.StringVar(&cfg.LDRef, "ldref", cfg.LDRef, "plink bed/bim/fam prefix of the LD reference panel; {chrom} is replaced by the chromosome.")
	fs.Float64Var(&cfg.ClumpP1, "clump_p1", cfg.ClumpP1, "Clumping: p-value threshold for index markers.")
	fs.IntVar(&cfg.ClumpKB, "clump_kb", cfg.ClumpKB, "Clumping: window in kb.")
	fs.Float64Var(&cfg.ClumpR2, "clump_r2", cfg.ClumpR2, "Clumping: r2 threshold.")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Clumping: chromosomes processed at once.")
	fs.DurationVar(&cfg.Timeout.Duration, "timeout", cfg.Timeout.Duration, "Clumping: time limit per chromosome.")
	fs.StringVar(&cfg.TmpDir, "tmpdir", cfg.TmpDir, "Clumping: directory for scratch files.")
	fs.BoolVar(&cfg.KeepTmp, "keeptmp", cfg.KeepTmp, "Clumping: keep scratch files.")

	return fs
}

// loadConfig parses args, applying the -config file underneath any flags.
func loadConfig(args []string) (Config, *flag.FlagSet, error) {
	cfg := defaultConfig()
	fs := flagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return cfg, fs, err
	}

	if cfg.ConfigFile == "" {
		return cfg, fs, nil
	}

	path := cfg.ConfigFile
	fromFile := defaultConfig()
	if _, err := toml.DecodeFile(path, &fromFile); err != nil {
		return cfg, fs, pfx.Err(err)
	}
	fromFile.ConfigFile = path

	fs = flagSet(&fromFile)
	if err := fs.Parse(args); err != nil {
		return fromFile, fs, err
	}

	return fromFile, fs, nil
}
