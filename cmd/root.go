package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gqldoc/gqldoc/cache"
	"github.com/gqldoc/gqldoc/doc"
	"github.com/gqldoc/gqldoc/domain"
	"github.com/gqldoc/gqldoc/gen"
	"github.com/gqldoc/gqldoc/plugin"
	"github.com/gqldoc/gqldoc/source"
)

// generator pairs a registered Generator with the options and output
// directory its *_out flag was given.
type generator struct {
	gen.Generator

	opts   map[string]interface{}
	outDir string
}

type gqldocCmd struct {
	*baseCmd

	fs afero.Fs

	pluginPrefix string

	headers  http.Header
	indexDir string

	geners  []generator
	outDirs []string
}

func (c *CommandLine) newGqldocCmd(gens []genConfig, fs afero.Fs, prefix string) *gqldocCmd {
	cmd := &gqldocCmd{
		baseCmd: &baseCmd{Command: &cobra.Command{
			Use:   "gqldoc",
			Short: "A GraphQL SDL documentation generator",
			Long: `gqldoc builds static documentation from Markdown doc sources that
declare GraphQL entities in tagged code fences.

Generators are specified by using a *_out flag. The argument given to this
type of flag can be either:
	1) *_out=some/directory/to/output/file(s)/to
	2) *_out=comma=separated,key=val,generator=option,pairs=then:some/directory/to/output/file(s)/to

An additional flag, *_opt, can be used to pass options to a generator. The
argument given to this type of flag is the same format as the *_opt
key=value pairs above.`,
			Example:            "gqldoc -I . --md_out ./public --search_out ./public api.md scalars.md",
			DisableFlagParsing: true,
		}},
		fs:           fs,
		pluginPrefix: prefix,
	}

	flags := cmd.Flags()
	flags.StringSliceP("source_path", "I", []string{"."}, `Specify the directory in which to search for
doc sources.  May be specified multiple times;
directories will be searched in order.  If not
given, the current working directory is used.`)
	flags.BoolP("verbose", "v", false, "Output logging")
	flags.StringSlice("types", nil, `Supplemental doc sources that are indexed for
cross-referencing but not generated.`)
	flags.String("index", "", "Write an index.md of every entity to the given directory.")
	flags.String("cache", "", "Path to a build cache database.")
	flags.Var(&headerFlag{value: &cmd.headers}, "header", `Set headers used when fetching remote sources,
e.g. Authorization=Bearer=token`)

	for _, gc := range gens {
		opts := make(map[string]interface{})
		fp := newFparser()

		flags.Var(genFlag{g: gc.g, opts: opts, geners: &cmd.geners, outDirs: &cmd.outDirs, fp: fp}, gc.name, gc.help)
		if gc.opt != "" {
			flags.Var(genFlag{g: gc.g, opts: opts, fp: fp, isOpt: true}, gc.opt, "Pass additional options to the "+strings.TrimSuffix(gc.name, "_out")+" generator.")
		}
	}

	cmd.SetUsageTemplate(usageTmpl)

	cmd.RunE = func(cc *cobra.Command, args []string) error {
		// Plugin flags must be registered before flag parsing
		if cmd.pluginPrefix != "" {
			cmd.registerPlugins(args)
		}

		if err := cc.Flags().Parse(args); err != nil {
			return err
		}

		fargs := cc.Flags().Args()
		if len(fargs) == 0 || cc.Flags().Lookup("help").Changed {
			return cc.Help()
		}

		if dir, err := cc.Flags().GetString("index"); err == nil && dir != "" {
			if !filepath.IsAbs(dir) {
				wd, werr := os.Getwd()
				if werr != nil {
					return werr
				}
				dir = filepath.Join(wd, dir)
			}

			cmd.indexDir = dir
			cmd.outDirs = append(cmd.outDirs, dir)
		}

		preRunE := chainPreRunEs(
			installLogger,
			validateFilenames,
			validateTypes,
			initGenDirs(cmd.fs, &cmd.outDirs),
		)
		if err := preRunE(cc, fargs); err != nil {
			return err
		}

		return cmd.run(cc, fargs)
	}

	return cmd
}

// registerPlugins registers a generator flag pair for any unknown *_out
// or *_opt flag, backed by an external plugin of the same name.
func (cmd *gqldocCmd) registerPlugins(args []string) {
	flags := cmd.Flags()

	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}

		name := arg[2:]
		if i := strings.Index(name, "="); i > -1 {
			name = name[:i]
		}
		if !strings.HasSuffix(name, "_out") && !strings.HasSuffix(name, "_opt") {
			continue
		}
		if flags.Lookup(name) != nil {
			continue
		}

		pluginName := name[:len(name)-len("_out")]
		if flags.Lookup(pluginName+"_out") != nil {
			continue
		}

		g := &plugin.Generator{Name: pluginName, Prefix: cmd.pluginPrefix}
		opts := make(map[string]interface{})
		fp := newFparser()

		flags.Var(genFlag{g: g, opts: opts, geners: &cmd.geners, outDirs: &cmd.outDirs, fp: fp}, pluginName+"_out", "Generate output with the "+pluginName+" plugin.")
		flags.Var(genFlag{g: g, opts: opts, fp: fp, isOpt: true}, pluginName+"_opt", "Pass additional options to the "+pluginName+" plugin.")
	}
}

type genCtx struct {
	fs  afero.Fs
	dir string
}

func (ctx *genCtx) Open(name string) (io.WriteCloser, error) {
	return ctx.fs.OpenFile(filepath.Join(ctx.dir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

// A docSource is one doc source, read in full so it can be hashed for
// the build cache before scanning.
type docSource struct {
	name      string
	data      []byte
	indexOnly bool
}

// A buildResult is the processed form of one doc source. Cached and
// index-only sources carry no document; they only contribute entries.
type buildResult struct {
	doc *gen.Document
	idx *domain.Index
}

func (cmd *gqldocCmd) run(cc *cobra.Command, args []string) (err error) {
	flags := cc.Flags()

	sourcePaths, err := flags.GetStringSlice("source_path")
	if err != nil {
		return
	}
	types, err := flags.GetStringSlice("types")
	if err != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srcs, err := cmd.scanSources(ctx, sourcePaths, args, types)
	if err != nil {
		return
	}

	var bcache *cache.Cache
	if cachePath, _ := flags.GetString("cache"); cachePath != "" {
		bcache, err = cache.Open(ctx, cachePath)
		if err != nil {
			return
		}
		defer bcache.Close()
	}

	results, err := cmd.process(ctx, bcache, srcs)
	if err != nil {
		return
	}

	// Merge per-document indexes in input order
	idx := domain.NewIndex()
	for _, res := range results {
		for _, c := range idx.Merge(res.idx) {
			zap.L().Warn("conflicting declarations",
				zap.String("category", string(c.Category)),
				zap.String("name", c.Name),
				zap.String("kept", c.Doc),
				zap.String("dropped", c.Other),
			)
		}
	}

	ctx = gen.WithIndex(ctx, idx)

	// Run generators
	for _, g := range cmd.geners {
		gctx := gen.WithContext(ctx, &genCtx{fs: cmd.fs, dir: g.outDir})

		for _, res := range results {
			if res.doc == nil {
				continue
			}

			if err = g.Generate(gctx, res.doc, g.opts); err != nil {
				return
			}
		}
	}

	// Write the entity index page
	if cmd.indexDir != "" {
		ictx := gen.WithContext(ctx, &genCtx{fs: cmd.fs, dir: cmd.indexDir})
		err = new(doc.Generator).GenerateIndex(ictx)
	}
	return
}

// process scans and processes every doc source, each on its own
// goroutine with a private index.
func (cmd *gqldocCmd) process(ctx context.Context, bcache *cache.Cache, srcs []docSource) ([]*buildResult, error) {
	results := make([]*buildResult, len(srcs))
	errs := make([]error, len(srcs))

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i := range srcs {
		wg.Add(1)
		go func(i int, src docSource) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i], errs[i] = cmd.processOne(ctx, bcache, src)
		}(i, srcs[i])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (cmd *gqldocCmd) processOne(ctx context.Context, bcache *cache.Cache, src docSource) (*buildResult, error) {
	var hash string
	if bcache != nil {
		hash = cache.Hash(src.data)

		entries, ok, err := bcache.Lookup(ctx, src.name, hash)
		if err != nil {
			return nil, err
		}
		if ok {
			zap.L().Info("document unchanged since last build", zap.String("doc", src.name))

			idx := domain.NewIndex()
			for _, e := range entries {
				idx.Register(e)
			}
			return &buildResult{idx: idx}, nil
		}
	}

	d, err := source.Scan(src.name, bytes.NewReader(src.data))
	if err != nil {
		return nil, err
	}

	idx := domain.NewIndex()
	sigs := domain.Process(d, idx)

	if bcache != nil {
		if err := bcache.Store(ctx, src.name, hash, idx.Entries()); err != nil {
			return nil, err
		}
	}

	res := &buildResult{idx: idx}
	if !src.indexOnly {
		res.doc = &gen.Document{Document: d, Sigs: sigs}
	}
	return res, nil
}

// scanSources reads every named source, local or remote. Supplemental
// type sources are marked index-only.
func (cmd *gqldocCmd) scanSources(ctx context.Context, sourcePaths, args, types []string) ([]docSource, error) {
	client := &fetchClient{Client: http.DefaultClient}

	srcs := make([]docSource, 0, len(args)+len(types))
	for _, a := range args {
		src, err := cmd.openSource(ctx, client, sourcePaths, a)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, src)
	}
	for _, a := range types {
		src, err := cmd.openSource(ctx, client, sourcePaths, a)
		if err != nil {
			return nil, err
		}
		src.indexOnly = true
		srcs = append(srcs, src)
	}
	return srcs, nil
}

func (cmd *gqldocCmd) openSource(ctx context.Context, client *fetchClient, sourcePaths []string, name string) (docSource, error) {
	var rc io.ReadCloser
	var docName string

	if strings.HasPrefix(name, "http") || strings.HasPrefix(name, "ws") {
		u, err := url.Parse(name)
		if err != nil {
			return docSource{}, err
		}

		rc, err = fetch(ctx, client, u, cmd.headers)
		if err != nil {
			return docSource{}, err
		}
		docName = remoteDocName(u)
	} else {
		f, err := openFile(cmd.fs, sourcePaths, name)
		if err != nil {
			return docSource{}, err
		}
		rc = f

		base := filepath.Base(name)
		docName = base[:len(base)-len(filepath.Ext(base))]
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return docSource{}, err
	}

	return docSource{name: docName, data: data}, nil
}

// remoteDocName derives a document name from a remote source URL.
func remoteDocName(u *url.URL) string {
	base := path.Base(u.Path)
	if ext := path.Ext(base); ext != "" {
		return base[:len(base)-len(ext)]
	}
	if base == "graphql" || base == "." || base == "/" {
		return u.Hostname()
	}
	return base
}

// openFile is just a helper for opening files
func openFile(fs afero.Fs, sourcePaths []string, filename string) (f afero.File, err error) {
	var exists bool
	if !filepath.IsAbs(filename) {
		for _, sPath := range sourcePaths {
			fname := filepath.Join(sPath, filename)
			exists, err = afero.Exists(fs, fname)
			if err != nil {
				return
			}

			if exists {
				filename = fname
				break
			}
		}
	}

	f, err = fs.Open(filename)
	return
}
